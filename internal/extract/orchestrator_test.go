package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intake-cli/internal/augment"
)

const proposalText = "Acme Electric LLC\n" +
	"Date: 08/15/2025\n" +
	"Contact: John Smith, john.smith@acme.com, (555) 123-4567\n" +
	"Scope of Work: electrical installation"

func TestExtract_RuleBasedRecord(t *testing.T) {
	o := NewOrchestrator(nil)

	record := o.Extract(context.Background(), proposalText, "Acme Electric LLC Proposal.pdf", "doc-1", Options{})

	assert.Equal(t, "doc-1", record.ID)
	assert.Equal(t, "Acme Electric LLC Proposal.pdf", record.Source)
	assert.Equal(t, "Acme Electric LLC", record.CompanyName)
	assert.InDelta(t, 0.92, record.Confidence.CompanyName, 0.001)
	assert.Equal(t, "John Smith", record.ContactName)
	assert.InDelta(t, 0.88, record.Confidence.ContactName, 0.001)
	assert.Equal(t, "john.smith@acme.com", record.Email)
	assert.InDelta(t, 0.95, record.Confidence.Email, 0.001)
	assert.Equal(t, "(555) 123-4567", record.Phone)
	assert.InDelta(t, 0.90, record.Confidence.Phone, 0.001)
	assert.Equal(t, "Electrical", record.Trade)
	assert.InDelta(t, 0.90, record.Confidence.Trade, 0.001)
	assert.InDelta(t, 0.91, record.Confidence.Overall, 0.001)
	assert.Equal(t, proposalText, record.RawText)
	assert.Nil(t, record.Augment)
}

func TestExtract_EmptyTextAugmentDisabled(t *testing.T) {
	o := NewOrchestrator(nil)

	record := o.Extract(context.Background(), "", "42.pdf", "doc-1", Options{})

	assert.Empty(t, record.CompanyName)
	assert.Empty(t, record.ContactName)
	assert.Empty(t, record.Email)
	assert.Empty(t, record.Phone)
	assert.Empty(t, record.Trade)
	assert.Zero(t, record.Confidence.Overall)
	assert.Nil(t, record.Augment)
}

func TestExtract_NilProviderSkipsAugmentation(t *testing.T) {
	o := NewOrchestrator(nil)

	record := o.Extract(context.Background(), "", "42.pdf", "doc-1", Options{EnableAugment: true})

	assert.Nil(t, record.Augment)
	assert.Zero(t, record.Confidence.Overall)
}

func TestExtract_DocumentStrategyForEmptyText(t *testing.T) {
	provider := &mockProvider{
		documentResult: &augment.Result{
			Info: augment.ContactInfo{
				CompanyName: "Apex Electric LLC",
				ContactName: "Dan Romero",
				Email:       "dan@apexelectric.com",
				Phone:       "(908) 555-0142",
				Trade:       "Electrical",
			},
			Confidence: 0.90,
		},
	}
	o := NewOrchestrator(provider)

	record := o.Extract(context.Background(), "x", "42.pdf", "doc-1", Options{
		Raw:           []byte("%PDF-1.4 scanned"),
		EnableAugment: true,
	})

	assert.Equal(t, 1, provider.documentCalls)
	assert.Zero(t, provider.textCalls)
	assert.Zero(t, provider.supplementCalls)

	assert.Equal(t, "Apex Electric LLC", record.CompanyName)
	assert.Equal(t, "Dan Romero", record.ContactName)
	assert.Equal(t, "dan@apexelectric.com", record.Email)
	assert.Equal(t, "(908) 555-0142", record.Phone)
	assert.Equal(t, "Electrical", record.Trade)
	assert.InDelta(t, 0.90, record.Confidence.Overall, 0.001)

	require.NotNil(t, record.Augment)
	assert.True(t, record.Augment.Attempted)
	assert.True(t, record.Augment.Used)
}

func TestExtract_FullTextStrategyForWeakRecord(t *testing.T) {
	provider := &mockProvider{
		textResult: &augment.Result{
			Info:       augment.ContactInfo{CompanyName: "Apex Electric LLC"},
			Confidence: 0.88,
		},
	}
	o := NewOrchestrator(provider)

	text := strings.Repeat("lorem ipsum dolor amet ", 30)
	record := o.Extract(context.Background(), text, "42.pdf", "doc-1", Options{EnableAugment: true})

	assert.Equal(t, 1, provider.textCalls)
	assert.Zero(t, provider.documentCalls)

	assert.Equal(t, "Apex Electric LLC", record.CompanyName)
	assert.InDelta(t, 0.88, record.Confidence.CompanyName, 0.001)
	assert.Empty(t, record.Email)
	assert.Len(t, record.RawText, 500)

	require.NotNil(t, record.Augment)
	assert.True(t, record.Augment.Used)
}

func TestExtract_SupplementStrategyForSingleWeakField(t *testing.T) {
	provider := &mockProvider{
		supplementResult: &augment.Result{
			Info:     augment.ContactInfo{Trade: "Carpentry"},
			Warnings: []string{"low certainty on trade"},
		},
	}
	o := NewOrchestrator(provider)

	text := "Acme Builders Inc\n" +
		"Date: 08/15/2025\n" +
		"Contact: John Smith, john.smith@acme.com, (555) 123-4567\n" +
		"Thank you for your consideration and your continued business."
	record := o.Extract(context.Background(), text, "42.pdf", "doc-1", Options{EnableAugment: true})

	assert.Equal(t, 1, provider.supplementCalls)
	assert.Equal(t, []string{FieldTrade}, provider.supplementFields)

	assert.Equal(t, "Carpentry", record.Trade)
	// Supplement results without an explicit confidence default to 0.8.
	assert.InDelta(t, 0.80, record.Confidence.Trade, 0.001)
	assert.InDelta(t, 0.89, record.Confidence.Overall, 0.001)

	require.NotNil(t, record.Augment)
	assert.True(t, record.Augment.Used)
	assert.Equal(t, []string{FieldTrade}, record.Augment.SupplementedFields)
	assert.Contains(t, record.Augment.Warnings, "low certainty on trade")
}

func TestExtract_ProviderFailureDegradesToRuleBased(t *testing.T) {
	provider := &mockProvider{err: errors.New("api timeout")}
	o := NewOrchestrator(provider)

	text := "Acme Builders Inc\n" +
		"Date: 08/15/2025\n" +
		"Contact: John Smith, john.smith@acme.com, (555) 123-4567\n" +
		"Thank you for your consideration and your continued business."
	record := o.Extract(context.Background(), text, "42.pdf", "doc-1", Options{EnableAugment: true})

	assert.Equal(t, "Acme Builders Inc", record.CompanyName)
	assert.Equal(t, "John Smith", record.ContactName)
	assert.Empty(t, record.Trade)

	require.NotNil(t, record.Augment)
	assert.True(t, record.Augment.Attempted)
	assert.False(t, record.Augment.Used)
	assert.Contains(t, record.Augment.Warnings, "api timeout")
}
