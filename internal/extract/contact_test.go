package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intake-cli/internal/model"
)

func TestContactName_SignatureRule(t *testing.T) {
	text := "We appreciate the opportunity to bid.\n\nSincerely,\nDan Romero\nEstimator"

	got := ContactName(text, nil)
	require.NotNil(t, got)
	assert.Equal(t, "Dan Romero", got.Value)
	assert.InDelta(t, 0.90, got.Confidence, 0.001)
}

func TestContactName_ByLineRule(t *testing.T) {
	got := ContactName("Prepared by: Maria Vasquez", nil)
	require.NotNil(t, got)
	assert.Equal(t, "Maria Vasquez", got.Value)
	assert.InDelta(t, 0.90, got.Confidence, 0.001)
}

func TestContactName_NameAboveTitleRule(t *testing.T) {
	text := "Pricing valid for 30 days.\nDan Romero\nVice President"

	got := ContactName(text, nil)
	require.NotNil(t, got)
	assert.Equal(t, "Dan Romero", got.Value)
	assert.InDelta(t, 0.90, got.Confidence, 0.001)
}

func TestContactName_LabeledFieldRule(t *testing.T) {
	got := ContactName("Contact: John Smith, ext 204", nil)
	require.NotNil(t, got)
	assert.Equal(t, "John Smith", got.Value)
	assert.InDelta(t, 0.88, got.Confidence, 0.001)
}

func TestContactName_MiddleInitialAccepted(t *testing.T) {
	got := ContactName("Attn: John Q. Smith", nil)
	require.NotNil(t, got)
	assert.Equal(t, "John Q. Smith", got.Value)
	assert.InDelta(t, 0.88, got.Confidence, 0.001)
}

func TestContactName_BeforeEmailRule(t *testing.T) {
	text := "Dan Romero\ndan.romero@apexelectric.com"
	emails := Emails(text)
	require.Len(t, emails, 1)

	got := ContactName(text, emails)
	require.NotNil(t, got)
	assert.Equal(t, "Dan Romero", got.Value)
	assert.InDelta(t, 0.78, got.Confidence, 0.001)
}

func TestContactName_SynthesizedFromEmailLocalPart(t *testing.T) {
	text := "send bids to john.smith@acme.com"
	emails := Emails(text)

	got := ContactName(text, emails)
	require.NotNil(t, got)
	assert.Equal(t, "John Smith", got.Value)
	assert.InDelta(t, 0.55, got.Confidence, 0.001)
}

func TestContactName_EmailLocalPartTooShort(t *testing.T) {
	// Single-letter segments never make a name.
	got := ContactName("send bids to j.s@acme.com", Emails("send bids to j.s@acme.com"))
	assert.Nil(t, got)
}

func TestContactName_RejectsBusinessWords(t *testing.T) {
	assert.Nil(t, ContactName("Contact: Project Manager", nil))
	assert.Nil(t, ContactName("Attn: Proposal Total", nil))
}

func TestContactName_NoCandidate(t *testing.T) {
	assert.Nil(t, ContactName("", nil))
	assert.Nil(t, ContactName("no names in this text at all", nil))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, isValidName("Dan Romero"))
	assert.True(t, isValidName("John Q. Smith"))
	assert.False(t, isValidName("Dan"))
	assert.False(t, isValidName("dan romero"))
	assert.False(t, isValidName("John Quincy Smith"))
	assert.False(t, isValidName("Project Manager"))
	assert.False(t, isValidName("One Two Three Four"))
}

func TestContactName_RankedEmailMustAppearInText(t *testing.T) {
	// An email that is not literally present (e.g. lower-cased elsewhere)
	// cannot anchor the before-email rule.
	got := ContactName("DAN.ROMERO@APEX.COM", []model.FieldValue{{Value: "dan.romero@apex.com", Confidence: 0.95}})
	require.NotNil(t, got)
	assert.Equal(t, "Dan Romero", got.Value)
	assert.InDelta(t, 0.55, got.Confidence, 0.001)
}
