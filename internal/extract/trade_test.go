package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrade_SubjectLineRule(t *testing.T) {
	got := Trade("Re: Electrical work for Riverside Plaza\nmore details below", "doc.pdf")
	require.NotNil(t, got)
	assert.Equal(t, "Electrical", got.Value)
	assert.InDelta(t, 0.95, got.Confidence, 0.001)
}

func TestTrade_ScopeOfWorkRule(t *testing.T) {
	got := Trade("Scope of Work: rough-in plumbing and fixtures", "doc.pdf")
	require.NotNil(t, got)
	assert.Equal(t, "Plumbing", got.Value)
	assert.InDelta(t, 0.90, got.Confidence, 0.001)
}

func TestTrade_FrequencyRule(t *testing.T) {
	got := Trade("pour the concrete slab over the foundation and tie rebar", "doc.pdf")
	require.NotNil(t, got)
	assert.Equal(t, "Concrete", got.Value)
	assert.InDelta(t, 0.80, got.Confidence, 0.001) // 0.60 + 4 keywords * 0.05
}

func TestTrade_FrequencyRuleCapped(t *testing.T) {
	got := Trade("electric electrical wiring lighting conduit panel switchgear", "doc.pdf")
	require.NotNil(t, got)
	assert.Equal(t, "Electrical", got.Value)
	assert.InDelta(t, 0.85, got.Confidence, 0.001)
}

func TestTrade_FilenameRule(t *testing.T) {
	got := Trade("no keywords in the body text", "roofing-bid.pdf")
	require.NotNil(t, got)
	assert.Equal(t, "Roofing", got.Value)
	assert.InDelta(t, 0.70, got.Confidence, 0.001)
}

func TestTrade_NoCandidate(t *testing.T) {
	assert.Nil(t, Trade("hello world", "notes.txt"))
	assert.Nil(t, Trade("", ""))
}
