package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmails_LowercasesAndScores(t *testing.T) {
	emails := Emails("Reach Dan at Dan.Romero@ApexElectric.com for pricing.")
	require.Len(t, emails, 1)
	assert.Equal(t, "dan.romero@apexelectric.com", emails[0].Value)
	assert.InDelta(t, 0.95, emails[0].Confidence, 0.001)
}

func TestEmails_DeduplicatesCaseInsensitively(t *testing.T) {
	emails := Emails("dan@apex.com DAN@APEX.COM Dan@Apex.Com")
	require.Len(t, emails, 1)
	assert.Equal(t, "dan@apex.com", emails[0].Value)
}

func TestEmails_ExcludesGenericMailboxes(t *testing.T) {
	emails := Emails("Questions? info@apex.com or support@apex.com. Bids: maria@apex.com, admin@apex.com, noreply@apex.com")
	require.Len(t, emails, 1)
	assert.Equal(t, "maria@apex.com", emails[0].Value)
}

func TestEmails_PreservesOrderOfFirstAppearance(t *testing.T) {
	emails := Emails("second@apex.com then first@apex.com then second@apex.com again")
	require.Len(t, emails, 2)
	assert.Equal(t, "second@apex.com", emails[0].Value)
	assert.Equal(t, "first@apex.com", emails[1].Value)
}

func TestEmails_NoneFound(t *testing.T) {
	assert.Empty(t, Emails("no contact details in this text"))
	assert.Empty(t, Emails(""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "dan@apex.com", NormalizeEmail("  dan@apex.com  "))
	assert.Equal(t, "", NormalizeEmail("not-an-email"))
	assert.Equal(t, "", NormalizeEmail(""))
	assert.Equal(t, "", NormalizeEmail("   "))
}
