// Package extract implements the five field extractors, the confidence
// model, and the augmentation orchestrator. Each extractor is a pure
// function over the document text; rule order within an extractor is part
// of its contract.
package extract

import (
	"strings"

	"github.com/sells-group/intake-cli/internal/model"
	"github.com/sells-group/intake-cli/internal/patterns"
)

const emailConfidence = 0.95

// Emails returns every email-shaped substring, lower-cased and de-duplicated
// in order of first appearance. Generic mailboxes (info@, admin@, support@,
// noreply@) are excluded.
func Emails(text string) []model.FieldValue {
	seen := make(map[string]bool)
	var out []model.FieldValue

	for _, match := range patterns.EmailRegex.FindAllString(text, -1) {
		email := strings.ToLower(match)
		if seen[email] {
			continue
		}
		seen[email] = true

		if isGenericMailbox(email) {
			continue
		}
		out = append(out, model.FieldValue{Value: email, Confidence: emailConfidence})
	}

	return out
}

// NormalizeEmail trims and validates a provider-returned email. Returns ""
// if the value does not contain an email shape.
func NormalizeEmail(email string) string {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" || !patterns.EmailRegex.MatchString(trimmed) {
		return ""
	}
	return trimmed
}

func isGenericMailbox(email string) bool {
	for _, prefix := range patterns.GenericMailboxes {
		if strings.Contains(email, prefix) {
			return true
		}
	}
	return false
}
