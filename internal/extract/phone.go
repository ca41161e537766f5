package extract

import (
	"fmt"
	"strings"

	"github.com/sells-group/intake-cli/internal/model"
	"github.com/sells-group/intake-cli/internal/patterns"
)

const phoneConfidence = 0.90

// Phones unions the matches of every phone-shape pattern, normalizes each to
// its digits, keeps 10-11 digit results, and de-duplicates by the trailing
// 10 digits. Values are formatted as (NNN) NNN-NNNN.
func Phones(text string) []model.FieldValue {
	var raw []string
	seen := make(map[string]bool)
	for _, pattern := range patterns.PhonePatterns {
		for _, m := range pattern.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				raw = append(raw, m)
			}
		}
	}

	byKey := make(map[string]bool)
	var out []model.FieldValue

	for _, match := range raw {
		digits := digitsOnly(match)
		if len(digits) < 10 || len(digits) > 11 {
			continue
		}
		last10 := digits[len(digits)-10:]
		if byKey[last10] {
			continue
		}
		byKey[last10] = true
		out = append(out, model.FieldValue{
			Value:      formatPhone(last10),
			Confidence: phoneConfidence,
		})
	}

	return out
}

// NormalizePhone normalizes a provider-returned phone to (NNN) NNN-NNNN
// using its trailing 10 digits. Returns "" for values with fewer than 10
// digits. Idempotent on already-normalized input.
func NormalizePhone(phone string) string {
	digits := digitsOnly(phone)
	if len(digits) < 10 {
		return ""
	}
	return formatPhone(digits[len(digits)-10:])
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatPhone(last10 string) string {
	return fmt.Sprintf("(%s) %s-%s", last10[:3], last10[3:6], last10[6:])
}
