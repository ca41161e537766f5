package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/intake-cli/internal/model"
	"github.com/sells-group/intake-cli/internal/patterns"
)

// namePattern is the shape of a two-token name with an optional middle
// initial, reused across the contact rules.
const namePattern = `[A-Z][a-z]+(?:\s+[A-Z]\.?)?\s+[A-Z][a-z]+`

var (
	signatureRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:sincerely|regards|respectfully|thank you|thanks)[,.\s]*\n+\s*(` + namePattern + `)`),
		regexp.MustCompile(`(?i)\bby[:\s]+(` + namePattern + `)`),
		regexp.MustCompile(`(?i)\n\s*(` + namePattern + `)\s*\n\s*(?:President|Vice President|VP|Manager|Estimator|Owner|Director|Superintendent)`),
	}

	labeledRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:contact|attn|attention)[:\s]+(` + namePattern + `)`),
		regexp.MustCompile(`(?i)(?:estimator|project manager|pm|account manager)[:\s]+([A-Z][a-z]+(?:\s+[A-Z]\.?)?\s*[A-Z]?[a-z]*)`),
		regexp.MustCompile(`(?i)(?:prepared by|submitted by|from)[:\s]+(` + namePattern + `)`),
		regexp.MustCompile(`(?i)(?:name)[:\s]+(` + namePattern + `)`),
	}

	fromHeaderRegex   = regexp.MustCompile(`(?i)FROM[:\s]+([A-Z][A-Z\s.]+?)(?:,|\n|EXT|$)`)
	contactFieldRegex = regexp.MustCompile(`CONTACT[\s:]+([A-Z][A-Z]+(?:\s+[A-Z]+)?)`)
	beforeEmailRegex  = regexp.MustCompile(`(` + namePattern + `)\s*$`)
	nameTitleRegex    = regexp.MustCompile(`(` + namePattern + `)\s*\n\s*(?:Estimator|Project Manager|Account Manager|VP|Vice President|President|Owner|Manager|Superintendent)`)

	initialTokenRegex  = regexp.MustCompile(`^[A-Za-z]{1,2}\.?$`)
	alphaSegmentRegex  = regexp.MustCompile(`(?i)^[a-z]+$`)
	emailDigitsRegex   = regexp.MustCompile(`[0-9]+`)
	emailSplitterRegex = regexp.MustCompile(`[._-]+`)
)

// ContactName runs the ordered contact-name rule chain. The emails argument
// is the ranked output of Emails for the same text; it feeds the
// near-email and email-local-part rules. Every rule is subject to the
// shared name validity guard.
func ContactName(text string, emails []model.FieldValue) *model.FieldValue {
	// Rules 1-2: signature phrases, by-lines, and name-above-title blocks.
	for _, re := range signatureRegexes {
		if m := re.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			if isValidName(name) {
				return &model.FieldValue{Value: name, Confidence: 0.90}
			}
		}
	}

	// Rule 3: labeled fields (contact/attn/estimator/prepared by/name).
	for _, re := range labeledRegexes {
		if m := re.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			if isValidName(name) {
				return &model.FieldValue{Value: name, Confidence: 0.88}
			}
		}
	}

	// Rule 4: an all-caps FROM: header, case-normalized.
	if m := fromHeaderRegex.FindStringSubmatch(text); m != nil {
		formatted := formatNameCase(strings.TrimSpace(m[1]))
		if isValidName(formatted) {
			return &model.FieldValue{Value: formatted, Confidence: 0.85}
		}
	}

	// Rule 5: an all-caps CONTACT field.
	if m := contactFieldRegex.FindStringSubmatch(text); m != nil {
		formatted := formatNameCase(strings.TrimSpace(m[1]))
		if isValidName(formatted) {
			return &model.FieldValue{Value: formatted, Confidence: 0.82}
		}
	}

	// Rule 6: a name-shaped token in the 300 characters before an email.
	for _, email := range emails {
		idx := strings.Index(text, email.Value)
		if idx == -1 {
			continue
		}
		start := idx - 300
		if start < 0 {
			start = 0
		}
		if m := beforeEmailRegex.FindStringSubmatch(text[start:idx]); m != nil && isValidName(m[1]) {
			return &model.FieldValue{Value: m[1], Confidence: 0.78}
		}
	}

	// Rule 7: the last name+title match anywhere in the text.
	if matches := nameTitleRegex.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		name := matches[len(matches)-1][1]
		if isValidName(name) {
			return &model.FieldValue{Value: name, Confidence: 0.85}
		}
	}

	// Rule 8: a name synthesized from the first email's local part.
	if len(emails) > 0 {
		local, _, _ := strings.Cut(emails[0].Value, "@")
		if formatted := nameFromEmailLocal(local); formatted != "" && isValidName(formatted) {
			return &model.FieldValue{Value: formatted, Confidence: 0.55}
		}
	}

	return nil
}

// isValidName is the shared guard applied after every contact-name rule:
// 3-50 chars, 2-3 whitespace tokens (middle token of three must look like an
// initial), uppercase first letter, and no blacklisted business words.
func isValidName(name string) bool {
	if len(name) < 3 || len(name) > 50 {
		return false
	}
	if !strings.Contains(name, " ") {
		return false
	}
	parts := strings.Fields(name)
	if len(parts) < 2 || len(parts) > 3 {
		return false
	}
	if len(parts) == 3 && !initialTokenRegex.MatchString(parts[1]) {
		return false
	}

	lower := strings.ToLower(name)
	for _, invalid := range patterns.NameBlacklist {
		if strings.Contains(lower, invalid) {
			return false
		}
	}

	return name[0] >= 'A' && name[0] <= 'Z'
}

func formatNameCase(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// nameFromEmailLocal synthesizes "First Last" from an email local part when
// it splits into at least two alphabetic segments of length >= 2.
func nameFromEmailLocal(local string) string {
	cleaned := emailDigitsRegex.ReplaceAllString(local, "")
	var parts []string
	for _, p := range emailSplitterRegex.Split(cleaned, -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) < 2 {
		return ""
	}
	for _, p := range parts {
		if len(p) < 2 || !alphaSegmentRegex.MatchString(p) {
			return ""
		}
	}

	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return strings.Join(parts, " ")
}
