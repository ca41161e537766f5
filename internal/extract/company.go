package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/intake-cli/internal/model"
	"github.com/sells-group/intake-cli/internal/patterns"
)

// Company rule confidences, in rule order.
const (
	companySuffixConf       = 0.92
	companyUppercaseConf    = 0.88
	companyFromLabelConf    = 0.85
	companyProposalLineConf = 0.80
	companyFilenameConf     = 0.60
)

var (
	companySuffixRegex = regexp.MustCompile(
		`(?i)([A-Z][A-Za-z0-9\s&.,'-]+(?:` + strings.Join(patterns.CompanySuffixes, "|") + `)\.?)`)
	companyPrefixReject = regexp.MustCompile(`(?i)^(to|from|bill|ship|project|attn|attention|re|subject)`)
	lineStartReject     = regexp.MustCompile(`(?i)^\d|^(date|to|from|re|subject|attn)`)
	dateLineRegex       = regexp.MustCompile(`^\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}`)
	fromLabelRegex      = regexp.MustCompile(`(?i)(^|\n)\s*(?:from|submitted by)[:\s]+([^\n]+)`)
	proposalWordRegex   = regexp.MustCompile(`(?i)\bPROPOSAL\b`)
	fileExtRegex        = regexp.MustCompile(`(?i)\.(pdf|xlsx?|txt)$`)
	filenameNoiseRegex  = regexp.MustCompile(`(?i)\b(proposal|bid|quote|revised?|rev\d*|original|\d+)\b`)
	whitespaceRegex     = regexp.MustCompile(`\s+`)
	digitRegex          = regexp.MustCompile(`\d`)

	addressHintRegexes = compileAddressHints()
)

func compileAddressHints() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns.AddressHints))
	for i, hint := range patterns.AddressHints {
		out[i] = regexp.MustCompile(`(?i)\b` + hint + `\b`)
	}
	return out
}

// CompanyName runs the five-rule company chain; the first rule that fires
// wins. Returns nil when no rule produces a usable candidate.
func CompanyName(text, filename string) *model.FieldValue {
	lines := nonEmptyLines(text)

	// Rule 1: capitalized text ending in a company suffix within the first
	// 40 lines, guarded against addresses, boilerplate, and emails.
	window := lines
	if len(window) > 40 {
		window = window[:40]
	}
	for _, match := range companySuffixRegex.FindAllString(strings.Join(window, "\n"), -1) {
		cleaned := strings.TrimSpace(match)
		if len(cleaned) <= 5 || len(cleaned) >= 80 {
			continue
		}
		if companyPrefixReject.MatchString(cleaned) {
			continue
		}
		if isLikelyNonCompanyLine(cleaned) {
			continue
		}
		return &model.FieldValue{Value: cleaned, Confidence: companySuffixConf}
	}

	// Rule 2: a short, mostly-uppercase line near the top of the document.
	for i := 0; i < len(lines) && i < 10; i++ {
		line := lines[i]
		if len(line) < 5 || len(line) > 80 {
			continue
		}
		if lineStartReject.MatchString(line) || dateLineRegex.MatchString(line) {
			continue
		}
		if isLikelyNonCompanyLine(line) {
			continue
		}

		letters := 0
		upper := 0
		for _, r := range line {
			if r >= 'a' && r <= 'z' {
				letters++
			} else if r >= 'A' && r <= 'Z' {
				letters++
				upper++
			}
		}
		if letters > 3 && float64(upper)/float64(letters) > 0.8 {
			return &model.FieldValue{Value: line, Confidence: companyUppercaseConf}
		}
	}

	// Rule 3: text following a from/submitted-by label.
	if m := fromLabelRegex.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[2])
		if len(candidate) > 3 && len(candidate) < 80 {
			if isLikelyNonCompanyLine(candidate) {
				return nil
			}
			return &model.FieldValue{Value: candidate, Confidence: companyFromLabelConf}
		}
	}

	// Rule 4: the line immediately preceding an early PROPOSAL heading.
	if loc := proposalWordRegex.FindStringIndex(text); loc != nil && loc[0] < 500 {
		var before []string
		for _, l := range strings.Split(text[:loc[0]], "\n") {
			if trimmed := strings.TrimSpace(l); len(trimmed) > 3 {
				before = append(before, trimmed)
			}
		}
		if len(before) > 0 {
			candidate := before[len(before)-1]
			if len(candidate) < 80 && (candidate[0] < '0' || candidate[0] > '9') {
				if isLikelyNonCompanyLine(candidate) {
					return nil
				}
				return &model.FieldValue{Value: candidate, Confidence: companyProposalLineConf}
			}
		}
	}

	// Rule 5: the filename, stripped of extension and boilerplate.
	name := fileExtRegex.ReplaceAllString(filename, "")
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = filenameNoiseRegex.ReplaceAllString(name, "")
	name = strings.TrimSpace(whitespaceRegex.ReplaceAllString(name, " "))
	if len(name) > 3 {
		return &model.FieldValue{Value: name, Confidence: companyFilenameConf}
	}

	return nil
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(l); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func isAddressLike(line string) bool {
	hasHint := false
	for _, re := range addressHintRegexes {
		if re.MatchString(line) {
			hasHint = true
			break
		}
	}
	digitCount := len(digitRegex.FindAllString(line, -1))
	return (hasHint && digitCount >= 3) || patterns.ZipRegex.MatchString(line)
}

func isLikelyNonCompanyLine(line string) bool {
	lower := strings.ToLower(line)
	for _, term := range patterns.CompanyLineBlacklist {
		if strings.Contains(lower, term) {
			return true
		}
	}
	if patterns.EmailRegex.MatchString(line) {
		return true
	}
	return isAddressLike(line)
}
