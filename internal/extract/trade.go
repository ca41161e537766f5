package extract

import (
	"strings"

	"github.com/sells-group/intake-cli/internal/model"
	"github.com/sells-group/intake-cli/internal/patterns"
)

// Trade rule confidences, in rule order. The frequency rule scales with the
// keyword count instead.
const (
	tradeSubjectConf  = 0.95
	tradeScopeConf    = 0.90
	tradeFilenameConf = 0.70
)

// Trade runs the four-rule trade chain: subject-style lines, the scope-of-
// work block, whole-document keyword frequency, then the filename.
func Trade(text, filename string) *model.FieldValue {
	lowerText := strings.ToLower(text)
	lowerFilename := strings.ToLower(filename)

	// Rule 1: trade keyword inside a Re:/Subject:/proposal-for line.
	for _, re := range patterns.TradeSubjectPatterns {
		match := re.FindString(text)
		if match == "" {
			continue
		}
		lowerMatch := strings.ToLower(match)
		for _, mapping := range patterns.TradeMappings {
			for _, keyword := range mapping.Keywords {
				if strings.Contains(lowerMatch, keyword) {
					return &model.FieldValue{Value: mapping.Trade, Confidence: tradeSubjectConf}
				}
			}
		}
	}

	// Rule 2: trade keyword inside the scope-of-work block.
	if m := patterns.ScopeOfWorkRegex.FindStringSubmatch(text); m != nil {
		scope := strings.ToLower(m[1])
		for _, mapping := range patterns.TradeMappings {
			for _, keyword := range mapping.Keywords {
				if strings.Contains(scope, keyword) {
					return &model.FieldValue{Value: mapping.Trade, Confidence: tradeScopeConf}
				}
			}
		}
	}

	// Rule 3: whole-document keyword frequency; highest count wins, ties
	// broken by mapping order.
	bestTrade := ""
	bestCount := 0
	for _, mapping := range patterns.TradeMappings {
		count := 0
		for _, keyword := range mapping.Keywords {
			if strings.Contains(lowerText, keyword) {
				count++
			}
		}
		if count > bestCount {
			bestTrade = mapping.Trade
			bestCount = count
		}
	}
	if bestCount > 0 {
		conf := 0.60 + 0.05*float64(bestCount)
		if conf > 0.85 {
			conf = 0.85
		}
		return &model.FieldValue{Value: bestTrade, Confidence: conf}
	}

	// Rule 4: the first word of a trade keyword inside the filename.
	for _, mapping := range patterns.TradeMappings {
		for _, keyword := range mapping.Keywords {
			first, _, _ := strings.Cut(keyword, " ")
			if strings.Contains(lowerFilename, first) {
				return &model.FieldValue{Value: mapping.Trade, Confidence: tradeFilenameConf}
			}
		}
	}

	return nil
}
