// Package dedupe reconciles a batch of contact records into per-company
// groups using two independent grouping strategies.
package dedupe

import "strings"

// Similarity computes character-set Jaccard similarity between two strings:
// 1.0 for equal (after lower-casing and trimming), 0.8 when one contains the
// other, otherwise |intersection| / |union| of their character sets.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	s1 := strings.ToLower(strings.TrimSpace(a))
	s2 := strings.ToLower(strings.TrimSpace(b))

	if s1 == s2 {
		return 1
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return 0.8
	}

	set1 := runeSet(s1)
	set2 := runeSet(s2)

	intersection := 0
	union := len(set2)
	for r := range set1 {
		if set2[r] {
			intersection++
		} else {
			union++
		}
	}

	return float64(intersection) / float64(union)
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}
