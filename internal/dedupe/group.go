package dedupe

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/intake-cli/internal/model"
)

const unknownCompany = "Unknown Company"

// Fuzzy-match thresholds for AreDuplicates.
const (
	companySimilarityThreshold = 0.85
	contactSimilarityThreshold = 0.8
	emailLocalPartThreshold    = 0.8
)

// AreDuplicates reports whether two records observe the same real-world
// contact: exact email match, exact phone match, or high company-name
// similarity combined with a similar contact name or email local part.
// The predicate is symmetric.
func AreDuplicates(a, b *model.ContactRecord) bool {
	if a.Email != "" && b.Email != "" && a.Email == b.Email {
		return true
	}
	if a.Phone != "" && b.Phone != "" && a.Phone == b.Phone {
		return true
	}

	if a.CompanyName == "" || b.CompanyName == "" {
		return false
	}
	if Similarity(a.CompanyName, b.CompanyName) <= companySimilarityThreshold {
		return false
	}

	if a.ContactName != "" && b.ContactName != "" &&
		Similarity(a.ContactName, b.ContactName) > contactSimilarityThreshold {
		return true
	}

	if a.Email != "" && b.Email != "" {
		localA, _, _ := strings.Cut(a.Email, "@")
		localB, _, _ := strings.Cut(b.Email, "@")
		if Similarity(localA, localB) > emailLocalPartThreshold {
			return true
		}
	}

	return false
}

// mergeRecords folds two duplicate records into one, keeping the
// higher-confidence value for each field and the maximum confidence. The
// first record's id and raw text are kept; sources are concatenated.
func mergeRecords(a, b *model.ContactRecord) *model.ContactRecord {
	pick := func(va string, ca float64, vb string, cb float64) string {
		if ca >= cb {
			return va
		}
		return vb
	}

	merged := &model.ContactRecord{
		ID:          a.ID,
		CompanyName: pick(a.CompanyName, a.Confidence.CompanyName, b.CompanyName, b.Confidence.CompanyName),
		ContactName: pick(a.ContactName, a.Confidence.ContactName, b.ContactName, b.Confidence.ContactName),
		Email:       pick(a.Email, a.Confidence.Email, b.Email, b.Confidence.Email),
		Phone:       pick(a.Phone, a.Confidence.Phone, b.Phone, b.Confidence.Phone),
		Trade:       pick(a.Trade, a.Confidence.Trade, b.Trade, b.Confidence.Trade),
		Confidence: model.FieldConfidence{
			CompanyName: max(a.Confidence.CompanyName, b.Confidence.CompanyName),
			ContactName: max(a.Confidence.ContactName, b.Confidence.ContactName),
			Email:       max(a.Confidence.Email, b.Confidence.Email),
			Phone:       max(a.Confidence.Phone, b.Confidence.Phone),
			Trade:       max(a.Confidence.Trade, b.Confidence.Trade),
		},
		Source:  a.Source + ", " + b.Source,
		RawText: a.RawText,
	}
	merged.Confidence.Recompute()

	return merged
}

// DeduplicateAndGroup is the transitive merge pass: each record is folded
// into the first existing group containing a fuzzy duplicate, collapsing
// that group to a single merged contact; otherwise it starts a new group.
func DeduplicateAndGroup(records []model.ContactRecord) []model.SubcontractorGroup {
	var groups []model.SubcontractorGroup

	for i := range records {
		record := &records[i]
		found := false

		for g := range groups {
			for c := range groups[g].Contacts {
				if AreDuplicates(record, &groups[g].Contacts[c]) {
					merged := mergeRecords(&groups[g].Contacts[c], record)
					groups[g].Contacts = []model.ContactRecord{*merged}
					groups[g].MergedFrom = append(groups[g].MergedFrom, record.Source)
					groups[g].IsDuplicate = true
					found = true
					break
				}
			}
			if found {
				break
			}
		}

		if !found {
			groups = append(groups, model.SubcontractorGroup{
				CompanyName: companyOrUnknown(record.CompanyName),
				Contacts:    []model.ContactRecord{*record},
				Trade:       record.Trade,
			})
		}
	}

	return groups
}

// GroupByCompany is the company-key pass: records are bucketed by
// lower-cased company name (falling back to email, then id), and only
// exact-field duplicates within a bucket are dropped, preserving multiple
// distinct contacts per company.
func GroupByCompany(records []model.ContactRecord) []model.SubcontractorGroup {
	buckets := make(map[string][]model.ContactRecord)
	var order []string

	for _, record := range records {
		key := record.CompanyName
		if key == "" {
			key = record.Email
		}
		if key == "" {
			key = record.ID
		}
		key = strings.ToLower(key)

		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], record)
	}

	groups := make([]model.SubcontractorGroup, 0, len(order))

	for _, key := range order {
		bucket := buckets[key]
		group := model.SubcontractorGroup{
			CompanyName: companyOrUnknown(bucket[0].CompanyName),
			Trade:       bucket[0].Trade,
		}

		if len(bucket) == 1 {
			group.Contacts = bucket
			groups = append(groups, group)
			continue
		}

		var unique []model.ContactRecord
		for _, record := range bucket {
			dup := false
			for i := range unique {
				if unique[i].Email == record.Email ||
					unique[i].Phone == record.Phone ||
					(unique[i].ContactName != "" && record.ContactName != "" &&
						unique[i].ContactName == record.ContactName) {
					dup = true
					break
				}
			}
			if !dup {
				unique = append(unique, record)
			}
		}

		group.Contacts = unique
		if len(unique) < len(bucket) {
			group.IsDuplicate = true
			for _, record := range bucket {
				group.MergedFrom = append(group.MergedFrom, record.Source)
			}
		}
		groups = append(groups, group)
	}

	return groups
}

// MergeStrategies reconciles the two passes: for each transitive-merge
// group, the company-key group with the same company name is preferred when
// it preserved strictly more distinct contacts. Output keeps the transitive
// pass's order.
func MergeStrategies(deduped, grouped []model.SubcontractorGroup) []model.SubcontractorGroup {
	result := make([]model.SubcontractorGroup, 0, len(deduped))

	for _, dg := range deduped {
		key := strings.ToLower(dg.CompanyName)
		chosen := dg
		for _, gg := range grouped {
			if strings.ToLower(gg.CompanyName) == key {
				if len(gg.Contacts) > len(dg.Contacts) {
					chosen = gg
				}
				break
			}
		}
		result = append(result, chosen)
	}

	return result
}

// Group runs both passes over a batch and reconciles them.
func Group(records []model.ContactRecord) []model.SubcontractorGroup {
	deduped := DeduplicateAndGroup(records)
	grouped := GroupByCompany(records)
	merged := MergeStrategies(deduped, grouped)

	zap.L().Info("dedupe: grouped batch",
		zap.Int("records", len(records)),
		zap.Int("groups", len(merged)),
	)

	return merged
}

func companyOrUnknown(name string) string {
	if name == "" {
		return unknownCompany
	}
	return name
}
