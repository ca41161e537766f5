package extract

import (
	"strings"

	"github.com/sells-group/intake-cli/internal/augment"
	"github.com/sells-group/intake-cli/internal/model"
)

// Per-field low-confidence thresholds. A field is low-confidence when it is
// missing or scores below its threshold.
const (
	thresholdCompanyName = 0.6
	thresholdContactName = 0.6
	thresholdEmail       = 0.7
	thresholdPhone       = 0.7
	thresholdTrade       = 0.6
)

// Field names used in augmentation requests and metadata.
const (
	FieldCompanyName = "companyName"
	FieldContactName = "contactName"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldTrade       = "trade"
)

// LowConfidenceFields returns the fields of a record that are missing or
// below their threshold, in fixed field order.
func LowConfidenceFields(r *model.ContactRecord) []string {
	var fields []string
	if r.CompanyName == "" || r.Confidence.CompanyName < thresholdCompanyName {
		fields = append(fields, FieldCompanyName)
	}
	if r.ContactName == "" || r.Confidence.ContactName < thresholdContactName {
		fields = append(fields, FieldContactName)
	}
	if r.Email == "" || r.Confidence.Email < thresholdEmail {
		fields = append(fields, FieldEmail)
	}
	if r.Phone == "" || r.Confidence.Phone < thresholdPhone {
		fields = append(fields, FieldPhone)
	}
	if r.Trade == "" || r.Confidence.Trade < thresholdTrade {
		fields = append(fields, FieldTrade)
	}
	return fields
}

// MergeValue applies the provider merge rule for one field: keep the current
// value unless the provider supplied one and either the current value is
// absent or the provider's confidence is at least as high. Reports whether
// the provider's value was adopted.
func MergeValue(current string, currentConf float64, provided string, providedConf float64) (string, float64, bool) {
	if provided == "" {
		return current, currentConf, false
	}
	if current == "" || providedConf >= currentConf {
		return provided, providedConf, true
	}
	return current, currentConf, false
}

// SanitizeInfo trims provider-returned values to non-empty-or-absent,
// validates the email shape, and normalizes the phone, discarding values
// that fail.
func SanitizeInfo(info augment.ContactInfo) augment.ContactInfo {
	return augment.ContactInfo{
		CompanyName: strings.TrimSpace(info.CompanyName),
		ContactName: strings.TrimSpace(info.ContactName),
		Email:       NormalizeEmail(info.Email),
		Phone:       NormalizePhone(info.Phone),
		Trade:       strings.TrimSpace(info.Trade),
	}
}
