package model

// FieldValue is a single extracted value with its confidence score.
// An empty Value means the field was not found; confidence is always in [0,1].
type FieldValue struct {
	Value      string  `json:"value,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Found reports whether the field holds a value.
func (f FieldValue) Found() bool {
	return f.Value != ""
}

// FieldConfidence holds per-field confidence scores for a contact record.
// Overall is the arithmetic mean of the five field scores; a field that
// failed to extract contributes 0, not "unknown".
type FieldConfidence struct {
	CompanyName float64 `json:"companyName"`
	ContactName float64 `json:"contactName"`
	Email       float64 `json:"email"`
	Phone       float64 `json:"phone"`
	Trade       float64 `json:"trade"`
	Overall     float64 `json:"overall"`
}

// Recompute updates Overall from the five field scores.
func (c *FieldConfidence) Recompute() {
	c.Overall = (c.CompanyName + c.ContactName + c.Email + c.Phone + c.Trade) / 5
}

// AugmentMeta records the outcome of an augmentation pass on a record.
// It is attached only when a pass was attempted or warnings were raised.
type AugmentMeta struct {
	Attempted          bool     `json:"attempted"`
	Used               bool     `json:"used"`
	SupplementedFields []string `json:"supplementedFields,omitempty"`
	Warnings           []string `json:"warnings,omitempty"`
}

// ContactRecord is one structured contact extracted from a single document.
type ContactRecord struct {
	ID          string          `json:"id"`
	CompanyName string          `json:"companyName,omitempty"`
	ContactName string          `json:"contactName,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Trade       string          `json:"trade,omitempty"`
	Confidence  FieldConfidence `json:"confidence"`
	Source      string          `json:"source"`
	RawText     string          `json:"rawText,omitempty"`
	Augment     *AugmentMeta    `json:"augment,omitempty"`
}

// ProcessedFile is the per-document batch result. Status is "success" or
// "error"; a failed document carries an error message and no contacts.
type ProcessedFile struct {
	Filename string          `json:"filename"`
	Status   string          `json:"status"`
	Contacts []ContactRecord `json:"contacts"`
	Error    string          `json:"error,omitempty"`
}

// SubcontractorGroup is a consolidated per-company group of contacts.
type SubcontractorGroup struct {
	CompanyName string          `json:"companyName"`
	Contacts    []ContactRecord `json:"contacts"`
	Trade       string          `json:"trade,omitempty"`
	IsDuplicate bool            `json:"isDuplicate"`
	MergedFrom  []string        `json:"mergedFrom,omitempty"`
}
