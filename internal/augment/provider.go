// Package augment defines the external augmentation-provider capability and
// its Claude-backed implementation. The extraction core depends only on the
// Provider interface; every provider failure is recoverable per document.
package augment

import "context"

// ContactInfo carries provider-returned field values. An empty string means
// the provider did not return that field.
type ContactInfo struct {
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Trade       string `json:"trade"`
}

// Result is the outcome of one provider call. Confidence applies uniformly
// to every returned field.
type Result struct {
	Info       ContactInfo
	Confidence float64
	Warnings   []string
}

// Provider supplies or corrects field values using broader document
// understanding than the rule-based extractors. All three operations are
// fallible network calls.
type Provider interface {
	// ExtractFromDocument derives all five fields directly from the raw
	// document bytes.
	ExtractFromDocument(ctx context.Context, data []byte, filename string) (*Result, error)

	// ExtractFromText derives all five fields from extracted text.
	ExtractFromText(ctx context.Context, text, filename string) (*Result, error)

	// SupplementFields asks only for the named low-confidence fields.
	SupplementFields(ctx context.Context, text, filename string, fields []string) (*Result, error)
}
