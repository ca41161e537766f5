package extract

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/intake-cli/internal/augment"
	"github.com/sells-group/intake-cli/internal/model"
)

// rawTextLimit bounds the diagnostic text prefix kept on each record.
const rawTextLimit = 500

// fullExtractionOverallThreshold and fullExtractionLowFields decide when the
// whole record is weak enough to re-derive every field from the provider.
const (
	fullExtractionOverallThreshold = 0.55
	fullExtractionLowFields        = 3
)

// Options control a single extraction run.
type Options struct {
	// Raw holds the original document bytes; required for document-level
	// augmentation when the extracted text is empty or near-empty.
	Raw []byte

	// EnableAugment gates all provider calls.
	EnableAugment bool
}

// Orchestrator runs the five extractors over one document's text and
// supplements low-confidence fields through the augmentation provider.
type Orchestrator struct {
	provider augment.Provider // nil when no provider is configured
}

// NewOrchestrator creates an Orchestrator. A nil provider disables
// augmentation with a warning instead of failing.
func NewOrchestrator(provider augment.Provider) *Orchestrator {
	return &Orchestrator{provider: provider}
}

// Extract builds a ContactRecord for one document. It never fails: provider
// errors degrade to the rule-based record with a warning attached.
func (o *Orchestrator) Extract(ctx context.Context, text, filename, id string, opts Options) *model.ContactRecord {
	emails := Emails(text)
	phones := Phones(text)
	trade := Trade(text, filename)
	company := CompanyName(text, filename)
	contact := ContactName(text, emails)

	record := &model.ContactRecord{
		ID:      id,
		Source:  filename,
		RawText: truncateRunes(text, rawTextLimit),
	}
	if company != nil {
		record.CompanyName = company.Value
		record.Confidence.CompanyName = company.Confidence
	}
	if contact != nil {
		record.ContactName = contact.Value
		record.Confidence.ContactName = contact.Confidence
	}
	if len(emails) > 0 {
		record.Email = emails[0].Value
		record.Confidence.Email = emails[0].Confidence
	}
	if len(phones) > 0 {
		record.Phone = phones[0].Value
		record.Confidence.Phone = phones[0].Confidence
	}
	if trade != nil {
		record.Trade = trade.Value
		record.Confidence.Trade = trade.Confidence
	}
	record.Confidence.Recompute()

	lowFields := LowConfidenceFields(record)
	meta := model.AugmentMeta{}

	if len(lowFields) > 0 && opts.EnableAugment {
		if o.provider == nil {
			zap.L().Warn("extract: low-confidence fields but no augmentation provider configured",
				zap.String("file", filename),
				zap.Strings("fields", lowFields),
			)
		} else {
			meta.Attempted = true
			o.augment(ctx, record, text, filename, lowFields, opts, &meta)
		}
	}

	if meta.Attempted || meta.Used || len(meta.Warnings) > 0 {
		record.Augment = &meta
	}

	record.Confidence.Recompute()
	return record
}

// augment chooses the augmentation strategy, merges the provider's output
// into the record, and records warnings on failure.
func (o *Orchestrator) augment(ctx context.Context, record *model.ContactRecord, text, filename string, lowFields []string, opts Options, meta *model.AugmentMeta) {
	hasNoText := strings.TrimSpace(text) == "" || len(strings.TrimSpace(text)) < 100
	useDocument := hasNoText && opts.Raw != nil
	useFullText := record.Confidence.Overall < fullExtractionOverallThreshold ||
		len(lowFields) >= fullExtractionLowFields

	switch {
	case useDocument:
		result, err := o.provider.ExtractFromDocument(ctx, opts.Raw, filename)
		if err != nil {
			o.recordFailure(filename, err, meta)
			return
		}
		mergeAllFields(record, SanitizeInfo(result.Info), result.Confidence, meta)

	case useFullText:
		result, err := o.provider.ExtractFromText(ctx, text, filename)
		if err != nil {
			o.recordFailure(filename, err, meta)
			return
		}
		mergeAllFields(record, SanitizeInfo(result.Info), result.Confidence, meta)

	default:
		result, err := o.provider.SupplementFields(ctx, text, filename, lowFields)
		if err != nil {
			o.recordFailure(filename, err, meta)
			return
		}
		conf := result.Confidence
		if conf == 0 {
			conf = 0.8
		}
		mergeSupplement(record, SanitizeInfo(result.Info), conf, meta)
		meta.Warnings = append(meta.Warnings, result.Warnings...)
	}
}

func (o *Orchestrator) recordFailure(filename string, err error, meta *model.AugmentMeta) {
	meta.Warnings = append(meta.Warnings, err.Error())
	zap.L().Error("extract: augmentation failed",
		zap.String("file", filename),
		zap.Error(err),
	)
}

// mergeAllFields applies the merge rule to every field with a uniform
// provider confidence.
func mergeAllFields(record *model.ContactRecord, info augment.ContactInfo, conf float64, meta *model.AugmentMeta) {
	used := false

	var changed bool
	record.CompanyName, record.Confidence.CompanyName, changed =
		MergeValue(record.CompanyName, record.Confidence.CompanyName, info.CompanyName, conf)
	used = used || changed
	record.ContactName, record.Confidence.ContactName, changed =
		MergeValue(record.ContactName, record.Confidence.ContactName, info.ContactName, conf)
	used = used || changed
	record.Email, record.Confidence.Email, changed =
		MergeValue(record.Email, record.Confidence.Email, info.Email, conf)
	used = used || changed
	record.Phone, record.Confidence.Phone, changed =
		MergeValue(record.Phone, record.Confidence.Phone, info.Phone, conf)
	used = used || changed
	record.Trade, record.Confidence.Trade, changed =
		MergeValue(record.Trade, record.Confidence.Trade, info.Trade, conf)
	used = used || changed

	meta.Used = meta.Used || used
}

// mergeSupplement applies the merge rule only to fields the provider
// actually returned, tracking which ones it filled.
func mergeSupplement(record *model.ContactRecord, info augment.ContactInfo, conf float64, meta *model.AugmentMeta) {
	type fieldMerge struct {
		name  string
		value string
		get   func() (string, float64)
		set   func(string, float64)
	}

	merges := []fieldMerge{
		{FieldCompanyName, info.CompanyName,
			func() (string, float64) { return record.CompanyName, record.Confidence.CompanyName },
			func(v string, c float64) { record.CompanyName, record.Confidence.CompanyName = v, c }},
		{FieldContactName, info.ContactName,
			func() (string, float64) { return record.ContactName, record.Confidence.ContactName },
			func(v string, c float64) { record.ContactName, record.Confidence.ContactName = v, c }},
		{FieldEmail, info.Email,
			func() (string, float64) { return record.Email, record.Confidence.Email },
			func(v string, c float64) { record.Email, record.Confidence.Email = v, c }},
		{FieldPhone, info.Phone,
			func() (string, float64) { return record.Phone, record.Confidence.Phone },
			func(v string, c float64) { record.Phone, record.Confidence.Phone = v, c }},
		{FieldTrade, info.Trade,
			func() (string, float64) { return record.Trade, record.Confidence.Trade },
			func(v string, c float64) { record.Trade, record.Confidence.Trade = v, c }},
	}

	for _, m := range merges {
		if m.value == "" {
			continue
		}
		cur, curConf := m.get()
		value, confidence, changed := MergeValue(cur, curConf, m.value, conf)
		m.set(value, confidence)
		if changed {
			meta.SupplementedFields = append(meta.SupplementedFields, m.name)
			meta.Used = true
		}
	}
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
