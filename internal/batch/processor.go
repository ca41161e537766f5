// Package batch is the entry point consumed by callers: it runs documents
// through parse → extract → record and groups the collected records.
package batch

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/intake-cli/internal/dedupe"
	"github.com/sells-group/intake-cli/internal/extract"
	"github.com/sells-group/intake-cli/internal/model"
	"github.com/sells-group/intake-cli/internal/parser"
)

// Input is one document submitted to the batch.
type Input struct {
	Filename string
	Data     []byte
	ID       string
}

// Options control batch processing.
type Options struct {
	EnableAugment bool
}

// Processor runs documents through the parse and extraction stages.
// Documents are independent; a batch may run them in parallel and collect
// results in any order before grouping.
type Processor struct {
	parser       *parser.Parser
	orchestrator *extract.Orchestrator
	stats        *parser.Stats
	concurrency  int
}

// NewProcessor creates a Processor. Concurrency below 1 is treated as 1.
func NewProcessor(p *parser.Parser, o *extract.Orchestrator, stats *parser.Stats, concurrency int) *Processor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Processor{parser: p, orchestrator: o, stats: stats, concurrency: concurrency}
}

// ProcessDocument parses one document and extracts its contact record.
// Parse failures are returned; augmentation failures degrade to the
// rule-based record with a warning attached.
func (p *Processor) ProcessDocument(ctx context.Context, data []byte, filename, id string, opts Options) (*model.ContactRecord, error) {
	text, err := p.parser.ParseFile(ctx, data, filename)
	if err != nil {
		return nil, err
	}

	record := p.orchestrator.Extract(ctx, text, filename, id, extract.Options{
		Raw:           data,
		EnableAugment: opts.EnableAugment,
	})

	if record.Augment != nil && record.Augment.Used {
		p.stats.MarkAugmented(filename)
	}

	return record, nil
}

// ProcessAll processes every input, in parallel up to the configured
// concurrency, and returns one entry per input in input order, tagged
// success or error. Per-document failures never abort the batch.
func (p *Processor) ProcessAll(ctx context.Context, inputs []Input, opts Options) []model.ProcessedFile {
	results := make([]model.ProcessedFile, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			record, err := p.ProcessDocument(gctx, input.Data, input.Filename, input.ID, opts)
			if err != nil {
				zap.L().Error("batch: document failed",
					zap.String("file", input.Filename),
					zap.Error(err),
				)
				results[i] = model.ProcessedFile{
					Filename: input.Filename,
					Status:   "error",
					Error:    errorMessage(err),
				}
				return nil
			}
			results[i] = model.ProcessedFile{
				Filename: input.Filename,
				Status:   "success",
				Contacts: []model.ContactRecord{*record},
			}
			return nil
		})
	}

	// Workers only return nil; Wait is for completion, not errors.
	_ = g.Wait()

	return results
}

// Collect flattens the contact records of successful files, preserving
// input order for the grouping pass.
func Collect(files []model.ProcessedFile) []model.ContactRecord {
	var records []model.ContactRecord
	for _, f := range files {
		if f.Status != "success" {
			continue
		}
		records = append(records, f.Contacts...)
	}
	return records
}

// Group consolidates a batch of records into per-company groups.
func Group(records []model.ContactRecord) []model.SubcontractorGroup {
	return dedupe.Group(records)
}

func errorMessage(err error) string {
	if eris.Is(err, parser.ErrUnsupportedFileType) {
		return "unsupported file type"
	}
	return err.Error()
}
