package main

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/intake-cli/internal/augment"
	"github.com/sells-group/intake-cli/internal/batch"
	"github.com/sells-group/intake-cli/internal/extract"
	"github.com/sells-group/intake-cli/internal/model"
	"github.com/sells-group/intake-cli/internal/parser"
	"github.com/sells-group/intake-cli/internal/pdf"
	"github.com/sells-group/intake-cli/pkg/anthropic"
)

var (
	processNoAugment bool
	processOutput    string
)

// processResult is the JSON document written for a batch run.
type processResult struct {
	ProcessedFiles []model.ProcessedFile      `json:"processedFiles"`
	Contacts       []model.ContactRecord      `json:"contacts"`
	Groups         []model.SubcontractorGroup `json:"groups"`
}

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Process documents into grouped contact records",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats := parser.NewStats()
		processor := newProcessor(stats)

		inputs := make([]batch.Input, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return eris.Wrapf(err, "read %s", path)
			}
			inputs = append(inputs, batch.Input{
				Filename: path,
				Data:     data,
				ID:       uuid.NewString(),
			})
		}

		enableAugment := cfg.Augment.Enabled && !processNoAugment

		files := processor.ProcessAll(cmd.Context(), inputs, batch.Options{
			EnableAugment: enableAugment,
		})
		records := batch.Collect(files)
		groups := batch.Group(records)

		stats.LogSummary()

		return writeResult(processResult{
			ProcessedFiles: files,
			Contacts:       records,
			Groups:         groups,
		})
	},
}

func newProcessor(stats *parser.Stats) *batch.Processor {
	var provider augment.Provider
	if cfg.Anthropic.Key != "" {
		provider = augment.NewClaudeProvider(
			anthropic.NewClient(cfg.Anthropic.Key),
			cfg.Anthropic.Model,
		)
	} else {
		zap.L().Warn("process: anthropic key not configured, augmentation disabled")
	}

	p := parser.New(pdf.NewPdfToText(cfg.Parser.PdfToTextPath), stats)
	orchestrator := extract.NewOrchestrator(provider)

	return batch.NewProcessor(p, orchestrator, stats, cfg.Batch.MaxConcurrentFiles)
}

func writeResult(result processResult) error {
	out := os.Stdout
	if processOutput != "" {
		f, err := os.Create(processOutput)
		if err != nil {
			return eris.Wrapf(err, "create %s", processOutput)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func init() {
	processCmd.Flags().BoolVar(&processNoAugment, "no-augment", false, "disable the Claude augmentation pass")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "write the JSON result to a file instead of stdout")
	rootCmd.AddCommand(processCmd)
}
