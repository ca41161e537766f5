package main

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sells-group/intake-cli/internal/dedupe"
	"github.com/sells-group/intake-cli/internal/extract"
	"github.com/sells-group/intake-cli/internal/model"
)

// demoDocs are synthetic proposals that exercise extraction and grouping
// without touching disk or the network.
var demoDocs = []struct {
	filename string
	text     string
}{
	{
		filename: "Apex Electric LLC Proposal.pdf",
		text: `Apex Electric LLC
123 Industrial Way
Summit, NJ 07901

PROPOSAL

Re: Electrical work for Riverside Plaza

Scope of Work: complete electrical installation including panels,
conduit, and lighting fixtures.

Contact: Dan Romero
dan.romero@apexelectric.com
(908) 555-0142

Sincerely,
Dan Romero
Estimator`,
	},
	{
		filename: "apex electrical revised bid.pdf",
		text: `From: Apex Electrical
Attn: Project Team

Proposal for electrical and low voltage cabling.

Dan Romero
dan.romero@apexelectric.com
Phone: 908-555-0142`,
	},
	{
		filename: "Summit Plumbing Co Quote.txt",
		text: `SUMMIT PLUMBING CO

Prepared by: Maria Vasquez
maria@summitplumbing.com
Tel: (201) 555-0188

Scope of Work: rough-in plumbing, fixtures, and water heater
installation for Riverside Plaza.`,
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run extraction and grouping over built-in sample proposals",
	RunE: func(cmd *cobra.Command, args []string) error {
		orchestrator := extract.NewOrchestrator(nil)

		var records []model.ContactRecord
		for _, doc := range demoDocs {
			record := orchestrator.Extract(cmd.Context(), doc.text, doc.filename, uuid.NewString(), extract.Options{})
			records = append(records, *record)
		}

		groups := dedupe.Group(records)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Contacts []model.ContactRecord      `json:"contacts"`
			Groups   []model.SubcontractorGroup `json:"groups"`
		}{records, groups})
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
