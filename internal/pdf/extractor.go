package pdf

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// TextExtractor extracts the native text layer from a PDF byte stream.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// PdfToText extracts text using the pdftotext CLI tool.
type PdfToText struct {
	binPath string
}

// NewPdfToText creates a PdfToText extractor. If binPath is empty,
// "pdftotext" is used.
func NewPdfToText(binPath string) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdfToText{binPath: binPath}
}

// ExtractText writes the bytes to a temp file and runs pdftotext -layout.
func (p *PdfToText) ExtractText(ctx context.Context, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "intake-*.pdf")
	if err != nil {
		return "", eris.Wrap(err, "pdf: create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", eris.Wrap(err, "pdf: write temp file")
	}
	if err := tmp.Close(); err != nil {
		return "", eris.Wrap(err, "pdf: close temp file")
	}

	cmd := exec.CommandContext(ctx, p.binPath, "-layout", tmp.Name(), "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "pdf: pdftotext failed for %s: %s", filepath.Base(tmp.Name()), stderr.String())
	}

	return stdout.String(), nil
}
