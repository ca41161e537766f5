// Package parser turns raw document bytes into plain text, choosing the
// reader by file extension and, for PDFs, falling back to a byte-level
// recovery parser when the native text layer is sparse.
package parser

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/intake-cli/internal/pdf"
)

// ErrUnsupportedFileType marks a file whose extension is not recognized.
// Fatal for that single document only; never aborts the batch.
var ErrUnsupportedFileType = eris.New("parser: unsupported file type")

// nativeTextThreshold is the minimum number of extracted characters for the
// native PDF text layer to be considered usable.
const nativeTextThreshold = 100

// Parser converts raw document bytes to plain text.
type Parser struct {
	extractor pdf.TextExtractor // nil disables the native text layer
	stats     *Stats            // nil disables instrumentation
}

// New creates a Parser. Both the native PDF extractor and the stats
// accumulator are optional.
func New(extractor pdf.TextExtractor, stats *Stats) *Parser {
	return &Parser{extractor: extractor, stats: stats}
}

// ParseFile extracts plain text from a document based on its extension.
func (p *Parser) ParseFile(ctx context.Context, data []byte, filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	switch ext {
	case "pdf":
		return p.parsePDF(ctx, data, filename), nil
	case "xlsx", "xls":
		text, err := SheetsText(data)
		if err != nil {
			return "", err
		}
		p.stats.Record(filename, MethodNative, len(text))
		return text, nil
	case "txt":
		text := string(data)
		p.stats.Record(filename, MethodNative, len(text))
		return text, nil
	default:
		return "", eris.Wrapf(ErrUnsupportedFileType, "parser: %s", filename)
	}
}

// parsePDF tries the native text layer first, then the byte-level fallback
// parser. It never fails: a document with no recoverable text yields "".
func (p *Parser) parsePDF(ctx context.Context, data []byte, filename string) string {
	if p.extractor != nil {
		text, err := p.extractor.ExtractText(ctx, data)
		if err != nil {
			zap.L().Warn("parser: native pdf extraction failed, trying fallback",
				zap.String("file", filename),
				zap.Error(err),
			)
		} else if len(strings.TrimSpace(text)) > nativeTextThreshold {
			zap.L().Debug("parser: pdf has native text",
				zap.String("file", filename),
				zap.Int("chars", len(text)),
			)
			p.stats.Record(filename, MethodNative, len(text))
			return text
		}
	}

	zap.L().Debug("parser: low native text content, using fallback parser",
		zap.String("file", filename),
	)

	fallback := pdf.FallbackText(data)

	if pdf.IsBinaryGarbage(fallback) {
		zap.L().Warn("parser: fallback returned binary data, skipping text extraction",
			zap.String("file", filename),
		)
		p.stats.Record(filename, MethodFallback, 0)
		return ""
	}

	if len(fallback) > nativeTextThreshold {
		zap.L().Debug("parser: fallback extraction successful",
			zap.String("file", filename),
			zap.Int("chars", len(fallback)),
		)
		p.stats.Record(filename, MethodFallback, len(fallback))
		return fallback
	}

	p.stats.Record(filename, MethodFallback, 0)
	return ""
}
