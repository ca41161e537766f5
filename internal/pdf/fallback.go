package pdf

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"io"
	"regexp"
	"strings"
)

var (
	streamMarker    = []byte("stream")
	endstreamMarker = []byte("endstream")

	tjArrayRegex  = regexp.MustCompile(`(?s)\[(.*?)\]\s*TJ`)
	tjSingleRegex = regexp.MustCompile(`(?s)\((.*?)\)\s*Tj`)

	controlCharRegex = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F]")
)

// FallbackText recovers text from a raw PDF byte stream without parsing the
// object graph: it inflates every stream...endstream region and tokenizes the
// result for Tj/TJ show operators. If no operator text is found it degrades
// to printable-ASCII run extraction. It never fails; worst case it returns "".
func FallbackText(data []byte) string {
	var decoded []string
	for _, stream := range findStreams(data) {
		if s, ok := inflateStream(stream); ok {
			decoded = append(decoded, s)
		}
	}

	combined := strings.Join(decoded, "\n")
	var chunks []string

	if len(combined) > 0 {
		for _, m := range tjArrayRegex.FindAllStringSubmatch(combined, -1) {
			if parsed := strings.TrimSpace(parseTJBlock(m[1])); parsed != "" {
				chunks = append(chunks, parsed)
			}
		}
		for _, m := range tjSingleRegex.FindAllStringSubmatch(combined, -1) {
			if parsed := strings.TrimSpace(decodeString(m[1])); parsed != "" {
				chunks = append(chunks, parsed)
			}
		}
	}

	if len(chunks) == 0 {
		return asciiRuns(data, 4)
	}

	return strings.Join(chunks, "\n")
}

// IsBinaryGarbage reports whether fallback output still carries PDF structure
// and should be discarded. Control characters are only checked in the first
// 500 characters; the narrow window is intentional.
func IsBinaryGarbage(text string) bool {
	if len(text) <= 100 {
		return false
	}
	if strings.Contains(text, "%PDF-") ||
		strings.Contains(text, "/DCTDecode") ||
		strings.Contains(text, "/FlateDecode") ||
		strings.Contains(text, "stream\n") {
		return true
	}
	head := text
	if len(head) > 500 {
		head = head[:500]
	}
	return controlCharRegex.MatchString(head)
}

// findStreams locates every stream...endstream byte range, skipping the
// line ending after the opening marker per PDF convention.
func findStreams(data []byte) [][]byte {
	var streams [][]byte
	offset := 0

	for offset < len(data) {
		idx := bytes.Index(data[offset:], streamMarker)
		if idx == -1 {
			break
		}
		start := offset + idx + len(streamMarker)
		if start < len(data)-1 && data[start] == '\r' && data[start+1] == '\n' {
			start += 2
		} else if start < len(data) && data[start] == '\n' {
			start++
		}

		endIdx := bytes.Index(data[start:], endstreamMarker)
		if endIdx == -1 {
			break
		}
		streams = append(streams, data[start:start+endIdx])
		offset = start + endIdx + len(endstreamMarker)
	}

	return streams
}

// inflateStream tries zlib first, then raw headerless deflate. Streams that
// fail both are dropped; that is expected for image and font streams. The
// output is decoded one byte per character.
func inflateStream(stream []byte) (string, bool) {
	if r, err := zlib.NewReader(bytes.NewReader(stream)); err == nil {
		if out, err := io.ReadAll(r); err == nil {
			_ = r.Close()
			return latin1(out), true
		}
		_ = r.Close()
	}

	r := flate.NewReader(bytes.NewReader(stream))
	out, err := io.ReadAll(r)
	_ = r.Close()
	if err == nil && len(out) > 0 {
		return latin1(out), true
	}

	return "", false
}

// latin1 maps every byte to the same code point, preserving content-stream
// bytes that are not valid UTF-8.
func latin1(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// parseTJBlock extracts the parenthesized string contents of a TJ array,
// ignoring the kerning numbers between them. Parentheses inside strings may
// be backslash-escaped or nested; depth is tracked explicitly.
func parseTJBlock(block string) string {
	var result strings.Builder
	i := 0

	for i < len(block) {
		if block[i] != '(' {
			i++
			continue
		}
		i++
		depth := 1
		var buf strings.Builder
		for i < len(block) {
			c := block[i]
			if c == '\\' {
				buf.WriteByte(c)
				i++
				if i < len(block) {
					buf.WriteByte(block[i])
					i++
				}
				continue
			}
			if c == '(' {
				depth++
				buf.WriteByte(c)
				i++
				continue
			}
			if c == ')' {
				depth--
				if depth == 0 {
					i++
					break
				}
				buf.WriteByte(c)
				i++
				continue
			}
			buf.WriteByte(c)
			i++
		}
		result.WriteString(decodeString(buf.String()))
	}

	return result.String()
}

// decodeString resolves backslash escapes inside a PDF string literal:
// \n \r \t \b \f, escaped literals, and up to three-digit octal escapes.
func decodeString(value string) string {
	var decoded strings.Builder
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if ch != '\\' {
			decoded.WriteByte(ch)
			continue
		}
		i++
		if i >= len(value) {
			break
		}
		next := value[i]
		switch {
		case next == 'n':
			decoded.WriteByte('\n')
		case next == 'r':
			decoded.WriteByte('\r')
		case next == 't':
			decoded.WriteByte('\t')
		case next == 'b':
			decoded.WriteByte('\b')
		case next == 'f':
			decoded.WriteByte('\f')
		case next >= '0' && next <= '7':
			val := int(next - '0')
			for j := 0; j < 2 && i+1 < len(value); j++ {
				peek := value[i+1]
				if peek < '0' || peek > '7' {
					break
				}
				val = val*8 + int(peek-'0')
				i++
			}
			decoded.WriteByte(byte(val))
		default:
			decoded.WriteByte(next)
		}
	}
	return decoded.String()
}

// asciiRuns joins maximal runs of printable ASCII of at least minLength with
// newlines. Last-resort extraction so the parser always returns something.
func asciiRuns(data []byte, minLength int) string {
	var results []string
	var current strings.Builder

	for _, b := range data {
		if b >= 32 && b <= 126 {
			current.WriteByte(b)
			continue
		}
		if current.Len() >= minLength {
			results = append(results, current.String())
		}
		current.Reset()
	}
	if current.Len() >= minLength {
		results = append(results, current.String())
	}

	return strings.Join(results, "\n")
}
