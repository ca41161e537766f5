package pdf

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zlibCompress(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func pdfWithStream(t *testing.T, content string) []byte {
	t.Helper()
	var doc bytes.Buffer
	doc.WriteString("%PDF-1.4\n1 0 obj\n<< /Length 99 /Filter /FlateDecode >>\nstream\n")
	doc.Write(zlibCompress(t, content))
	doc.WriteString("\nendstream\nendobj\n%%EOF\n")
	return doc.Bytes()
}

func TestFallbackText_TJArray(t *testing.T) {
	data := pdfWithStream(t, "BT /F1 12 Tf [(Hello) -250 (World)] TJ ET")
	assert.Equal(t, "HelloWorld", FallbackText(data))
}

func TestFallbackText_SingleTj(t *testing.T) {
	data := pdfWithStream(t, "BT (Apex Electric LLC) Tj ET")
	assert.Equal(t, "Apex Electric LLC", FallbackText(data))
}

func TestFallbackText_OctalAndEscapeSequences(t *testing.T) {
	data := pdfWithStream(t, `BT (Apex\040Electric \(LLC\)) Tj ET`)
	assert.Equal(t, "Apex Electric (LLC)", FallbackText(data))
}

func TestFallbackText_MultipleStreams(t *testing.T) {
	var doc bytes.Buffer
	doc.WriteString("%PDF-1.4\nstream\n")
	doc.Write(zlibCompress(t, "(first page) Tj"))
	doc.WriteString("\nendstream\nstream\n")
	doc.Write(zlibCompress(t, "(second page) Tj"))
	doc.WriteString("\nendstream\n")

	assert.Equal(t, "first page\nsecond page", FallbackText(doc.Bytes()))
}

func TestFallbackText_AsciiRunFallback(t *testing.T) {
	data := []byte("\x00\x01ACME BUILDERS\x02\x03Tel: 555\xff\x04ab\x05")
	assert.Equal(t, "ACME BUILDERS\nTel: 555", FallbackText(data))
}

func TestFallbackText_NeverPanics(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte("stream"),
		[]byte("stream\nendstream"),
		[]byte("stream\n\x78\x9c\x01\x02\x03endstream"),
		[]byte("endstream before stream"),
		bytes.Repeat([]byte{0x00, 0xff, 0x7f}, 1000),
	}
	for _, data := range inputs {
		assert.NotPanics(t, func() { FallbackText(data) })
	}
}

func TestInflateStream_ZlibAndRawDeflate(t *testing.T) {
	content := "content stream bytes"

	out, ok := inflateStream(zlibCompress(t, content))
	require.True(t, ok)
	assert.Equal(t, content, out)

	var raw bytes.Buffer
	fw, err := flate.NewWriter(&raw, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	out, ok = inflateStream(raw.Bytes())
	require.True(t, ok)
	assert.Equal(t, content, out)

	_, ok = inflateStream([]byte("definitely not compressed"))
	assert.False(t, ok)
}

func TestParseTJBlock(t *testing.T) {
	assert.Equal(t, "HelloWorld", parseTJBlock("(Hello) -250 (World)"))
	assert.Equal(t, "a (b) c", parseTJBlock(`(a \(b\) c)`))
	assert.Equal(t, "nested (paren)", parseTJBlock("(nested (paren))"))
	assert.Equal(t, "", parseTJBlock("-250 12 0"))
}

func TestDecodeString(t *testing.T) {
	assert.Equal(t, "line1\nline2", decodeString(`line1\nline2`))
	assert.Equal(t, "tab\there", decodeString(`tab\there`))
	assert.Equal(t, " ", decodeString(`\040`))
	assert.Equal(t, "(x)", decodeString(`\(x\)`))
	assert.Equal(t, "A", decodeString(`\101`))
	assert.Equal(t, "trailing", decodeString(`trailing\`))
}

func TestIsBinaryGarbage(t *testing.T) {
	long := strings.Repeat("legitimate proposal text ", 10)

	assert.False(t, IsBinaryGarbage(""))
	assert.False(t, IsBinaryGarbage("%PDF-1.4 short"))
	assert.False(t, IsBinaryGarbage(long))

	assert.True(t, IsBinaryGarbage(long+"%PDF-1.4"))
	assert.True(t, IsBinaryGarbage(long+"/FlateDecode"))
	assert.True(t, IsBinaryGarbage(long+"/DCTDecode"))
	assert.True(t, IsBinaryGarbage(long+"stream\n"))
	assert.True(t, IsBinaryGarbage("ab\x01cd"+long))
}

func TestIsBinaryGarbage_ControlCharsOnlyCheckedInHead(t *testing.T) {
	text := strings.Repeat("a", 600) + "\x01"
	assert.False(t, IsBinaryGarbage(text))

	text = "\x01" + strings.Repeat("a", 600)
	assert.True(t, IsBinaryGarbage(text))
}
