package parser

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Sheet is one worksheet rendered as CSV text.
type Sheet struct {
	Name string
	CSV  string
}

// ReadSheets parses a workbook from memory and renders every sheet as CSV.
func ReadSheets(data []byte) ([]Sheet, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "parser: open workbook")
	}

	sheets := make([]Sheet, 0, len(f.Sheets))
	for _, sheet := range f.Sheets {
		var b strings.Builder
		for _, row := range sheet.Rows {
			cells := make([]string, len(row.Cells))
			for j, cell := range row.Cells {
				cells[j] = quoteCell(cell.String())
			}
			b.WriteString(strings.Join(cells, ","))
			b.WriteByte('\n')
		}
		sheets = append(sheets, Sheet{Name: sheet.Name, CSV: b.String()})
	}

	return sheets, nil
}

// SheetsText concatenates the CSV text of every sheet in a workbook.
func SheetsText(data []byte) (string, error) {
	sheets, err := ReadSheets(data)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, s := range sheets {
		b.WriteString(s.CSV)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func quoteCell(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
