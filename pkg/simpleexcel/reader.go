package simpleexcel

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is an ordered list of sheets read from a spreadsheet file.
type Workbook struct {
	Sheets []Sheet
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet is a named grid of cell values. Every row has the same width and
// empty cells are nil. Values are string, float64 or bool.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// OpenWorkbook reads every sheet of the spreadsheet at path.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWorkbook(f)
}

// OpenWorkbookReader reads every sheet of the spreadsheet in r.
func OpenWorkbookReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWorkbook(f)
}

// ReadWorkbook converts an open excelize file into a Workbook.
func ReadWorkbook(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := readSheetRows(f, name)
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}
	return wb, nil
}

func readSheetRows(f *excelize.File, sheet string) ([][]interface{}, error) {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	// Rows and columns start at the top-left of the used range.
	col0, row0 := usedRangeOrigin(f, sheet)
	if row0 > len(raw) {
		row0 = len(raw)
	}
	raw = raw[row0:]

	width := 0
	for _, r := range raw {
		if len(r)-col0 > width {
			width = len(r) - col0
		}
	}

	rows := make([][]interface{}, len(raw))
	for i, r := range raw {
		row := make([]interface{}, width)
		for j := col0; j < len(r); j++ {
			v := r[j]
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, row0+i+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, err
			}
			row[j-col0] = typedValue(typ, v)
		}
		rows[i] = row
	}
	return rows, nil
}

// usedRangeOrigin returns the zero-based column and row of the first cell of
// the sheet's dimension, or 0, 0 when the dimension is missing or malformed.
func usedRangeOrigin(f *excelize.File, sheet string) (int, int) {
	ref, err := f.GetSheetDimension(sheet)
	if err != nil || ref == "" {
		return 0, 0
	}
	first, _, _ := strings.Cut(ref, ":")
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(first, "$", ""))
	if err != nil {
		return 0, 0
	}
	return col - 1, row - 1
}

// typedValue maps a raw cell value onto the JSON-friendly type of its cell.
// Cells without an explicit type attribute are numeric in OOXML.
func typedValue(typ excelize.CellType, v string) interface{} {
	switch typ {
	case excelize.CellTypeBool:
		return v == "1" || strings.EqualFold(v, "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return v
}
