package simpleexcel

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

// WriteGrid writes grid as the only sheet of a new workbook to w.
// Column widths and cell overrides from opts are applied on the way.
func WriteGrid(w io.Writer, grid [][]interface{}, opts SheetOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	name := opts.SheetName
	if name == "" {
		name = defaultSheetName
	}
	if name != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, name); err != nil {
			return err
		}
	}

	overrides, err := resolveOverrides(f, opts.Overrides)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return err
	}

	// Stream writers only accept column widths before the first row.
	for _, col := range opts.Columns {
		idx, err := excelize.ColumnNameToNumber(col.Column)
		if err != nil {
			return err
		}
		if err := sw.SetColWidth(idx, idx, col.Width); err != nil {
			return err
		}
	}

	rowCount := len(grid)
	for coords := range overrides {
		if coords.row > rowCount {
			rowCount = coords.row
		}
	}

	for r := 1; r <= rowCount; r++ {
		var values []interface{}
		if r <= len(grid) {
			values = grid[r-1]
		}
		row := applyOverrides(values, r, overrides)
		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

// GridToBytes is WriteGrid into memory.
func GridToBytes(grid [][]interface{}, opts SheetOptions) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := WriteGrid(buf, grid, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type cellCoords struct {
	col, row int
}

func resolveOverrides(f *excelize.File, overrides []CellOverride) (map[cellCoords]excelize.Cell, error) {
	out := make(map[cellCoords]excelize.Cell, len(overrides))
	for _, o := range overrides {
		col, row, err := excelize.CellNameToCoordinates(o.Cell)
		if err != nil {
			return nil, fmt.Errorf("override %s: %w", o.Cell, err)
		}
		cell := excelize.Cell{Value: o.Value}
		if o.FontColor != "" {
			styleID, err := f.NewStyle(&excelize.Style{
				Font: &excelize.Font{Color: o.FontColor},
			})
			if err != nil {
				return nil, err
			}
			cell.StyleID = styleID
		}
		out[cellCoords{col: col, row: row}] = cell
	}
	return out, nil
}

func applyOverrides(values []interface{}, row int, overrides map[cellCoords]excelize.Cell) []interface{} {
	width := len(values)
	for coords := range overrides {
		if coords.row == row && coords.col > width {
			width = coords.col
		}
	}
	out := make([]interface{}, width)
	copy(out, values)
	for coords, cell := range overrides {
		if coords.row == row {
			out[coords.col-1] = cell
		}
	}
	return out
}
