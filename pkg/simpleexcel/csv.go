package simpleexcel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// SheetToCSV renders a sheet as comma separated text. Rows are separated by
// "\n" with no trailing newline; fields are quoted only when needed.
func SheetToCSV(s Sheet) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for _, row := range s.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatCSVValue(v)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func formatCSVValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(val)
	}
}
