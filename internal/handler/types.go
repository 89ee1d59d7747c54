package handler

import (
	"encoding/json"

	"github.com/eddy5885/learning-SheetJS/pkg/simpleexcel"
)

// HelloResponse is returned by GET /api/hello.
type HelloResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HealthResponse is returned by GET /api/health. Uptime is in seconds.
type HealthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}

// EchoResponse wraps the body received by POST /api/data.
type EchoResponse struct {
	Success  bool            `json:"success"`
	Received json.RawMessage `json:"received"`
}

// SheetData is one sheet of a ReadResponse.
type SheetData struct {
	SheetName string          `json:"sheetName"`
	Data      [][]interface{} `json:"data"`
}

// ReadResponse is returned by GET /api/xlsx.
type ReadResponse struct {
	Success    bool        `json:"success"`
	FileName   string      `json:"fileName"`
	SheetCount int         `json:"sheetCount"`
	Sheets     []SheetData `json:"sheets"`
}

// ReadCSVResponse is returned by GET /api/xlsxv2. Sheets holds the first
// sheet as CSV text.
type ReadCSVResponse struct {
	Success  bool   `json:"success"`
	FileName string `json:"fileName"`
	Sheets   string `json:"sheets"`
}

// ExportRequest is the body of POST /api/export. Every field is optional:
// Data defaults to the sample records, FileName to "导出文件" and SheetName
// to "Sheet1". An explicit empty Data array exports no rows.
type ExportRequest struct {
	Data      *[]simpleexcel.Record `json:"data"`
	FileName  string                `json:"fileName"`
	SheetName string                `json:"sheetName"`
}
