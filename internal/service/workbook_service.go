package service

import (
	"context"
	"strings"

	"github.com/eddy5885/learning-SheetJS/internal/logger"
	"github.com/eddy5885/learning-SheetJS/pkg/simpleexcel"
)

// WorkbookService reads spreadsheets from disk and builds export downloads.
type WorkbookService interface {
	ReadWorkbook(ctx context.Context, fileName string) (*simpleexcel.Workbook, error)
	ReadFirstSheetCSV(ctx context.Context, fileName string) (string, error)
	Export(ctx context.Context, in ExportInput) (*ExportResult, error)
}

// ExportInput describes one export. Empty fields fall back to the template:
// a nil Records selects the sample records, while an empty non-nil slice
// exports a sheet without data rows.
type ExportInput struct {
	Records   []simpleexcel.Record
	FileName  string
	SheetName string
}

// ExportResult is a finished xlsx download.
type ExportResult struct {
	// BaseName is the download name without the .xlsx extension.
	BaseName string
	Content  []byte
}

type workbookService struct {
	resolver *FileResolver
	template *simpleexcel.ExportTemplate
}

func NewWorkbookService(resolver *FileResolver, tmpl *simpleexcel.ExportTemplate) WorkbookService {
	return &workbookService{resolver: resolver, template: tmpl}
}

func (s *workbookService) ReadWorkbook(ctx context.Context, fileName string) (*simpleexcel.Workbook, error) {
	path, err := s.resolver.Resolve(fileName)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.DebugLog(ctx, "reading workbook %s", path)
	return simpleexcel.OpenWorkbook(path)
}

func (s *workbookService) ReadFirstSheetCSV(ctx context.Context, fileName string) (string, error) {
	wb, err := s.ReadWorkbook(ctx, fileName)
	if err != nil {
		return "", err
	}
	if len(wb.Sheets) == 0 {
		return "", nil
	}
	return simpleexcel.SheetToCSV(wb.Sheets[0])
}

func (s *workbookService) Export(ctx context.Context, in ExportInput) (*ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := in.Records
	if records == nil {
		records = s.template.Records()
	}
	sheetName := in.SheetName
	if sheetName == "" {
		sheetName = s.template.SheetName
	}

	content, err := simpleexcel.GridToBytes(simpleexcel.RecordsToGrid(records), s.template.SheetOptions(sheetName))
	if err != nil {
		return nil, err
	}
	logger.DebugLog(ctx, "exported %d records to sheet %q (%d bytes)", len(records), sheetName, len(content))

	return &ExportResult{
		BaseName: s.downloadBaseName(in.FileName),
		Content:  content,
	}, nil
}

func (s *workbookService) downloadBaseName(name string) string {
	if name == "" {
		name = s.template.FileName
	}
	if strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		name = name[:len(name)-len(".xlsx")]
	}
	return name
}
