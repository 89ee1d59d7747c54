package service

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/eddy5885/learning-SheetJS/pkg/simpleexcel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestService(t *testing.T) (WorkbookService, string) {
	t.Helper()
	dir := t.TempDir()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "a"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", 1))
	_, err := f.NewSheet("Second")
	require.NoError(t, err)
	require.NoError(t, f.SaveAs(filepath.Join(dir, "1.xlsx")))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.xlsx"), []byte("not a zip"), 0o644))

	tmpl, err := simpleexcel.DefaultExportTemplate()
	require.NoError(t, err)
	return NewWorkbookService(NewFileResolver(dir), tmpl), dir
}

func TestWorkbookService_Read(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	wb, err := svc.ReadWorkbook(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "Second"}, wb.SheetNames())
	assert.Equal(t, [][]interface{}{{"a", 1.0}}, wb.Sheets[0].Rows)

	out, err := svc.ReadFirstSheetCSV(ctx, "1.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "a,1", out)

	_, err = svc.ReadWorkbook(ctx, "missing.xlsx")
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = svc.ReadFirstSheetCSV(ctx, "broken.xlsx")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrFileNotFound)
}

func TestWorkbookService_ReadCanceled(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ReadWorkbook(ctx, "1.xlsx")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkbookService_ExportDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Export(context.Background(), ExportInput{})
	require.NoError(t, err)
	assert.Equal(t, "导出文件", res.BaseName)

	wb, err := simpleexcel.OpenWorkbookReader(bytes.NewReader(res.Content))
	require.NoError(t, err)
	require.Equal(t, []string{"Sheet1"}, wb.SheetNames())

	rows := wb.Sheets[0].Rows
	require.Len(t, rows, 6)
	assert.Equal(t, []interface{}{"123", "年龄", "城市", "职业", "薪资"}, rows[0])
	assert.Equal(t, []interface{}{"张三", 28.0, "北京", "工程师", 15000.0}, rows[1])
	assert.Equal(t, []interface{}{"钱七", 27.0, "杭州", "运营", 10000.0}, rows[5])
}

func TestWorkbookService_ExportCallerData(t *testing.T) {
	svc, _ := newTestService(t)

	var recs []simpleexcel.Record
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"name":"x"},{"id":2,"name":"y"}]`), &recs))

	res, err := svc.Export(context.Background(), ExportInput{
		Records:   recs,
		FileName:  "report.XLSX",
		SheetName: "数据",
	})
	require.NoError(t, err)
	assert.Equal(t, "report", res.BaseName)

	wb, err := simpleexcel.OpenWorkbookReader(bytes.NewReader(res.Content))
	require.NoError(t, err)
	assert.Equal(t, []string{"数据"}, wb.SheetNames())
	assert.Equal(t, [][]interface{}{
		{"123", "name"},
		{1.0, "x"},
		{2.0, "y"},
	}, wb.Sheets[0].Rows)
}

func TestWorkbookService_ExportEmptyRecords(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Export(context.Background(), ExportInput{Records: []simpleexcel.Record{}})
	require.NoError(t, err)

	wb, err := simpleexcel.OpenWorkbookReader(bytes.NewReader(res.Content))
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{{"123"}}, wb.Sheets[0].Rows)
}

func TestWorkbookService_ExportInvalidSheetName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Export(context.Background(), ExportInput{SheetName: "a[b]"})
	assert.Error(t, err)
}
