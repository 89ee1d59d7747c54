package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/eddy5885/learning-SheetJS/internal/logger"
	"github.com/eddy5885/learning-SheetJS/internal/service"
	"github.com/eddy5885/learning-SheetJS/internal/service/serviceutils"
	"github.com/eddy5885/learning-SheetJS/pkg/simpleexcel"
	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type WorkbookHandler struct {
	svc service.WorkbookService
}

func NewWorkbookHandler(svc service.WorkbookService) *WorkbookHandler {
	return &WorkbookHandler{svc: svc}
}

// ReadHandler handles GET /api/xlsx?file=
func (h *WorkbookHandler) ReadHandler(c echo.Context) error {
	ctx := c.Request().Context()
	fileName := fileParam(c)

	wb, err := h.svc.ReadWorkbook(ctx, fileName)
	if err != nil {
		return readError(c, fileName, err)
	}

	sheets := make([]SheetData, len(wb.Sheets))
	for i, s := range wb.Sheets {
		rows := s.Rows
		if rows == nil {
			rows = [][]interface{}{}
		}
		sheets[i] = SheetData{SheetName: s.Name, Data: rows}
	}

	return c.JSON(http.StatusOK, ReadResponse{
		Success:    true,
		FileName:   fileName,
		SheetCount: len(wb.Sheets),
		Sheets:     sheets,
	})
}

// ReadCSVHandler handles GET /api/xlsxv2?file=
func (h *WorkbookHandler) ReadCSVHandler(c echo.Context) error {
	ctx := c.Request().Context()
	fileName := fileParam(c)

	text, err := h.svc.ReadFirstSheetCSV(ctx, fileName)
	if err != nil {
		return readError(c, fileName, err)
	}

	return c.JSON(http.StatusOK, ReadCSVResponse{
		Success:  true,
		FileName: fileName,
		Sheets:   text,
	})
}

// ExportHandler handles POST /api/export
func (h *WorkbookHandler) ExportHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var req ExportRequest
	body, err := readJSONBody(c)
	if err == nil && body != nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		logger.WarnLog(ctx, "invalid export request: %v", err)
		return serviceutils.ResponseError(c, http.StatusBadRequest, "请求体解析失败: ", err)
	}

	in := service.ExportInput{
		FileName:  req.FileName,
		SheetName: req.SheetName,
	}
	if req.Data != nil {
		in.Records = *req.Data
		if in.Records == nil {
			in.Records = []simpleexcel.Record{}
		}
	}

	res, err := h.svc.Export(ctx, in)
	if err != nil {
		logger.ErrorLog(ctx, "export failed: %v", err)
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "导出失败: ", err)
	}

	header := c.Response().Header()
	header.Set(echo.HeaderContentType, xlsxContentType)
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, encodeURIComponent(res.BaseName)))
	header.Set(echo.HeaderContentLength, strconv.Itoa(len(res.Content)))
	return c.Blob(http.StatusOK, xlsxContentType, res.Content)
}

func fileParam(c echo.Context) string {
	if name := c.QueryParam("file"); name != "" {
		return name
	}
	return service.DefaultFileName
}

func readError(c echo.Context, fileName string, err error) error {
	ctx := c.Request().Context()
	if errors.Is(err, service.ErrFileNotFound) {
		logger.InfoLog(ctx, "workbook %q not found", fileName)
		return serviceutils.ResponseError(c, http.StatusNotFound, fmt.Sprintf("文件不存在: %s", fileName), nil)
	}
	logger.ErrorLog(ctx, "read workbook %q: %v", fileName, err)
	return serviceutils.ResponseError(c, http.StatusInternalServerError, "读取文件失败: ", err)
}

// encodeURIComponent escapes s the way browsers' encodeURIComponent does,
// leaving A-Z a-z 0-9 - _ . ! ~ * ' ( ) untouched.
func encodeURIComponent(s string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(s))
}

var uriComponentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
