package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/eddy5885/learning-SheetJS/internal/logger"
	"github.com/eddy5885/learning-SheetJS/internal/service/serviceutils"
	"github.com/labstack/echo/v4"
)

const (
	helloMessage = "Hello from Echo!"
	// ISO-8601 in UTC with millisecond precision.
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type SystemHandler struct {
	startedAt time.Time
	now       func() time.Time
}

func NewSystemHandler(startedAt time.Time) *SystemHandler {
	return &SystemHandler{startedAt: startedAt, now: time.Now}
}

// HelloHandler handles GET /api/hello
func (h *SystemHandler) HelloHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, HelloResponse{
		Success:   true,
		Message:   helloMessage,
		Timestamp: h.now().UTC().Format(timestampLayout),
	})
}

// HealthHandler handles GET /api/health
func (h *SystemHandler) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: h.now().Sub(h.startedAt).Seconds(),
	})
}

// EchoDataHandler handles POST /api/data
func (h *SystemHandler) EchoDataHandler(c echo.Context) error {
	body, err := readJSONBody(c)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		logger.WarnLog(c.Request().Context(), "invalid request body: %v", err)
		return serviceutils.ResponseError(c, http.StatusBadRequest, "请求体解析失败: ", err)
	}
	if body == nil {
		body = json.RawMessage("{}")
	}
	return c.JSON(http.StatusOK, EchoResponse{
		Success:  true,
		Received: body,
	})
}

var errInvalidJSON = errors.New("invalid JSON")

// readJSONBody returns the request body, or nil when it is empty.
func readJSONBody(c echo.Context) (json.RawMessage, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, errInvalidJSON
	}
	return json.RawMessage(body), nil
}
