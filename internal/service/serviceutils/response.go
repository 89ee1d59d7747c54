package serviceutils

import (
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the envelope of every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorJSON builds the envelope; err's text is appended to msg when set.
func ErrorJSON(msg string, err error) ErrorResponse {
	if err != nil {
		msg += err.Error()
	}
	return ErrorResponse{
		Success: false,
		Message: msg,
	}
}

func ResponseError(c echo.Context, code int, msg string, err error) error {
	return c.JSON(code, ErrorJSON(msg, err))
}
