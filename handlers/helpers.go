package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// validationError is the shared envelope for per-field localized messages.
func validationError(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error":  "VALIDATION_ERROR",
		"fields": fields,
	})
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
