package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// uploads opens every file posted under field. The returned closer must be
// called once the service is done reading.
func uploads(c echo.Context, field string) ([]ports.Upload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	var (
		files []ports.Upload
		open  []io.Closer
	)
	closeAll := func() {
		for _, f := range open {
			_ = f.Close()
		}
	}
	for _, fh := range form.File[field] {
		if fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		open = append(open, f)
		files = append(files, ports.Upload{Filename: fh.Filename, Content: f})
	}
	return files, closeAll, nil
}

// upload returns the single file posted under field, or nil when absent.
func upload(c echo.Context, field string) (*ports.Upload, func(), error) {
	files, closeAll, err := uploads(c, field)
	if err != nil || len(files) == 0 {
		return nil, closeAll, err
	}
	return &files[0], closeAll, nil
}

// formFloat parses an optional numeric field; empty means zero.
func formFloat(c echo.Context, field string) (float64, error) {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.Invalid(field + " must be a number")
	}
	return v, nil
}

func formInt(c echo.Context, field string) (int, error) {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Invalid(field + " must be an integer")
	}
	return v, nil
}

// formJSON decodes a JSON-encoded form field into dst. Empty leaves dst untouched.
func formJSON(c echo.Context, field string, dst any) error {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return domain.Invalid(field + " must be valid JSON")
	}
	return nil
}
