package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/deppfellow/seedance-go/internal/errs"
	"github.com/deppfellow/seedance-go/validation"
)

// bindAndValidate binds request data into payload and validates it.
//
// Bind failures (malformed JSON, wrong content type) are a plain 400.
// Validation failures are a 400 carrying one entry per violation.
func bindAndValidate(c echo.Context, payload validation.Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Invalid request body"

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if msg, ok := echoErr.Message.(string); ok {
				message = msg
			}
		}
		return errs.NewBadRequestError(message, false, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		if vs, ok := validation.From(err); ok {
			return errs.ValidationError(vs)
		}
		return err
	}

	return nil
}
