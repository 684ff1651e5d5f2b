package v1

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/BananaRealm/internal/apperrors"
	"github.com/thesrcielos/BananaRealm/internal/logger"
)

const INVALID_REQUEST = "invalid request"

type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}
	return c.Validate(req)
}

// ErrorHandler renders AppErrors with their own status and message and
// leaves everything else to echo.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}
		if c.Response().Committed {
			return
		}
		status := apperrors.StatusCode(appErr)
		if status >= http.StatusInternalServerError {
			logger.Error("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}
		if err := c.JSON(status, echo.Map{"message": appErr.Message}); err != nil {
			logger.Error("Error writing error response: %v", err)
		}
	}
}
