package presenter

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func BadRequest(c echo.Context, err error) error {
	return BadRequestMessage(c, err.Error())
}

func BadRequestMessage(c echo.Context, msg string) error {
	zap.L().Debug("bad request", zap.String("path", c.Path()), zap.String("error", msg))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg, Code: domain.CodeInvalidRequest})
}

// ValidationFailed reports field keyed messages with 400.
func ValidationFailed(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{
		Error:  "validation failed",
		Code:   domain.CodeValidationFailed,
		Fields: fields,
	})
}

func Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{
		Error: domain.ErrUnauthenticated.Error(),
		Code:  domain.CodeUnauthorized,
	})
}

// FeatureDisabled answers 404 for routes switched off in the site config.
func FeatureDisabled(c echo.Context, feature string) error {
	return c.JSON(http.StatusNotFound, errorResponse{
		Error: feature + " is disabled",
		Code:  domain.CodeFeatureDisabled,
	})
}

func InternalError(c echo.Context, err error) error {
	span := trace.SpanFromContext(c.Request().Context())
	span.RecordError(err)
	span.SetStatus(codes.Error, "internal error")

	zap.L().Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse{
		Error: "internal server error",
		Code:  domain.CodeInternal,
	})
}

// Error maps domain errors to a status code and machine code. Anything it
// does not recognize is logged and reported as 500.
func Error(c echo.Context, err error) error {
	var (
		validation domain.ValidationError
		notFound   domain.NotFoundError
		forbidden  domain.ForbiddenError
		conflict   domain.ConflictError
	)

	switch {
	case errors.As(err, &validation):
		return ValidationFailed(c, validation.Fields)
	case errors.Is(err, domain.ErrUnauthenticated):
		return Unauthorized(c)
	case errors.As(err, &forbidden):
		return c.JSON(http.StatusForbidden, errorResponse{
			Error: forbidden.Error(),
			Code:  domain.CodeInsufficientPermissions,
		})
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, errorResponse{
			Error: notFound.Error(),
			Code:  notFound.Code(),
		})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, errorResponse{
			Error: conflict.Error(),
			Code:  conflict.Code,
		})
	default:
		return InternalError(c, err)
	}
}
