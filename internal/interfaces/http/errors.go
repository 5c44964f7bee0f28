package http

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationErrorResponse error 400 con el detalle por campo (campo → regla incumplida).
type ValidationErrorResponse struct {
	dto.ErrorResponse
	Fields map[string]string `json:"fields,omitempty"`
}

// parseBody decodifica el JSON en dst y lo valida. Si falla, ya escribió la respuesta 400 y devuelve false.
func parseBody(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
			ErrorResponse: dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"},
			Fields:        fields,
		})
	}
	return true, nil
}

// respondError traduce errores de dominio a la respuesta HTTP. Es el único lugar donde se hace este mapeo.
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, validationCode(err)
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code = fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicateIdentifier):
		status, code = fiber.StatusConflict, "DUPLICATE_IDENTIFIER"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrIdentifierExhausted):
		c.Set(fiber.HeaderRetryAfter, "1")
		status, code = fiber.StatusServiceUnavailable, "IDENTIFIER_EXHAUSTED"
	case errors.Is(err, context.DeadlineExceeded):
		status, code = fiber.StatusGatewayTimeout, "TIMEOUT"
	}

	if status == fiber.StatusInternalServerError {
		ev := log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path())
		var txErr *domain.TxError
		if errors.As(err, &txErr) {
			ev = ev.Str("stage", txErr.Stage)
		}
		ev.Msg("error interno")
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "error interno del servidor"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func validationCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		return "EMPTY_ORDER"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrInvalidPrice):
		return "INVALID_PRICE"
	case errors.Is(err, domain.ErrInvalidType):
		return "INVALID_TYPE"
	case errors.Is(err, domain.ErrDuplicateOrderItem):
		return "DUPLICATE_ORDER_ITEM"
	default:
		return "VALIDATION"
	}
}

// pagination lee limit/offset de la query con los valores por defecto de dto.PageRequest.
func pagination(c *fiber.Ctx) (limit, offset int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p.Limit, p.Offset
}
