package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/pkg/i18n"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

// Códigos de error (texto de control, estable para los clientes).
const (
	CodeInvalidBody       = "INVALID_BODY"
	CodeValidation        = "VALIDATION"
	CodeUnknownAction     = "UNKNOWN_ACTION"
	CodeMissingToken      = "MISSING_TOKEN"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeMissingRole       = "MISSING_ROLE"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeHasRequests       = "HAS_REQUESTS"
	CodeHasDependents     = "HAS_DEPENDENTS"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeFlowNotFound      = "FLOW_NOT_FOUND"
	CodeIllegalTransition = "ILLEGAL_TRANSITION"
	CodeRequestInFlight   = "REQUEST_IN_FLIGHT"
	CodeFlowFinished      = "FLOW_FINISHED"
	CodeUnknownRole       = "UNKNOWN_ROLE"
	CodeStepFailed        = "STEP_FAILED"
	CodeTooManyRequests   = "TOO_MANY_REQUESTS"
	CodeInternal          = "INTERNAL"
)

// lang idioma de la respuesta según Accept-Language.
func lang(c *fiber.Ctx) language.Tag {
	return i18n.Match(c.Get(fiber.HeaderAcceptLanguage))
}

// fail responde {success:false, code, error} con el mensaje traducido.
func fail(c *fiber.Ctx, status int, code string, key i18n.Key, args ...interface{}) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:  code,
		Error: i18n.T(lang(c), key, args...),
	})
}

// ok responde {success:true, data, message?}.
func ok(c *fiber.Ctx, data interface{}, key i18n.Key) error {
	resp := dto.Response{Success: true, Data: data}
	if key != "" {
		resp.Message = i18n.T(lang(c), key)
	}
	return c.JSON(resp)
}

// internal registra el error real y responde 500 con un mensaje genérico del paso.
func internal(c *fiber.Ctx, log *logger.Logger, err error, key i18n.Key) error {
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	if key == "" {
		key = i18n.KeyInternal
	}
	return fail(c, fiber.StatusInternalServerError, CodeInternal, key)
}

// useCaseError traduce los errores de dominio de los casos de uso del panel.
// failKey es el mensaje genérico de la operación y notFoundKey el del recurso.
func useCaseError(c *fiber.Ctx, log *logger.Logger, err error, failKey, notFoundKey i18n.Key) error {
	var fieldErr *domain.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return fail(c, fiber.StatusBadRequest, CodeValidation, i18n.KeyProfileInvalidField, fieldErr.Field)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, CodeValidation, failKey)
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, CodeNotFound, i18n.KeyUserNotFound)
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, CodeNotFound, notFoundKey)
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, CodeEmailExists, i18n.KeyUserEmailExists)
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, CodeConflict, failKey)
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, CodeForbidden, i18n.KeyForbidden)
	}
	return internal(c, log, err, failKey)
}
