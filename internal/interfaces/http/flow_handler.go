package http

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-beneficiarios/internal/application/authevents"
	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/application/login"
	domainlogin "github.com/jhoicas/portal-beneficiarios/internal/domain/login"
	"github.com/jhoicas/portal-beneficiarios/pkg/i18n"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

const defaultHeartbeat = 30 * time.Second

// FlowHandler expone el asistente de inicio de sesión bajo /api/auth/flows.
type FlowHandler struct {
	svc       *login.FlowService
	log       *logger.Logger
	heartbeat time.Duration
}

// NewFlowHandler construye el handler. heartbeat <= 0 usa 30s.
func NewFlowHandler(svc *login.FlowService, log *logger.Logger, heartbeat time.Duration) *FlowHandler {
	if log == nil {
		log = logger.Nop()
	}
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &FlowHandler{svc: svc, log: log.Component("auth_flow"), heartbeat: heartbeat}
}

// Start abre un flujo en selection.
// @Summary  Iniciar flujo de login
// @Tags     auth
// @Produce  json
// @Success  201 {object} dto.Response
// @Router   /auth/flows [post]
func (h *FlowHandler) Start(c *fiber.Ctx) error {
	c.Status(fiber.StatusCreated)
	return h.respond(c, h.svc.Start(), nil)
}

// Get devuelve el estado del flujo.
// @Summary  Estado del flujo
// @Tags     auth
// @Param    id path string true "flowId"
// @Success  200 {object} dto.Response
// @Failure  404 {object} dto.ErrorResponse
// @Router   /auth/flows/{id} [get]
func (h *FlowHandler) Get(c *fiber.Ctx) error {
	resp, err := h.svc.Get(c.Params("id"))
	return h.respond(c, resp, err)
}

// Select elige el tipo de acceso: beneficiary, employee, admin o new_beneficiary.
// @Summary  Elegir tipo de acceso
// @Tags     auth
// @Accept   json
// @Param    id   path string                true "flowId"
// @Param    body body dto.SelectRoleRequest true "rol"
// @Success  200 {object} dto.Response
// @Failure  409 {object} dto.ErrorResponse
// @Router   /auth/flows/{id}/select [post]
func (h *FlowHandler) Select(c *fiber.Ctx) error {
	var in dto.SelectRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeInvalidBody, i18n.KeyInvalidBody)
	}
	resp, err := h.svc.SelectRole(c.Params("id"), in.Role)
	return h.respond(c, resp, err)
}

// NationalID busca la identidad y envía el código OTP.
// @Summary  Enviar identidad nacional
// @Tags     auth
// @Accept   json
// @Param    id   path string                true "flowId"
// @Param    body body dto.NationalIDRequest true "identidad"
// @Success  200 {object} dto.Response
// @Router   /auth/flows/{id}/national-id [post]
func (h *FlowHandler) NationalID(c *fiber.Ctx) error {
	var in dto.NationalIDRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeInvalidBody, i18n.KeyInvalidBody)
	}
	resp, err := h.svc.SubmitNationalID(c.UserContext(), c.Params("id"), in.NationalID)
	return h.respond(c, resp, err)
}

// OTP verifica el código; si es correcto la respuesta trae la sesión.
// @Summary  Verificar código OTP
// @Tags     auth
// @Accept   json
// @Param    id   path string         true "flowId"
// @Param    body body dto.OTPRequest true "código"
// @Success  200 {object} dto.Response
// @Router   /auth/flows/{id}/otp [post]
func (h *FlowHandler) OTP(c *fiber.Ctx) error {
	var in dto.OTPRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeInvalidBody, i18n.KeyInvalidBody)
	}
	resp, err := h.svc.SubmitOTP(c.UserContext(), c.Params("id"), in.OTP)
	return h.respond(c, resp, err)
}

// AdminLogin acceso del administrador con correo y contraseña.
// @Summary  Acceso de administración
// @Tags     auth
// @Accept   json
// @Param    id   path string                true "flowId"
// @Param    body body dto.AdminLoginRequest true "credenciales"
// @Success  200 {object} dto.Response
// @Router   /auth/flows/{id}/admin-login [post]
func (h *FlowHandler) AdminLogin(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeInvalidBody, i18n.KeyInvalidBody)
	}
	resp, err := h.svc.AdminLogin(c.UserContext(), c.Params("id"), in.Email, in.Password)
	return h.respond(c, resp, err)
}

// Registration alta de un nuevo beneficiario; el flujo pasa a success.
// @Summary  Registro de beneficiario
// @Tags     auth
// @Accept   json
// @Param    id   path string                  true "flowId"
// @Param    body body dto.RegistrationRequest true "datos"
// @Success  200 {object} dto.Response
// @Router   /auth/flows/{id}/registration [post]
func (h *FlowHandler) Registration(c *fiber.Ctx) error {
	var in dto.RegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeInvalidBody, i18n.KeyInvalidBody)
	}
	resp, err := h.svc.Register(c.UserContext(), c.Params("id"), in)
	return h.respond(c, resp, err)
}

// Complete confirma la pantalla de éxito y establece la sesión.
// @Summary  Completar registro
// @Tags     auth
// @Param    id path string true "flowId"
// @Success  200 {object} dto.Response
// @Router   /auth/flows/{id}/complete [post]
func (h *FlowHandler) Complete(c *fiber.Ctx) error {
	resp, err := h.svc.Complete(c.Params("id"))
	return h.respond(c, resp, err)
}

// Back vuelve al paso anterior.
// @Summary  Paso anterior
// @Tags     auth
// @Param    id path string true "flowId"
// @Success  200 {object} dto.Response
// @Router   /auth/flows/{id}/back [post]
func (h *FlowHandler) Back(c *fiber.Ctx) error {
	resp, err := h.svc.Back(c.Params("id"))
	return h.respond(c, resp, err)
}

// Events stream SSE del flujo: session_established al terminar, flow_expired si vence.
// Sobre un flujo ya terminado envía flow_finished y cierra.
// @Summary  Eventos del flujo (SSE)
// @Tags     auth
// @Produce  text/event-stream
// @Param    id path string true "flowId"
// @Router   /auth/flows/{id}/events [get]
func (h *FlowHandler) Events(c *fiber.Ctx) error {
	flowID := c.Params("id")
	sub, err := h.svc.Subscribe(flowID)
	finished := errors.Is(err, domainlogin.ErrFlowFinished)
	if err != nil && !finished {
		return h.flowError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	heartbeat := h.heartbeat
	log := h.log
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		fmt.Fprintf(w, "event: connected\ndata: {\"flowId\":%q}\n\n", flowID)
		if finished {
			_ = writeFlowEvent(w, authevents.Event{Type: authevents.EventFlowFinished, FlowID: flowID})
			return
		}
		defer sub.Cancel()
		if err := w.Flush(); err != nil {
			return
		}

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		for {
			select {
			case ev, open := <-sub.C:
				if !open {
					return
				}
				if err := writeFlowEvent(w, ev); err != nil {
					log.Debug().Err(err).Str("flow_id", flowID).Msg("cliente SSE desconectado")
					return
				}
				// Tras el evento terminal no llega nada más.
				return
			case <-ticker.C:
				fmt.Fprint(w, ": heartbeat\n\n")
				if err := w.Flush(); err != nil {
					log.Debug().Str("flow_id", flowID).Msg("cliente SSE desconectado")
					return
				}
			}
		}
	})
	return nil
}

func writeFlowEvent(w *bufio.Writer, ev authevents.Event) error {
	var payload interface{} = fiber.Map{"flowId": ev.FlowID}
	if ev.Session != nil {
		payload = dto.SessionEvent{FlowID: ev.FlowID, Session: *ev.Session}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
	return w.Flush()
}

// respond envuelve la respuesta del flujo. Un paso rechazado (state.error) se responde
// 200 con success:false y el mensaje traducido; el flujo sigue en el mismo paso.
func (h *FlowHandler) respond(c *fiber.Ctx, resp *dto.FlowResponse, err error) error {
	if err != nil {
		return h.flowError(c, err)
	}
	if resp.State.Error != nil {
		msg := i18n.T(lang(c), i18n.Key(*resp.State.Error))
		resp.State.ErrorMessage = msg
		return c.JSON(dto.Response{Success: false, Code: CodeStepFailed, Data: resp, Error: msg})
	}
	var key i18n.Key
	if resp.Session != nil {
		key = i18n.KeySessionEstablished
	}
	return ok(c, resp, key)
}

func (h *FlowHandler) flowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, login.ErrFlowNotFound):
		return fail(c, fiber.StatusNotFound, CodeFlowNotFound, i18n.KeyFlowNotFound)
	case errors.Is(err, domainlogin.ErrRequestInFlight):
		return fail(c, fiber.StatusConflict, CodeRequestInFlight, i18n.KeyFlowInFlight)
	case errors.Is(err, domainlogin.ErrFlowFinished):
		return fail(c, fiber.StatusConflict, CodeFlowFinished, i18n.KeyFlowFinished)
	case errors.Is(err, domainlogin.ErrIllegalTransition):
		return fail(c, fiber.StatusConflict, CodeIllegalTransition, i18n.KeyFlowIllegal)
	case errors.Is(err, domainlogin.ErrUnknownRole):
		return fail(c, fiber.StatusBadRequest, CodeUnknownRole, i18n.KeyFlowIllegal)
	}
	return internal(c, h.log, err, i18n.KeyInternal)
}
