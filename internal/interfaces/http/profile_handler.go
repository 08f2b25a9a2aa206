package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/application/usecase"
	"github.com/jhoicas/portal-beneficiarios/pkg/i18n"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

// ProfileHandler perfil del beneficiario autenticado.
type ProfileHandler struct {
	uc  *usecase.ProfileUseCase
	log *logger.Logger
}

// NewProfileHandler construye el handler.
func NewProfileHandler(uc *usecase.ProfileUseCase, log *logger.Logger) *ProfileHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ProfileHandler{uc: uc, log: log.Component("profile")}
}

// Get devuelve el expediente con edad y fechas formateadas.
// @Summary  Perfil del beneficiario
// @Tags     beneficiary
// @Produce  json
// @Success  200 {object} dto.Response
// @Failure  404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router   /beneficiary/profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.UserContext(), GetUserID(c), lang(c))
	if err != nil {
		return useCaseError(c, h.log, err, i18n.KeyProfileSaveFailed, i18n.KeyProfileNotFound)
	}
	return ok(c, p, "")
}

// UpdateSection guarda una sección: personal, professional, address o contact.
// @Summary  Editar sección del perfil
// @Tags     beneficiary
// @Accept   json
// @Param    section path string true "personal | professional | address | contact"
// @Success  200 {object} dto.Response
// @Failure  400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router   /beneficiary/profile/{section} [put]
func (h *ProfileHandler) UpdateSection(c *fiber.Ctx) error {
	ctx, userID, tag := c.UserContext(), GetUserID(c), lang(c)

	var (
		p   *dto.ProfileResponse
		err error
	)
	switch section := c.Params("section"); section {
	case dto.SectionPersonal:
		var in dto.PersonalSection
		if err := c.BodyParser(&in); err != nil {
			return fail(c, fiber.StatusBadRequest, CodeInvalidBody, i18n.KeyInvalidBody)
		}
		p, err = h.uc.UpdatePersonal(ctx, userID, in, tag)
	case dto.SectionProfessional:
		var in dto.ProfessionalSection
		if err := c.BodyParser(&in); err != nil {
			return fail(c, fiber.StatusBadRequest, CodeInvalidBody, i18n.KeyInvalidBody)
		}
		p, err = h.uc.UpdateProfessional(ctx, userID, in, tag)
	case dto.SectionAddress:
		var in dto.AddressSection
		if err := c.BodyParser(&in); err != nil {
			return fail(c, fiber.StatusBadRequest, CodeInvalidBody, i18n.KeyInvalidBody)
		}
		p, err = h.uc.UpdateAddress(ctx, userID, in, tag)
	case dto.SectionContact:
		var in dto.ContactSection
		if err := c.BodyParser(&in); err != nil {
			return fail(c, fiber.StatusBadRequest, CodeInvalidBody, i18n.KeyInvalidBody)
		}
		p, err = h.uc.UpdateContact(ctx, userID, in, tag)
	default:
		return fail(c, fiber.StatusBadRequest, CodeValidation, i18n.KeyProfileBadSection, section)
	}
	if err != nil {
		return useCaseError(c, h.log, err, i18n.KeyProfileSaveFailed, i18n.KeyProfileNotFound)
	}
	return ok(c, p, i18n.KeyProfileSaved)
}
