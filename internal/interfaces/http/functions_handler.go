package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-beneficiarios/internal/application/analytics"
	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/application/usecase"
	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
	"github.com/jhoicas/portal-beneficiarios/pkg/i18n"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

// FunctionsHandler funciones del panel de administración (POST /api/functions/*).
// Cada función recibe {action, ...} y responde {success, data|error}.
type FunctionsHandler struct {
	stats    *analytics.DashboardUseCase
	services *usecase.ServiceUseCase
	branches *usecase.BranchUseCase
	users    *usecase.UserUseCase
	log      *logger.Logger
}

// NewFunctionsHandler construye el handler.
func NewFunctionsHandler(
	stats *analytics.DashboardUseCase,
	services *usecase.ServiceUseCase,
	branches *usecase.BranchUseCase,
	users *usecase.UserUseCase,
	log *logger.Logger,
) *FunctionsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &FunctionsHandler{stats: stats, services: services, branches: branches, users: users, log: log.Component("functions")}
}

// AdminStats estadísticas del panel. Si algún conteo falla responde 200 con degraded:true
// y estadísticas en cero. Un adminId distinto del usuario del token, o que no es
// administrador, recibe 403 sin estadísticas.
// @Summary  Estadísticas del panel
// @Tags     functions
// @Accept   json
// @Param    body body dto.AdminStatsRequest true "adminId"
// @Success  200 {object} dto.AdminStatsResponse
// @Failure  403 {object} dto.AdminStatsResponse
// @Security BearerAuth
// @Router   /functions/admin-stats [post]
func (h *FunctionsHandler) AdminStats(c *fiber.Ctx) error {
	var in dto.AdminStatsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return fail(c, fiber.StatusBadRequest, CodeInvalidBody, i18n.KeyInvalidBody)
		}
	}
	tag := lang(c)
	switch {
	case in.AdminID == "":
		in.AdminID = GetUserID(c)
	case in.AdminID != GetUserID(c):
		// El adminId del cuerpo solo puede ser el del propio token.
		return c.Status(fiber.StatusForbidden).JSON(dto.AdminStatsResponse{
			Error: i18n.T(tag, i18n.KeyForbidden),
		})
	}

	res, err := h.stats.GetStats(c.UserContext(), in.AdminID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.AdminStatsResponse{
				Error: i18n.T(tag, i18n.KeyForbidden),
			})
		}
		return internal(c, h.log, err, i18n.KeyStatsFailed)
	}

	key := i18n.KeyStatsLoaded
	if res.Degraded {
		key = i18n.KeyStatsDegraded
	}
	stats := res.Stats
	return c.JSON(dto.AdminStatsResponse{
		Success:  true,
		Stats:    &stats,
		Degraded: res.Degraded,
		Message:  i18n.T(tag, key),
	})
}

func (h *FunctionsHandler) parse(c *fiber.Ctx) (dto.FunctionRequest, bool, error) {
	var in dto.FunctionRequest
	if err := c.BodyParser(&in); err != nil {
		return in, false, fail(c, fiber.StatusBadRequest, CodeInvalidBody, i18n.KeyInvalidBody)
	}
	return in, true, nil
}

func missing(c *fiber.Ctx, field string) error {
	return fail(c, fiber.StatusBadRequest, CodeValidation, i18n.KeyFieldRequired, field)
}

func unknownAction(c *fiber.Ctx, action string) error {
	return fail(c, fiber.StatusBadRequest, CodeUnknownAction, i18n.KeyUnknownAction, action)
}

// AdminServices catálogo de servicios: list, create, update, toggle_status, check_has_requests, delete.
// @Summary  Gestión de servicios
// @Tags     functions
// @Accept   json
// @Param    body body dto.FunctionRequest true "acción"
// @Success  200 {object} dto.Response
// @Failure  409 {object} dto.HasRequestsResponse
// @Security BearerAuth
// @Router   /functions/admin-services [post]
func (h *FunctionsHandler) AdminServices(c *fiber.Ctx) error {
	in, parsed, err := h.parse(c)
	if !parsed {
		return err
	}
	ctx := c.UserContext()

	switch in.Action {
	case dto.ActionList:
		list, err := h.services.List(ctx)
		if err != nil {
			return internal(c, h.log, err, i18n.KeyServicesListFailed)
		}
		return ok(c, list, "")

	case dto.ActionCreate:
		if in.ServiceData == nil {
			return missing(c, "serviceData")
		}
		s, err := h.services.Create(ctx, GetUserID(c), *in.ServiceData)
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyServiceCreateFailed, i18n.KeyServiceNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Data: s})

	case dto.ActionUpdate:
		if in.ServiceID == "" {
			return missing(c, "serviceId")
		}
		if in.ServiceData == nil {
			return missing(c, "serviceData")
		}
		s, err := h.services.Update(ctx, in.ServiceID, *in.ServiceData)
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyServiceUpdateFailed, i18n.KeyServiceNotFound)
		}
		return ok(c, s, "")

	case dto.ActionToggleStatus:
		if in.ServiceID == "" {
			return missing(c, "serviceId")
		}
		if in.NewStatus == nil {
			return missing(c, "newStatus")
		}
		s, err := h.services.ToggleStatus(ctx, in.ServiceID, *in.NewStatus)
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyServiceToggleFailed, i18n.KeyServiceNotFound)
		}
		return ok(c, s, "")

	case dto.ActionCheckHasRequests:
		if in.ServiceID == "" {
			return missing(c, "serviceId")
		}
		n, err := h.services.CheckHasRequests(ctx, in.ServiceID)
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyServiceCheckFailed, i18n.KeyServiceNotFound)
		}
		return c.JSON(dto.HasRequestsResponse{Success: true, HasRequests: n > 0, RequestCount: n})

	case dto.ActionDelete:
		if in.ServiceID == "" {
			return missing(c, "serviceId")
		}
		err := h.services.Delete(ctx, in.ServiceID)
		var dep *domain.DependentsError
		if errors.As(err, &dep) {
			return c.Status(fiber.StatusConflict).JSON(dto.HasRequestsResponse{
				HasRequests:  true,
				RequestCount: dep.Requests,
				Code:         CodeHasRequests,
				Error:        i18n.T(lang(c), i18n.KeyServiceHasRequests),
			})
		}
		if errors.Is(err, domain.ErrHasRequests) {
			return fail(c, fiber.StatusConflict, CodeHasRequests, i18n.KeyServiceHasRequests)
		}
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyServiceDeleteFailed, i18n.KeyServiceNotFound)
		}
		return ok(c, nil, i18n.KeyServiceDeleted)
	}
	return unknownAction(c, in.Action)
}

// AdminBranches sedes: list, create, update, toggle_status, delete.
// @Summary  Gestión de sedes
// @Tags     functions
// @Accept   json
// @Param    body body dto.FunctionRequest true "acción"
// @Success  200 {object} dto.Response
// @Failure  409 {object} dto.DependentsResponse
// @Security BearerAuth
// @Router   /functions/admin-branches [post]
func (h *FunctionsHandler) AdminBranches(c *fiber.Ctx) error {
	in, parsed, err := h.parse(c)
	if !parsed {
		return err
	}
	ctx := c.UserContext()

	switch in.Action {
	case dto.ActionList:
		list, err := h.branches.List(ctx)
		if err != nil {
			return internal(c, h.log, err, i18n.KeyBranchesListFailed)
		}
		return ok(c, list, "")

	case dto.ActionCreate:
		if in.BranchData == nil {
			return missing(c, "branchData")
		}
		b, err := h.branches.Create(ctx, *in.BranchData)
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyBranchCreateFailed, i18n.KeyBranchNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Data: b})

	case dto.ActionUpdate:
		if in.BranchID == "" {
			return missing(c, "branchId")
		}
		if in.BranchData == nil {
			return missing(c, "branchData")
		}
		b, err := h.branches.Update(ctx, in.BranchID, *in.BranchData)
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyBranchUpdateFailed, i18n.KeyBranchNotFound)
		}
		return ok(c, b, "")

	case dto.ActionToggleStatus:
		if in.BranchID == "" {
			return missing(c, "branchId")
		}
		if in.NewStatus == nil {
			return missing(c, "newStatus")
		}
		b, err := h.branches.ToggleStatus(ctx, in.BranchID, *in.NewStatus)
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyBranchToggleFailed, i18n.KeyBranchNotFound)
		}
		return ok(c, b, "")

	case dto.ActionDelete:
		if in.BranchID == "" {
			return missing(c, "branchId")
		}
		err := h.branches.Delete(ctx, in.BranchID)
		var dep *domain.DependentsError
		if errors.As(err, &dep) {
			return c.Status(fiber.StatusConflict).JSON(dto.DependentsResponse{
				HasDependents:  true,
				EmployeesCount: dep.Employees,
				MembersCount:   dep.Members,
				Code:           CodeHasDependents,
				Error:          i18n.T(lang(c), i18n.KeyBranchHasDependents),
			})
		}
		if errors.Is(err, domain.ErrHasDependents) {
			return fail(c, fiber.StatusConflict, CodeHasDependents, i18n.KeyBranchHasDependents)
		}
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyBranchDeleteFailed, i18n.KeyBranchNotFound)
		}
		return ok(c, nil, "")
	}
	return unknownAction(c, in.Action)
}

// AdminUsers cuentas: list (role, branchId, search, limit, offset), create, update, toggle_status, delete.
// @Summary  Gestión de usuarios
// @Tags     functions
// @Accept   json
// @Param    body body dto.FunctionRequest true "acción"
// @Success  200 {object} dto.Response
// @Security BearerAuth
// @Router   /functions/admin-users [post]
func (h *FunctionsHandler) AdminUsers(c *fiber.Ctx) error {
	in, parsed, err := h.parse(c)
	if !parsed {
		return err
	}
	ctx := c.UserContext()

	switch in.Action {
	case dto.ActionList:
		in.PageRequest.DefaultPage()
		list, err := h.users.List(ctx, repository.UserFilter{
			Role:     in.Role,
			BranchID: in.BranchID,
			Search:   in.Search,
			Limit:    in.Limit,
			Offset:   in.Offset,
		})
		if err != nil {
			return internal(c, h.log, err, i18n.KeyUsersListFailed)
		}
		return ok(c, list, "")

	case dto.ActionCreate:
		if in.UserData == nil {
			return missing(c, "userData")
		}
		u, err := h.users.Create(ctx, *in.UserData)
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyUserCreateFailed, i18n.KeyUserNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Data: u})

	case dto.ActionUpdate:
		if in.UserID == "" {
			return missing(c, "userId")
		}
		if in.UserData == nil {
			return missing(c, "userData")
		}
		u, err := h.users.Update(ctx, in.UserID, *in.UserData)
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyUserUpdateFailed, i18n.KeyUserNotFound)
		}
		return ok(c, u, "")

	case dto.ActionToggleStatus:
		if in.UserID == "" {
			return missing(c, "userId")
		}
		if in.NewStatus == nil {
			return missing(c, "newStatus")
		}
		u, err := h.users.ToggleStatus(ctx, GetUserID(c), in.UserID, *in.NewStatus)
		if err != nil {
			return useCaseError(c, h.log, err, i18n.KeyUserToggleFailed, i18n.KeyUserNotFound)
		}
		return ok(c, u, "")

	case dto.ActionDelete:
		if in.UserID == "" {
			return missing(c, "userId")
		}
		if err := h.users.Delete(ctx, GetUserID(c), in.UserID); err != nil {
			if errors.Is(err, domain.ErrHasDependents) {
				return fail(c, fiber.StatusConflict, CodeHasDependents, i18n.KeyUserDeleteFailed)
			}
			return useCaseError(c, h.log, err, i18n.KeyUserDeleteFailed, i18n.KeyUserNotFound)
		}
		return ok(c, nil, "")
	}
	return unknownAction(c, in.Action)
}
