// Package emailrequest serves the mailbox request routes.
package emailrequest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/application/emailrequest/dto"
	"github.com/itops-inc/itdesk/internal/application/emailrequest/usecases"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
	"github.com/itops-inc/itdesk/internal/shared/logger"
	"github.com/itops-inc/itdesk/internal/shared/utils"
)

type Handler struct {
	createUC createUseCase
	listUC   listUseCase
	getUC    getUseCase
	deleteUC deleteUseCase
	effects  effects
	logger   logger.Interface
}

func NewHandler(
	createUC createUseCase,
	listUC listUseCase,
	getUC getUseCase,
	deleteUC deleteUseCase,
	effects effects,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createUC: createUC,
		listUC:   listUC,
		getUC:    getUC,
		deleteUC: deleteUC,
		effects:  effects,
		logger:   logger,
	}
}

// Create handles POST /email-requests
// @Summary Request a new mailbox
// @Tags email-requests
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateEmailRequestRequest true "Mailbox request"
// @Success 201 {object} utils.APIResponse{data=dto.EmailRequestDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /email-requests [post]
func (h *Handler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateEmailRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create email request", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), usecases.CreateEmailRequestCommand{
		Details: req.ToDetails(),
		Actor:   actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.effects.Created(actor, created)
	utils.CreatedResponse(c, dto.ToEmailRequestDTO(created), "Email request submitted successfully")
}

// List handles GET /email-requests
// @Summary List mailbox requests
// @Tags email-requests
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 401 {object} utils.APIResponse
// @Router /email-requests [get]
func (h *Handler) List(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListEmailRequestsQuery{
		Page:  p.Page,
		Limit: p.PageSize,
		Actor: actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.ToEmailRequestDTOs(result.Items), result.Total, result.Page, result.Limit)
}

// Get handles GET /email-requests/:id
// @Summary Get a mailbox request
// @Tags email-requests
// @Produce json
// @Security Bearer
// @Param id path int true "Email request ID"
// @Success 200 {object} utils.APIResponse{data=dto.EmailRequestDTO}
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /email-requests/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id", "email request")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	req, err := h.getUC.Execute(c.Request.Context(), id, actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToEmailRequestDTO(req))
}

// Delete handles DELETE /email-requests/:id
// @Summary Delete a mailbox request
// @Tags email-requests
// @Produce json
// @Security Bearer
// @Param id path int true "Email request ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /email-requests/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id", "email request")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	before, err := h.deleteUC.Execute(c.Request.Context(), id, actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.effects.Deleted(actor, id, before)
	utils.SuccessResponse(c, http.StatusOK, "Email request deleted successfully", gin.H{"id": id})
}

func actorOrAbort(c *gin.Context) (authorization.Actor, bool) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated").WithKey(i18n.KeyUnauthorized))
	}
	return actor, ok
}
