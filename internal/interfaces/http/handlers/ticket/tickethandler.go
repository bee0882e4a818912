package ticket

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/application/ticket/dto"
	"github.com/itops-inc/itdesk/internal/application/ticket/usecases"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
	"github.com/itops-inc/itdesk/internal/shared/logger"
	"github.com/itops-inc/itdesk/internal/shared/utils"
)

// Effects runs the detached follow-ups of a ticket mutation.
type Effects interface {
	TicketCreated(actor authorization.Actor, res *usecases.CreateTicketResult)
	TicketUpdated(actor authorization.Actor, res *usecases.UpdateTicketResult)
	TicketDeleted(actor authorization.Actor, res *usecases.DeleteTicketResult)
	CommentAdded(actor authorization.Actor, ticketID uint, res *usecases.AddCommentResult)
	TicketViewed(actor authorization.Actor, ticketID uint)
}

type MutationRecorder interface {
	RecordMutation(operation, outcome string)
}

type TicketHandler struct {
	createTicketUC usecases.CreateTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getTicketUC    usecases.GetTicketExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	deleteTicketUC usecases.DeleteTicketExecutor
	recordViewUC   usecases.RecordViewExecutor
	addCommentUC   usecases.AddCommentExecutor
	effects        Effects
	mutations      MutationRecorder
	logger         logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketUC usecases.GetTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	recordViewUC usecases.RecordViewExecutor,
	addCommentUC usecases.AddCommentExecutor,
	effects Effects,
	mutations MutationRecorder,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC: createTicketUC,
		listTicketsUC:  listTicketsUC,
		getTicketUC:    getTicketUC,
		updateTicketUC: updateTicketUC,
		deleteTicketUC: deleteTicketUC,
		recordViewUC:   recordViewUC,
		addCommentUC:   addCommentUC,
		effects:        effects,
		mutations:      mutations,
		logger:         logger,
	}
}

// ListTickets handles GET /tickets
// @Summary List tickets
// @Description Tickets visible to the caller, newest first. Users only see their own.
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param status query string false "Status filter" Enums(OPEN, IN_PROGRESS, RESOLVED, CLOSED, CANCELLED)
// @Param category query string false "Category filter"
// @Param priority query string false "Priority filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), parseListTicketsQuery(c, actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]dto.TicketListItemDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, dto.ToTicketListItemDTO(item.Ticket, item.IsNew))
	}
	utils.ListSuccessResponse(c, items, result.Total, result.Page, result.Limit)
}

// CreateTicket handles POST /tickets
// @Summary Create a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param ticket body CreateTicketRequest true "Ticket data"
// @Success 201 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, invalidBody())
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(actor))
	h.recordOutcome("create", err)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.effects.TicketCreated(actor, result)
	utils.CreatedResponse(c, dto.ToTicketDTO(result.Ticket), "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id and stamps a view on success.
// @Summary Get a ticket with its comments
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		TicketID: ticketID,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.effects.TicketViewed(actor, result.Ticket.ID())
	utils.SuccessResponse(c, http.StatusOK, "", dto.ToTicketDTO(result.Ticket))
}

// UpdateTicket handles PATCH /tickets/:id
// @Summary Update a ticket
// @Description Fields the caller may not change are ignored. Only admins change status, assignee and resolution.
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param patch body object true "Any of title, description, category, priority, status, assigned_to_id, resolution"
// @Success 200 {object} utils.APIResponse{data=dto.UpdateTicketResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [patch]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, invalidBody())
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		TicketID: ticketID,
		Changes:  decodeUpdateBody(body),
		Actor:    actor,
	})
	if err == nil && !result.Changed {
		h.mutations.RecordMutation("update", "noop")
	} else {
		h.recordOutcome("update", err)
	}
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.effects.TicketUpdated(actor, result)
	utils.SuccessResponse(c, http.StatusOK, "", dto.UpdateTicketResponse{
		Ticket:        dto.ToTicketDTO(result.Ticket),
		Changed:       result.Changed,
		StatusChanged: result.StatusChanged,
	})
}

// DeleteTicket handles DELETE /tickets/:id
// @Summary Delete a ticket
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		TicketID: ticketID,
		Actor:    actor,
	})
	h.recordOutcome("delete", err)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.effects.TicketDeleted(actor, result)
	utils.SuccessResponse(c, http.StatusOK, "Ticket deleted successfully", gin.H{"id": result.TicketID})
}

// RecordView handles POST /tickets/:id/view
// @Summary Mark a ticket as viewed
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id}/view [post]
func (h *TicketHandler) RecordView(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err = h.recordViewUC.Execute(c.Request.Context(), usecases.RecordViewCommand{
		TicketID: ticketID,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"ticket_id": ticketID, "viewed": true})
}

// AddComment handles POST /tickets/:id/comments
// @Summary Comment on a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param comment body AddCommentRequest true "Comment"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, invalidBody())
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		TicketID: ticketID,
		Content:  req.Content,
		Actor:    actor,
	})
	h.recordOutcome("comment", err)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.effects.CommentAdded(actor, ticketID, result)
	utils.CreatedResponse(c, dto.ToCommentDTO(result.Comment), "Comment added successfully")
}

func (h *TicketHandler) recordOutcome(operation string, err error) {
	h.mutations.RecordMutation(operation, outcomeOf(err))
}

// outcomeOf maps a use case result to a mutation counter label: "success",
// or the AppError type ("validation_error", "forbidden", "not_found", ...),
// or "internal_error". The handler records "noop" itself.
func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}
	if appErr := errors.GetAppError(err); appErr != nil {
		return string(appErr.Type)
	}
	return string(errors.ErrorTypeInternal)
}

func requireActor(c *gin.Context) (authorization.Actor, bool) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated").WithKey(i18n.KeyUnauthorized))
		return authorization.Actor{}, false
	}
	return actor, true
}

func invalidBody() error {
	return errors.NewValidationError("invalid request body")
}
