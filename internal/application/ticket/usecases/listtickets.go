package usecases

import (
	"context"
	"fmt"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
	vo "github.com/itops-inc/itdesk/internal/domain/ticket/valueobjects"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/logger"
	"github.com/itops-inc/itdesk/internal/shared/utils"
)

type ListTicketsQuery struct {
	Status   string              `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED CLOSED CANCELLED"`
	Category string              `json:"category" validate:"omitempty,oneof=HARDWARE SOFTWARE NETWORK ACCOUNT EMAIL PRINTER OTHER"`
	Priority string              `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Page     int                 `json:"page"`
	Limit    int                 `json:"limit"`
	Actor    authorization.Actor `json:"-"`
}

type TicketListItem struct {
	Ticket *ticket.Ticket
	IsNew  bool
}

type ListTicketsResult struct {
	Items      []TicketListItem
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	viewRepo   ticket.ViewRepository
	logger     logger.Interface
	now        clock
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	viewRepo ticket.ViewRepository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		viewRepo:   viewRepo,
		logger:     logger,
		now:        defaultClock,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := buildTicketFilter(query)
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "actor_id", query.Actor.ID, "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	viewed := uc.viewedSet(ctx, query.Actor.ID, tickets)
	now := uc.now()

	items := make([]TicketListItem, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, TicketListItem{
			Ticket: t,
			IsNew:  t.IsNewFor(viewed[t.ID()], now),
		})
	}

	return &ListTicketsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.PageSize,
		TotalPages: utils.TotalPages(total, filter.PageSize),
	}, nil
}

// buildTicketFilter clamps pagination, validates enum filters and scopes
// non-admin callers to their own tickets.
func buildTicketFilter(query ListTicketsQuery) (ticket.TicketFilter, error) {
	if err := utils.ValidateStruct(query); err != nil {
		return ticket.TicketFilter{}, err
	}

	page := utils.ValidatePagination(query.Page, query.Limit)
	filter := ticket.TicketFilter{Page: page.Page, PageSize: page.PageSize}

	if query.Status != "" {
		s := vo.TicketStatus(query.Status)
		filter.Status = &s
	}
	if query.Category != "" {
		c := vo.Category(query.Category)
		filter.Category = &c
	}
	if query.Priority != "" {
		p := vo.Priority(query.Priority)
		filter.Priority = &p
	}

	if !query.Actor.IsAdmin() {
		ownerID := query.Actor.ID
		filter.ReportedByID = &ownerID
	}
	return filter, nil
}
