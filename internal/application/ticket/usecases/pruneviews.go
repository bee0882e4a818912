package usecases

import (
	"context"
	"fmt"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

// PruneViewsUseCase drops view rows that can no longer affect the "new"
// badge. A view is never older than its ticket, so a view outside the
// window belongs to a ticket that is past the window too.
type PruneViewsUseCase struct {
	viewRepo ticket.ViewRepository
	logger   logger.Interface
	now      clock
}

func NewPruneViewsUseCase(viewRepo ticket.ViewRepository, logger logger.Interface) *PruneViewsUseCase {
	return &PruneViewsUseCase{
		viewRepo: viewRepo,
		logger:   logger,
		now:      defaultClock,
	}
}

// Execute returns the number of rows removed.
func (uc *PruneViewsUseCase) Execute(ctx context.Context) (int, error) {
	cutoff := uc.now().Add(-ticket.NewTicketWindow)
	n, err := uc.viewRepo.DeleteViewedBefore(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to prune ticket views", "cutoff", cutoff, "error", err)
		return 0, fmt.Errorf("failed to prune ticket views: %w", err)
	}
	if n > 0 {
		uc.logger.Debugw("pruned ticket views", "count", n, "cutoff", cutoff)
	}
	return int(n), nil
}
