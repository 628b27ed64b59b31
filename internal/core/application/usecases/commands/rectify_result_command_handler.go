package commands

import (
	"context"
	"time"

	"labos/internal/core/domain/model/order"
)

// RectifyResultCommandHandler handles post-release corrections.
type RectifyResultCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRectifyResultCommandHandler creates a handler for result rectification.
func NewRectifyResultCommandHandler(uowFactory OrderUoWFactory) RectifyResultCommandHandler {
	return RectifyResultCommandHandler{uowFactory: uowFactory}
}

// Handle snapshots the released version and applies the correction in one
// transaction.
func (h *RectifyResultCommandHandler) Handle(ctx context.Context, cmd RectifyResultCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.TenantID(), cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.RectifyItemResult(
			cmd.ItemID(), cmd.ResultID(),
			cmd.Editor(), time.Now(),
			cmd.ValorNumerico(), cmd.ValorTexto(), cmd.Laudo(),
		)
	})
}
