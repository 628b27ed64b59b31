package commands

import (
	"context"
	"time"

	"labos/internal/core/domain/model/order"
)

// ReleaseResultCommandHandler handles result release through the QC gate,
// cascading into the item and the order rollup.
type ReleaseResultCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReleaseResultCommandHandler creates a handler for result release.
func NewReleaseResultCommandHandler(uowFactory OrderUoWFactory) ReleaseResultCommandHandler {
	return ReleaseResultCommandHandler{uowFactory: uowFactory}
}

// Handle releases the result, the item when this was its last pending
// result, and the order rollup, all in one transaction.
func (h *ReleaseResultCommandHandler) Handle(ctx context.Context, cmd ReleaseResultCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.TenantID(), cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.ReleaseResult(
			cmd.ItemID(), cmd.ResultID(),
			cmd.Liberador(), cmd.Assinatura(),
			time.Now(),
		)
	})
}
