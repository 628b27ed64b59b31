package commands

import (
	"context"

	"labos/internal/core/domain/model/order"
)

// AdvanceOrderCommandHandler handles the manual forward steps of the order
// lifecycle.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderCommandHandler creates a handler for manual order steps.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes one manual step, appending to the status ledger in the
// same transaction as the status change.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.TenantID(), cmd.OrderID(), func(aggregate *order.Order) error {
		switch cmd.Target() {
		case order.StatusAgendado:
			return aggregate.Schedule(*cmd.AgendadoPara(), cmd.Actor())
		case order.StatusConfirmado:
			return aggregate.Confirm(cmd.Actor())
		case order.StatusEmAtendimento:
			return aggregate.StartCare(cmd.Actor())
		default:
			return aggregate.AwaitCollection(cmd.Actor())
		}
	})
}
