package commands

import (
	"context"

	"labos/internal/core/domain/model/order"
)

// CancelOrderCommandHandler handles order cancellation.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

// Handle cancels the order and its non-terminal items in one transaction.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.TenantID(), cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.Cancel(cmd.Motivo(), cmd.Actor())
	})
}
