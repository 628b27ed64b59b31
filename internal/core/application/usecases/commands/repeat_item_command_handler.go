package commands

import (
	"context"

	"labos/internal/core/domain/model/order"
)

// RepeatItemCommandHandler handles exam repetition.
type RepeatItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRepeatItemCommandHandler creates a handler for exam repetition.
func NewRepeatItemCommandHandler(uowFactory OrderUoWFactory) RepeatItemCommandHandler {
	return RepeatItemCommandHandler{uowFactory: uowFactory}
}

// Handle freezes the original item and creates the linked replacement in one
// transaction.
func (h *RepeatItemCommandHandler) Handle(ctx context.Context, cmd RepeatItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.TenantID(), cmd.OrderID(), func(aggregate *order.Order) error {
		_, err := aggregate.RepeatItem(cmd.ItemID(), cmd.NewItemID(), cmd.Motivo(), cmd.Actor())
		return err
	})
}
