package commands

import (
	"context"

	"labos/internal/core/domain/model/order"
)

// AddExamItemCommandHandler handles adding an exam to an existing order.
type AddExamItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddExamItemCommandHandler creates a handler for exam addition.
func NewAddExamItemCommandHandler(uowFactory OrderUoWFactory) AddExamItemCommandHandler {
	return AddExamItemCommandHandler{uowFactory: uowFactory}
}

// Handle processes the exam addition, recomputing the order's totals in the
// same transaction.
func (h *AddExamItemCommandHandler) Handle(ctx context.Context, cmd AddExamItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.TenantID(), cmd.OrderID(), func(aggregate *order.Order) error {
		_, err := aggregate.AddItem(
			cmd.ItemID(), cmd.ExamID(), cmd.Quantidade(),
			cmd.ValorUnitario(), cmd.ValorDesconto(),
			cmd.Realizacao(), cmd.Actor(),
		)
		return err
	})
}
