package commands

import (
	"context"

	"labos/internal/core/domain/model/order"
	"labos/internal/core/domain/services"
)

// RegisterPaymentCommandHandler handles payment recording. Billing is
// recomputed first so the derived payment status always compares against a
// current valor_final.
type RegisterPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	billing    services.BillingCalculator
}

// NewRegisterPaymentCommandHandler creates a handler for payment recording.
func NewRegisterPaymentCommandHandler(uowFactory OrderUoWFactory) RegisterPaymentCommandHandler {
	return RegisterPaymentCommandHandler{
		uowFactory: uowFactory,
		billing:    services.NewBillingCalculator(),
	}
}

// Handle recomputes billing and records the payment in one transaction.
func (h *RegisterPaymentCommandHandler) Handle(ctx context.Context, cmd RegisterPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.TenantID(), cmd.OrderID(), func(aggregate *order.Order) error {
		if err := h.billing.Recalculate(aggregate, cmd.Actor()); err != nil {
			return err
		}
		return aggregate.RegisterPayment(cmd.Valor(), cmd.Actor())
	})
}
