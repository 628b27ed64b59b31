package commands

import (
	"errors"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrRegisterPaymentCommandIsNotConstructed = errors.New(
	"RegisterPaymentCommand must be created via NewRegisterPaymentCommand constructor",
)

// RegisterPaymentCommand represents one payment against an order. The paid
// amount accumulates and the payment status derives from it: pendente,
// parcial below the final amount, pago at or above it.
type RegisterPaymentCommand struct {
	tenantID kernel.TenantID
	orderID  kernel.UUID
	valor    kernel.Money
	actor    string

	guard guard.ConstructorGuard
}

// NewRegisterPaymentCommand creates a command to record a payment.
func NewRegisterPaymentCommand(
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	valor kernel.Money,
	actor string,
) (RegisterPaymentCommand, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return RegisterPaymentCommand{}, err
	}
	if valor.IsZero() {
		return RegisterPaymentCommand{}, errs.NewValueIsRequiredError("valor")
	}
	if actor == "" {
		return RegisterPaymentCommand{}, errs.NewValueIsRequiredError("actor")
	}

	return RegisterPaymentCommand{
		tenantID: tenantID,
		orderID:  orderID,
		valor:    valor,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPaymentCommandIsNotConstructed)
}

// TenantID returns the owning company.
func (c RegisterPaymentCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the paid order.
func (c RegisterPaymentCommand) OrderID() kernel.UUID { return c.orderID }

// Valor returns the paid amount.
func (c RegisterPaymentCommand) Valor() kernel.Money { return c.valor }

// Actor returns who recorded the payment.
func (c RegisterPaymentCommand) Actor() string { return c.actor }
