package commands

import (
	"errors"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents the cancellation of a service order. The
// aggregate cascades to every non-terminal item; released result data stays
// untouched for audit.
type CancelOrderCommand struct {
	tenantID kernel.TenantID
	orderID  kernel.UUID
	motivo   string
	actor    string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command for order cancellation.
func NewCancelOrderCommand(
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	motivo, actor string,
) (CancelOrderCommand, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}
	if motivo == "" {
		return CancelOrderCommand{}, errs.NewValueIsRequiredError("motivo")
	}
	if actor == "" {
		return CancelOrderCommand{}, errs.NewValueIsRequiredError("actor")
	}

	return CancelOrderCommand{
		tenantID: tenantID,
		orderID:  orderID,
		motivo:   motivo,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// TenantID returns the owning company.
func (c CancelOrderCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the cancelled order.
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Motivo returns the cancellation reason.
func (c CancelOrderCommand) Motivo() string { return c.motivo }

// Actor returns who cancelled the order.
func (c CancelOrderCommand) Actor() string { return c.actor }
