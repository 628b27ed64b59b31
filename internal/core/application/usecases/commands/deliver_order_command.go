package commands

import (
	"errors"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand represents handing results to the patient. Only fully
// or partially released orders deliver, and the delivery method is mandatory.
type DeliverOrderCommand struct {
	tenantID     kernel.TenantID
	orderID      kernel.UUID
	formaEntrega string
	actor        string

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a command for order delivery.
func NewDeliverOrderCommand(
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	formaEntrega, actor string,
) (DeliverOrderCommand, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return DeliverOrderCommand{}, err
	}
	if formaEntrega == "" {
		return DeliverOrderCommand{}, errs.NewValueIsRequiredError("formaEntrega")
	}
	if actor == "" {
		return DeliverOrderCommand{}, errs.NewValueIsRequiredError("actor")
	}

	return DeliverOrderCommand{
		tenantID:     tenantID,
		orderID:      orderID,
		formaEntrega: formaEntrega,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// TenantID returns the owning company.
func (c DeliverOrderCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the delivered order.
func (c DeliverOrderCommand) OrderID() kernel.UUID { return c.orderID }

// FormaEntrega returns the delivery method.
func (c DeliverOrderCommand) FormaEntrega() string { return c.formaEntrega }

// Actor returns who delivered the results.
func (c DeliverOrderCommand) Actor() string { return c.actor }
