package commands

import (
	"errors"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrRouteItemToSupportCommandIsNotConstructed = errors.New(
	"RouteItemToSupportCommand must be created via NewRouteItemToSupportCommand constructor",
)

// RouteItemToSupportCommand represents the hand-off of a collected sample to
// an external support laboratory.
type RouteItemToSupportCommand struct {
	tenantID      kernel.TenantID
	orderID       kernel.UUID
	itemID        kernel.UUID
	laboratorioID kernel.UUID
	codigoExterno string
	lote          string
	actor         string

	guard guard.ConstructorGuard
}

// NewRouteItemToSupportCommand creates a command to route an item to a
// support lab.
func NewRouteItemToSupportCommand(
	tenantID kernel.TenantID,
	orderID, itemID, laboratorioID kernel.UUID,
	codigoExterno, lote, actor string,
) (RouteItemToSupportCommand, error) {
	if err := errors.Join(
		tenantID.Validate(),
		orderID.Validate(),
		itemID.Validate(),
		laboratorioID.Validate(),
	); err != nil {
		return RouteItemToSupportCommand{}, err
	}
	if codigoExterno == "" {
		return RouteItemToSupportCommand{}, errs.NewValueIsRequiredError("codigoExterno")
	}
	if actor == "" {
		return RouteItemToSupportCommand{}, errs.NewValueIsRequiredError("actor")
	}

	return RouteItemToSupportCommand{
		tenantID:      tenantID,
		orderID:       orderID,
		itemID:        itemID,
		laboratorioID: laboratorioID,
		codigoExterno: codigoExterno,
		lote:          lote,
		actor:         actor,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RouteItemToSupportCommand) Validate() error {
	return c.guard.Validate(ErrRouteItemToSupportCommandIsNotConstructed)
}

// TenantID returns the owning company.
func (c RouteItemToSupportCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the target order.
func (c RouteItemToSupportCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the routed item.
func (c RouteItemToSupportCommand) ItemID() kernel.UUID { return c.itemID }

// LaboratorioID returns the destination support lab.
func (c RouteItemToSupportCommand) LaboratorioID() kernel.UUID { return c.laboratorioID }

// CodigoExterno returns the external tracking code.
func (c RouteItemToSupportCommand) CodigoExterno() string { return c.codigoExterno }

// Lote returns the optional shipping batch.
func (c RouteItemToSupportCommand) Lote() string { return c.lote }

// Actor returns who routed the sample.
func (c RouteItemToSupportCommand) Actor() string { return c.actor }
