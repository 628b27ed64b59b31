package commands

import (
	"errors"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrRepeatItemCommandIsNotConstructed = errors.New(
	"RepeatItemCommand must be created via NewRepeatItemCommand constructor",
)

// RepeatItemCommand represents the repetition of an exam whose result was
// judged invalid: the original item freezes at repetir and a linked
// replacement starts over at pendente.
type RepeatItemCommand struct {
	tenantID  kernel.TenantID
	orderID   kernel.UUID
	itemID    kernel.UUID
	newItemID kernel.UUID
	motivo    string
	actor     string

	guard guard.ConstructorGuard
}

// NewRepeatItemCommand creates a command for exam repetition.
func NewRepeatItemCommand(
	tenantID kernel.TenantID,
	orderID, itemID, newItemID kernel.UUID,
	motivo, actor string,
) (RepeatItemCommand, error) {
	if err := errors.Join(
		tenantID.Validate(),
		orderID.Validate(),
		itemID.Validate(),
		newItemID.Validate(),
	); err != nil {
		return RepeatItemCommand{}, err
	}
	if motivo == "" {
		return RepeatItemCommand{}, errs.NewValueIsRequiredError("motivo")
	}
	if actor == "" {
		return RepeatItemCommand{}, errs.NewValueIsRequiredError("actor")
	}

	return RepeatItemCommand{
		tenantID:  tenantID,
		orderID:   orderID,
		itemID:    itemID,
		newItemID: newItemID,
		motivo:    motivo,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RepeatItemCommand) Validate() error {
	return c.guard.Validate(ErrRepeatItemCommandIsNotConstructed)
}

// TenantID returns the owning company.
func (c RepeatItemCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the target order.
func (c RepeatItemCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the frozen original item.
func (c RepeatItemCommand) ItemID() kernel.UUID { return c.itemID }

// NewItemID returns the id for the replacement item.
func (c RepeatItemCommand) NewItemID() kernel.UUID { return c.newItemID }

// Motivo returns why the exam repeats.
func (c RepeatItemCommand) Motivo() string { return c.motivo }

// Actor returns who requested the repetition.
func (c RepeatItemCommand) Actor() string { return c.actor }
