package commands

import (
	"errors"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrAddExamItemCommandIsNotConstructed = errors.New(
	"AddExamItemCommand must be created via NewAddExamItemCommand constructor",
)

// AddExamItemCommand represents a request to add one more exam to an existing
// order. Duplicate exams among the order's non-cancelled items are rejected
// by the aggregate.
type AddExamItemCommand struct {
	tenantID      kernel.TenantID
	orderID       kernel.UUID
	itemID        kernel.UUID
	examID        kernel.UUID
	quantidade    int
	valorUnitario kernel.Money
	valorDesconto kernel.Money
	realizacao    order.Realization
	actor         string

	guard guard.ConstructorGuard
}

// NewAddExamItemCommand creates a command to add an exam to an order.
func NewAddExamItemCommand(
	tenantID kernel.TenantID,
	orderID, itemID, examID kernel.UUID,
	quantidade int,
	valorUnitario, valorDesconto kernel.Money,
	realizacao order.Realization,
	actor string,
) (AddExamItemCommand, error) {
	if err := errors.Join(
		tenantID.Validate(),
		orderID.Validate(),
		itemID.Validate(),
		examID.Validate(),
		realizacao.Validate(),
	); err != nil {
		return AddExamItemCommand{}, err
	}
	if actor == "" {
		return AddExamItemCommand{}, errs.NewValueIsRequiredError("actor")
	}

	return AddExamItemCommand{
		tenantID:      tenantID,
		orderID:       orderID,
		itemID:        itemID,
		examID:        examID,
		quantidade:    quantidade,
		valorUnitario: valorUnitario,
		valorDesconto: valorDesconto,
		realizacao:    realizacao,
		actor:         actor,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddExamItemCommand) Validate() error {
	return c.guard.Validate(ErrAddExamItemCommandIsNotConstructed)
}

// TenantID returns the owning company.
func (c AddExamItemCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the target order.
func (c AddExamItemCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the id for the new item.
func (c AddExamItemCommand) ItemID() kernel.UUID { return c.itemID }

// ExamID returns the exam-catalog reference.
func (c AddExamItemCommand) ExamID() kernel.UUID { return c.examID }

// Quantidade returns the requested quantity.
func (c AddExamItemCommand) Quantidade() int { return c.quantidade }

// ValorUnitario returns the catalog unit price.
func (c AddExamItemCommand) ValorUnitario() kernel.Money { return c.valorUnitario }

// ValorDesconto returns the item-level discount.
func (c AddExamItemCommand) ValorDesconto() kernel.Money { return c.valorDesconto }

// Realizacao returns where the exam is realized.
func (c AddExamItemCommand) Realizacao() order.Realization { return c.realizacao }

// Actor returns who requested the addition.
func (c AddExamItemCommand) Actor() string { return c.actor }
