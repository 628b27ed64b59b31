package commands

import (
	"errors"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand represents one manual forward step of the order's
// front-desk sequence: agendado, confirmado, em_atendimento, or
// aguardando_coleta. Skipping a stage is rejected by the aggregate; the
// collection-onward stages belong to the rollup and cannot be commanded here.
type AdvanceOrderCommand struct {
	tenantID     kernel.TenantID
	orderID      kernel.UUID
	target       order.Status
	agendadoPara *time.Time
	actor        string

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command for one manual order step. A
// target of agendado requires the visit time.
func NewAdvanceOrderCommand(
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	target order.Status,
	agendadoPara *time.Time,
	actor string,
) (AdvanceOrderCommand, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate(), target.Validate()); err != nil {
		return AdvanceOrderCommand{}, err
	}
	switch target {
	case order.StatusAgendado, order.StatusConfirmado, order.StatusEmAtendimento, order.StatusAguardandoColeta:
	default:
		return AdvanceOrderCommand{}, errs.NewValueIsInvalidError("target")
	}
	if target == order.StatusAgendado && agendadoPara == nil {
		return AdvanceOrderCommand{}, errs.NewValueIsRequiredError("agendadoPara")
	}
	if actor == "" {
		return AdvanceOrderCommand{}, errs.NewValueIsRequiredError("actor")
	}

	return AdvanceOrderCommand{
		tenantID:     tenantID,
		orderID:      orderID,
		target:       target,
		agendadoPara: agendadoPara,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// TenantID returns the owning company.
func (c AdvanceOrderCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the target order.
func (c AdvanceOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Target returns the requested status.
func (c AdvanceOrderCommand) Target() order.Status { return c.target }

// AgendadoPara returns the visit time for the agendado step.
func (c AdvanceOrderCommand) AgendadoPara() *time.Time { return c.agendadoPara }

// Actor returns who requested the step.
func (c AdvanceOrderCommand) Actor() string { return c.actor }
