package commands

import (
	"errors"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrApproveResultQCCommandIsNotConstructed = errors.New(
	"ApproveResultQCCommand must be created via NewApproveResultQCCommand constructor",
)

// ApproveResultQCCommand represents the quality-control approval of one
// result version. The approver must differ from whoever later releases it.
type ApproveResultQCCommand struct {
	tenantID  kernel.TenantID
	orderID   kernel.UUID
	itemID    kernel.UUID
	resultID  kernel.UUID
	aprovador string

	guard guard.ConstructorGuard
}

// NewApproveResultQCCommand creates a command for QC approval.
func NewApproveResultQCCommand(
	tenantID kernel.TenantID,
	orderID, itemID, resultID kernel.UUID,
	aprovador string,
) (ApproveResultQCCommand, error) {
	if err := errors.Join(
		tenantID.Validate(),
		orderID.Validate(),
		itemID.Validate(),
		resultID.Validate(),
	); err != nil {
		return ApproveResultQCCommand{}, err
	}
	if aprovador == "" {
		return ApproveResultQCCommand{}, errs.NewValueIsRequiredError("aprovador")
	}

	return ApproveResultQCCommand{
		tenantID:  tenantID,
		orderID:   orderID,
		itemID:    itemID,
		resultID:  resultID,
		aprovador: aprovador,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveResultQCCommand) Validate() error {
	return c.guard.Validate(ErrApproveResultQCCommandIsNotConstructed)
}

// TenantID returns the owning company.
func (c ApproveResultQCCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the target order.
func (c ApproveResultQCCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the item owning the result.
func (c ApproveResultQCCommand) ItemID() kernel.UUID { return c.itemID }

// ResultID returns the approved result.
func (c ApproveResultQCCommand) ResultID() kernel.UUID { return c.resultID }

// Aprovador returns who approved the QC check.
func (c ApproveResultQCCommand) Aprovador() string { return c.aprovador }
