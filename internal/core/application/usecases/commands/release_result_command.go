package commands

import (
	"errors"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrReleaseResultCommandIsNotConstructed = errors.New(
	"ReleaseResultCommand must be created via NewReleaseResultCommand constructor",
)

// ReleaseResultCommand represents the release of one QC-approved result with
// the releaser's digital signature. When it is the item's last pending
// result, the item and possibly the order roll forward in the same operation.
type ReleaseResultCommand struct {
	tenantID   kernel.TenantID
	orderID    kernel.UUID
	itemID     kernel.UUID
	resultID   kernel.UUID
	liberador  string
	assinatura string

	guard guard.ConstructorGuard
}

// NewReleaseResultCommand creates a command for result release.
func NewReleaseResultCommand(
	tenantID kernel.TenantID,
	orderID, itemID, resultID kernel.UUID,
	liberador, assinatura string,
) (ReleaseResultCommand, error) {
	if err := errors.Join(
		tenantID.Validate(),
		orderID.Validate(),
		itemID.Validate(),
		resultID.Validate(),
	); err != nil {
		return ReleaseResultCommand{}, err
	}
	if liberador == "" {
		return ReleaseResultCommand{}, errs.NewValueIsRequiredError("liberador")
	}
	if assinatura == "" {
		return ReleaseResultCommand{}, errs.NewValueIsRequiredError("assinatura")
	}

	return ReleaseResultCommand{
		tenantID:   tenantID,
		orderID:    orderID,
		itemID:     itemID,
		resultID:   resultID,
		liberador:  liberador,
		assinatura: assinatura,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseResultCommand) Validate() error {
	return c.guard.Validate(ErrReleaseResultCommandIsNotConstructed)
}

// TenantID returns the owning company.
func (c ReleaseResultCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the target order.
func (c ReleaseResultCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the item owning the result.
func (c ReleaseResultCommand) ItemID() kernel.UUID { return c.itemID }

// ResultID returns the released result.
func (c ReleaseResultCommand) ResultID() kernel.UUID { return c.resultID }

// Liberador returns who signs the release.
func (c ReleaseResultCommand) Liberador() string { return c.liberador }

// Assinatura returns the digital signature.
func (c ReleaseResultCommand) Assinatura() string { return c.assinatura }
