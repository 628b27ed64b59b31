package commands

import (
	"errors"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrRectifyResultCommandIsNotConstructed = errors.New(
	"RectifyResultCommand must be created via NewRectifyResultCommand constructor",
)

// RectifyResultCommand represents the correction of an already-released
// result. The prior version is snapshotted, the version number bumps, and
// the new version must cross the QC gate again before re-release.
type RectifyResultCommand struct {
	tenantID      kernel.TenantID
	orderID       kernel.UUID
	itemID        kernel.UUID
	resultID      kernel.UUID
	editor        string
	valorNumerico *float64
	valorTexto    string
	laudo         string

	guard guard.ConstructorGuard
}

// NewRectifyResultCommand creates a command for post-release correction.
func NewRectifyResultCommand(
	tenantID kernel.TenantID,
	orderID, itemID, resultID kernel.UUID,
	editor string,
	valorNumerico *float64,
	valorTexto, laudo string,
) (RectifyResultCommand, error) {
	if err := errors.Join(
		tenantID.Validate(),
		orderID.Validate(),
		itemID.Validate(),
		resultID.Validate(),
	); err != nil {
		return RectifyResultCommand{}, err
	}
	if editor == "" {
		return RectifyResultCommand{}, errs.NewValueIsRequiredError("editor")
	}
	if valorNumerico == nil && valorTexto == "" && laudo == "" {
		return RectifyResultCommand{}, errs.NewValueIsRequiredError("valor")
	}

	return RectifyResultCommand{
		tenantID:      tenantID,
		orderID:       orderID,
		itemID:        itemID,
		resultID:      resultID,
		editor:        editor,
		valorNumerico: valorNumerico,
		valorTexto:    valorTexto,
		laudo:         laudo,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RectifyResultCommand) Validate() error {
	return c.guard.Validate(ErrRectifyResultCommandIsNotConstructed)
}

// TenantID returns the owning company.
func (c RectifyResultCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the target order.
func (c RectifyResultCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the item owning the result.
func (c RectifyResultCommand) ItemID() kernel.UUID { return c.itemID }

// ResultID returns the rectified result.
func (c RectifyResultCommand) ResultID() kernel.UUID { return c.resultID }

// Editor returns who corrected the result.
func (c RectifyResultCommand) Editor() string { return c.editor }

// ValorNumerico returns the corrected numeric value, or nil.
func (c RectifyResultCommand) ValorNumerico() *float64 { return c.valorNumerico }

// ValorTexto returns the corrected textual value.
func (c RectifyResultCommand) ValorTexto() string { return c.valorTexto }

// Laudo returns the corrected narrative report.
func (c RectifyResultCommand) Laudo() string { return c.laudo }
