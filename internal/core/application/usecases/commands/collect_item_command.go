package commands

import (
	"errors"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrCollectItemCommandIsNotConstructed = errors.New(
	"CollectItemCommand must be created via NewCollectItemCommand constructor",
)

// CollectItemCommand represents the sample collection of one exam item:
// timestamp, collector, and material recorded atomically with the status
// change.
type CollectItemCommand struct {
	tenantID kernel.TenantID
	orderID  kernel.UUID
	itemID   kernel.UUID
	at       time.Time
	coletor  string
	material string
	volume   string

	guard guard.ConstructorGuard
}

// NewCollectItemCommand creates a command to record a sample collection.
func NewCollectItemCommand(
	tenantID kernel.TenantID,
	orderID, itemID kernel.UUID,
	at time.Time,
	coletor, material, volume string,
) (CollectItemCommand, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate(), itemID.Validate()); err != nil {
		return CollectItemCommand{}, err
	}
	if at.IsZero() {
		return CollectItemCommand{}, errs.NewValueIsRequiredError("at")
	}
	if coletor == "" {
		return CollectItemCommand{}, errs.NewValueIsRequiredError("coletor")
	}
	if material == "" {
		return CollectItemCommand{}, errs.NewValueIsRequiredError("material")
	}

	return CollectItemCommand{
		tenantID: tenantID,
		orderID:  orderID,
		itemID:   itemID,
		at:       at,
		coletor:  coletor,
		material: material,
		volume:   volume,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CollectItemCommand) Validate() error {
	return c.guard.Validate(ErrCollectItemCommandIsNotConstructed)
}

// TenantID returns the owning company.
func (c CollectItemCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the target order.
func (c CollectItemCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the collected item.
func (c CollectItemCommand) ItemID() kernel.UUID { return c.itemID }

// At returns when the sample was taken.
func (c CollectItemCommand) At() time.Time { return c.at }

// Coletor returns who took the sample.
func (c CollectItemCommand) Coletor() string { return c.coletor }

// Material returns the sampled material.
func (c CollectItemCommand) Material() string { return c.material }

// Volume returns the optional sampled volume.
func (c CollectItemCommand) Volume() string { return c.volume }
