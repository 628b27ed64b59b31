package ports

import (
	"context"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for service-order
// aggregates. Every read is scoped to one tenant; cross-tenant access is a
// not-found.
type OrderRepository interface {
	// Add persists a new order aggregate with its items and results.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// guarded by the aggregate's version: a concurrent update in between
	// yields errs.ConflictingVersionError and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items and results by id, scoped to the
	// tenant.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error)

	// GetByCodigo retrieves an order by its business code, scoped to the
	// tenant.
	GetByCodigo(ctx context.Context, tenantID kernel.TenantID, codigo string) (*order.Order, error)

	// GetAllWithOverdueUrgentItems retrieves, across tenants, every
	// non-terminal order holding an urgent item whose deadline passed before
	// the given instant. Used by the deadline watcher job.
	GetAllWithOverdueUrgentItems(ctx context.Context, now time.Time) ([]*order.Order, error)
}
