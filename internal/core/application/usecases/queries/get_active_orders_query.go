package queries

import (
	"errors"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves every non-terminal order of one tenant.
// Delivered and cancelled orders are excluded; this is the reception and lab
// work-queue view.
type GetActiveOrdersQuery struct {
	tenantID kernel.TenantID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for the tenant's active orders.
func NewGetActiveOrdersQuery(tenantID kernel.TenantID) (GetActiveOrdersQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// TenantID returns the owning company.
func (q GetActiveOrdersQuery) TenantID() kernel.TenantID { return q.tenantID }

// GetActiveOrdersQueryResponse is one order row in the work-queue read model.
type GetActiveOrdersQueryResponse struct {
	ID         kernel.UUID
	Codigo     string
	PacienteID kernel.UUID
	Status     string
	Prioridade string
	ValorFinal int64
	ItemCount  int
	CriadoEm   time.Time
}
