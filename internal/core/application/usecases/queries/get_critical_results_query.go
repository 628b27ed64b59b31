package queries

import (
	"errors"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/guard"
)

var ErrGetCriticalResultsQueryIsNotConstructed = errors.New(
	"GetCriticalResultsQuery must be created via NewGetCriticalResultsQuery constructor",
)

// GetCriticalResultsQuery retrieves the tenant's released results whose value
// fell inside the critical band, released since a cutoff instant. Feeds the
// critical-value notification workflow.
type GetCriticalResultsQuery struct {
	tenantID kernel.TenantID
	since    time.Time

	guard guard.ConstructorGuard
}

// NewGetCriticalResultsQuery creates a query for critical released results.
func NewGetCriticalResultsQuery(tenantID kernel.TenantID, since time.Time) (GetCriticalResultsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetCriticalResultsQuery{}, err
	}

	return GetCriticalResultsQuery{
		tenantID: tenantID,
		since:    since,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCriticalResultsQuery) Validate() error {
	return q.guard.Validate(ErrGetCriticalResultsQueryIsNotConstructed)
}

// TenantID returns the owning company.
func (q GetCriticalResultsQuery) TenantID() kernel.TenantID { return q.tenantID }

// Since returns the release-time cutoff.
func (q GetCriticalResultsQuery) Since() time.Time { return q.since }

// GetCriticalResultsQueryResponse is one critical result in the alert read
// model, denormalized with its order and patient for direct display.
type GetCriticalResultsQueryResponse struct {
	ResultID      kernel.UUID
	OrderID       kernel.UUID
	OrderCodigo   string
	PacienteID    kernel.UUID
	Parametro     string
	ValorNumerico *float64
	Unidade       string
	LiberadoPor   string
	DataLiberacao time.Time
}
