// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for specific use cases and never touch
// the domain aggregates.
package queries

import (
	"errors"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one service order with its exam items and current
// result versions, scoped to the tenant.
type GetOrderQuery struct {
	tenantID kernel.TenantID
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's full detail.
func NewGetOrderQuery(tenantID kernel.TenantID, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		tenantID: tenantID,
		orderID:  orderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// TenantID returns the owning company.
func (q GetOrderQuery) TenantID() kernel.TenantID { return q.tenantID }

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is the full read model of one service order.
type GetOrderQueryResponse struct {
	ID         kernel.UUID
	Codigo     string
	Protocolo  string
	PacienteID kernel.UUID

	TipoAtendimento string
	Prioridade      string

	Status          string
	StatusPagamento string

	ValorTotal    int64
	ValorDesconto int64
	ValorFinal    int64
	ValorPago     int64

	CriadoEm time.Time

	Items []GetOrderItemResponse
}

// GetOrderItemResponse is one exam item inside the order read model.
type GetOrderItemResponse struct {
	ID            kernel.UUID
	ExamID        kernel.UUID
	Status        string
	Realizacao    string
	CodigoAmostra string
	ValorTotal    int64
	Urgente       bool
	IsRepeticao   bool

	Results []GetOrderResultResponse
}

// GetOrderResultResponse is one result parameter's current version inside the
// order read model.
type GetOrderResultResponse struct {
	ID            kernel.UUID
	Parametro     string
	Status        string
	Versao        int
	ValorNumerico *float64
	ValorTexto    string
	Unidade       string
	Classificacao string
	ValorCritico  bool
}
