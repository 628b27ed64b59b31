package queries

import (
	"context"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCriticalResultsQueryHandler retrieves critical released results from
// the database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetCriticalResultsQueryHandler struct {
	db *gorm.DB
}

// NewGetCriticalResultsQueryHandler creates a handler for critical result
// queries. Requires a GORM database connection for query execution.
func NewGetCriticalResultsQueryHandler(db *gorm.DB) GetCriticalResultsQueryHandler {
	return GetCriticalResultsQueryHandler{db: db}
}

// Handle executes the query. Only released current versions count; a
// rectified value that left the critical band drops off this view.
func (h GetCriticalResultsQueryHandler) Handle(
	ctx context.Context,
	query GetCriticalResultsQuery,
) ([]GetCriticalResultsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	results := make([]GetCriticalResultsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			o.id,
			o.codigo,
			o.paciente_id,
			r.parametro,
			r.valor_numerico,
			r.unidade,
			r.liberado_por,
			r.data_liberacao
		FROM exam_results r
		JOIN order_exam_items i ON i.id = r.item_id
		JOIN orders o ON o.id = i.order_id
		WHERE o.tenant_id = ?
			AND r.status = ?
			AND r.valor_critico
			AND r.data_liberacao >= ?
		ORDER BY r.data_liberacao DESC
	`, query.TenantID().Bytes(),
		order.ResultLiberado.String(),
		query.Since(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var result GetCriticalResultsQueryResponse
		var resultID, orderID, pacienteID uuid.UUID

		err = rows.Scan(
			&resultID,
			&orderID,
			&result.OrderCodigo,
			&pacienteID,
			&result.Parametro,
			&result.ValorNumerico,
			&result.Unidade,
			&result.LiberadoPor,
			&result.DataLiberacao,
		)
		if err != nil {
			return nil, err
		}

		if result.ResultID, err = kernel.UUIDFromBytes(resultID[:]); err != nil {
			return nil, err
		}
		if result.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if result.PacienteID, err = kernel.UUIDFromBytes(pacienteID[:]); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
