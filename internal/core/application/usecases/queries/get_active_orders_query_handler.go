package queries

import (
	"context"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves the tenant's non-terminal orders
// from the database. Uses direct SQL queries for optimal read performance in
// the CQRS pattern.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Urgent priorities come first, then newest
// orders.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.codigo,
			o.paciente_id,
			o.status,
			o.prioridade,
			o.valor_final,
			(SELECT COUNT(*) FROM order_exam_items i WHERE i.order_id = o.id) AS item_count,
			o.criado_em
		FROM orders o
		WHERE o.tenant_id = ? AND o.status NOT IN ?
		ORDER BY
			CASE o.prioridade
				WHEN 'emergencia' THEN 0
				WHEN 'urgente' THEN 1
				ELSE 2
			END,
			o.criado_em DESC
	`, query.TenantID().Bytes(),
		[]string{order.StatusEntregue.String(), order.StatusCancelado.String()},
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetActiveOrdersQueryResponse
		var id, pacienteID uuid.UUID

		err = rows.Scan(
			&id,
			&orderResp.Codigo,
			&pacienteID,
			&orderResp.Status,
			&orderResp.Prioridade,
			&orderResp.ValorFinal,
			&orderResp.ItemCount,
			&orderResp.CriadoEm,
		)
		if err != nil {
			return nil, err
		}

		if orderResp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if orderResp.PacienteID, err = kernel.UUIDFromBytes(pacienteID[:]); err != nil {
			return nil, err
		}
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
