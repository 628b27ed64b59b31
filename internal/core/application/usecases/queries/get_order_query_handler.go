package queries

import (
	"context"
	"database/sql"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order's full detail from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and assembles the three-level read model. Items
// come back in insertion order, results in display order.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := h.loadOrder(ctx, query)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.Items = items

	return response, nil
}

func (h GetOrderQueryHandler) loadOrder(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			codigo,
			protocolo,
			paciente_id,
			tipo_atendimento,
			prioridade,
			status,
			status_pagamento,
			valor_total,
			valor_desconto,
			valor_final,
			valor_pago,
			criado_em
		FROM orders
		WHERE id = ? AND tenant_id = ?
	`, query.OrderID().Bytes(), query.TenantID().Bytes()).Row()

	var response GetOrderQueryResponse
	var id, pacienteID uuid.UUID

	err := row.Scan(
		&id,
		&response.Codigo,
		&response.Protocolo,
		&pacienteID,
		&response.TipoAtendimento,
		&response.Prioridade,
		&response.Status,
		&response.StatusPagamento,
		&response.ValorTotal,
		&response.ValorDesconto,
		&response.ValorFinal,
		&response.ValorPago,
		&response.CriadoEm,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.PacienteID, err = kernel.UUIDFromBytes(pacienteID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]GetOrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			exam_id,
			status,
			realizacao,
			codigo_amostra,
			valor_total,
			urgente,
			is_repeticao
		FROM order_exam_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetOrderItemResponse, 0)
	for rows.Next() {
		var item GetOrderItemResponse
		var id, examID uuid.UUID

		err = rows.Scan(
			&id,
			&examID,
			&item.Status,
			&item.Realizacao,
			&item.CodigoAmostra,
			&item.ValorTotal,
			&item.Urgente,
			&item.IsRepeticao,
		)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.ExamID, err = kernel.UUIDFromBytes(examID[:]); err != nil {
			return nil, err
		}

		if item.Results, err = h.loadResults(ctx, item.ID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (h GetOrderQueryHandler) loadResults(ctx context.Context, itemID kernel.UUID) ([]GetOrderResultResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			parametro,
			status,
			versao,
			valor_numerico,
			valor_texto,
			unidade,
			classificacao,
			valor_critico
		FROM exam_results
		WHERE item_id = ?
		ORDER BY ordem_exibicao, id
	`, itemID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]GetOrderResultResponse, 0)
	for rows.Next() {
		var result GetOrderResultResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&result.Parametro,
			&result.Status,
			&result.Versao,
			&result.ValorNumerico,
			&result.ValorTexto,
			&result.Unidade,
			&result.Classificacao,
			&result.ValorCritico,
		)
		if err != nil {
			return nil, err
		}

		if result.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
