package commands

import (
	"context"
	"errors"
	"time"

	"labos/internal/core/domain/model/order"
	"labos/internal/pkg/errs"
)

// EnterResultCommandHandler handles result entry. A new result is created in
// rascunho and attached to the item; an existing unreleased result is edited
// in place. Either way the value lands the result at aguardando_revisao and
// pulls the item into em_analise when needed.
type EnterResultCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewEnterResultCommandHandler creates a handler for result entry.
func NewEnterResultCommandHandler(uowFactory OrderUoWFactory) EnterResultCommandHandler {
	return EnterResultCommandHandler{uowFactory: uowFactory}
}

// Handle processes the result entry in one transaction.
func (h *EnterResultCommandHandler) Handle(ctx context.Context, cmd EnterResultCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	p := cmd.Params()

	return mutateOrder(ctx, h.uowFactory, p.TenantID, p.OrderID, func(aggregate *order.Order) error {
		item, err := aggregate.Item(p.ItemID)
		if err != nil {
			return err
		}

		result, err := item.Result(p.ResultID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			result, err = order.NewExamResult(
				p.ResultID, p.ItemID, item.ExamID(),
				p.Parametro, p.Origem, p.OrdemExibicao,
			)
			if err != nil {
				return err
			}
			if err = aggregate.AddItemResult(p.ItemID, result, p.Analista); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err = errors.Join(
			result.SetUnit(p.Unidade),
			result.SetMethod(p.Metodo),
			result.SetReferenceRange(p.Referencia),
			result.SetCriticalBand(p.Critico),
			result.SetValue(p.ValorNumerico, p.ValorTexto, p.Laudo),
			result.Annotate(p.Interpretacao, p.Comentario),
		); err != nil {
			return err
		}

		if item.Status() != order.ItemEmAnalise {
			if err = aggregate.StartItemAnalysis(p.ItemID, p.Analista, time.Now()); err != nil {
				return err
			}
		}
		if result.Status() == order.ResultRascunho || result.Status() == order.ResultRetificado {
			if err = result.StartAnalysis(); err != nil {
				return err
			}
		}
		if result.Status() == order.ResultEmAnalise {
			return result.SendToReview(p.Analista, time.Now())
		}
		return nil
	})
}
