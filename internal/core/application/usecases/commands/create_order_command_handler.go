package commands

import (
	"context"

	"labos/internal/core/domain/model/order"
	"labos/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the registration of a new service order:
// the aggregate is created in rascunho, the requested exams become pendente
// items, and the convênio discount is applied before the first persist.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	billing    services.BillingCalculator
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		billing:    services.NewBillingCalculator(),
	}
}

// Handle processes the order creation command. The order, its items, and the
// billing figures are persisted in one transaction or not at all.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	p := cmd.Params()

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:              p.OrderID,
		TenantID:        p.TenantID,
		Codigo:          p.Codigo,
		Protocolo:       p.Protocolo,
		PacienteID:      p.PacienteID,
		UnidadeID:       p.UnidadeID,
		TipoAtendimento: p.TipoAtendimento,
		ConvenioID:      p.ConvenioID,
		GuiaNumero:      p.GuiaNumero,
		GuiaSenha:       p.GuiaSenha,
		GuiaValidade:    p.GuiaValidade,
		Prioridade:      p.Prioridade,
		CanalOrigem:     p.CanalOrigem,
		CriadoPor:       p.CriadoPor,
	})
	if err != nil {
		return err
	}

	for _, exam := range p.Exams {
		if _, err = aggregate.AddItem(
			exam.ItemID, exam.ExamID, exam.Quantidade,
			exam.ValorUnitario, exam.ValorDesconto,
			exam.Realizacao, p.CriadoPor,
		); err != nil {
			return err
		}
	}

	if err = h.billing.ApplyConvenioDiscount(aggregate, p.DescontoPercentual, p.CriadoPor); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
