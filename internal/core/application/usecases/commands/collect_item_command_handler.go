package commands

import (
	"context"

	"labos/internal/core/domain/model/order"
)

// CollectItemCommandHandler handles sample collection. The item passes
// through aguardando_coleta when it was still pendente, so a direct
// front-desk collection is a single command.
type CollectItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCollectItemCommandHandler creates a handler for sample collection.
func NewCollectItemCommandHandler(uowFactory OrderUoWFactory) CollectItemCommandHandler {
	return CollectItemCommandHandler{uowFactory: uowFactory}
}

// Handle records the collection and recomputes the order rollup in one
// transaction.
func (h *CollectItemCommandHandler) Handle(ctx context.Context, cmd CollectItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.TenantID(), cmd.OrderID(), func(aggregate *order.Order) error {
		item, err := aggregate.Item(cmd.ItemID())
		if err != nil {
			return err
		}
		if item.Status() == order.ItemPendente {
			if err = aggregate.AwaitItemCollection(cmd.ItemID(), cmd.Coletor()); err != nil {
				return err
			}
		}
		return aggregate.CollectItem(cmd.ItemID(), order.CollectionData{
			At:       cmd.At(),
			Coletor:  cmd.Coletor(),
			Material: cmd.Material(),
			Volume:   cmd.Volume(),
		}, cmd.Coletor())
	})
}
