package commands

import (
	"context"
	"time"

	"labos/internal/core/domain/model/order"
)

// RouteItemToSupportCommandHandler handles routing a collected sample to an
// external support laboratory.
type RouteItemToSupportCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRouteItemToSupportCommandHandler creates a handler for support routing.
func NewRouteItemToSupportCommandHandler(uowFactory OrderUoWFactory) RouteItemToSupportCommandHandler {
	return RouteItemToSupportCommandHandler{uowFactory: uowFactory}
}

// Handle records the routing data and moves the item to enviado_apoio.
func (h *RouteItemToSupportCommandHandler) Handle(ctx context.Context, cmd RouteItemToSupportCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.TenantID(), cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.SendItemToSupport(cmd.ItemID(), order.SupportRouting{
			At:            time.Now(),
			LaboratorioID: cmd.LaboratorioID(),
			CodigoExterno: cmd.CodigoExterno(),
			Lote:          cmd.Lote(),
		}, cmd.Actor())
	})
}
