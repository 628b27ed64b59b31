package commands

import (
	"context"
	"time"

	"labos/internal/core/domain/model/order"
)

// ApproveResultQCCommandHandler handles the QC approval of one result.
type ApproveResultQCCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApproveResultQCCommandHandler creates a handler for QC approval.
func NewApproveResultQCCommandHandler(uowFactory OrderUoWFactory) ApproveResultQCCommandHandler {
	return ApproveResultQCCommandHandler{uowFactory: uowFactory}
}

// Handle records the QC approval in one transaction.
func (h *ApproveResultQCCommandHandler) Handle(ctx context.Context, cmd ApproveResultQCCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.TenantID(), cmd.OrderID(), func(aggregate *order.Order) error {
		item, err := aggregate.Item(cmd.ItemID())
		if err != nil {
			return err
		}
		result, err := item.Result(cmd.ResultID())
		if err != nil {
			return err
		}
		return result.ApproveQC(cmd.Aprovador(), time.Now())
	})
}
