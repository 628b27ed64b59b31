package commands

import (
	"context"
	"errors"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/pkg/errs"
)

// maxConflictRetries bounds how often a handler re-runs its transaction after
// losing an optimistic-concurrency race on the order row.
const maxConflictRetries = 3

// mutateOrder runs one read-validate-write cycle over an order aggregate
// inside a unit of work: load the order scoped to the tenant, apply the
// mutation, persist with the version guard, commit. On a version conflict the
// whole cycle is retried against a fresh read, up to maxConflictRetries
// attempts; any other error surfaces immediately and the transaction rolls
// back.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	mutate func(aggregate *order.Order) error,
) error {
	var lastErr error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		lastErr = runOrderTransaction(ctx, uowFactory, tenantID, orderID, mutate)
		if !errors.Is(lastErr, errs.ErrConflictingVersion) {
			return lastErr
		}
	}
	return lastErr
}

func runOrderTransaction(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	mutate func(aggregate *order.Order) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, tenantID, orderID)
	if err != nil {
		return err
	}

	if err = mutate(aggregate); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
