package commands_test

import (
	"errors"
	"testing"

	"labos/internal/core/application/usecases/commands"
	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// The optimistic-concurrency retry loop is shared by every mutation handler;
// it is exercised here through the cancel command, the simplest mutation.

func TestMutateOrder_RetriesOnVersionConflict(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(tenantID, orderID, "paciente desistiu", "recepcao.carla")
	require.NoError(t, err)

	conflict := errs.NewConflictingVersionError("order", orderID.String(), 1)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	// First attempt loses the race; the second reads a fresh aggregate and
	// commits.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, orderID).Return(newTestOrder(t, tenantID, orderID), nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, orderID).Return(newTestOrder(t, tenantID, orderID), nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	handler := commands.NewCancelOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestMutateOrder_SurfacesConflictAfterExhaustedRetries(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(tenantID, orderID, "paciente desistiu", "recepcao.carla")
	require.NoError(t, err)

	conflict := errs.NewConflictingVersionError("order", orderID.String(), 1)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("OrderRepository").Return(orderRepo).Times(3)
	orderRepo.On("Get", ctx, tenantID, orderID).
		Return(newTestOrder(t, tenantID, orderID), nil).Once().
		On("Get", ctx, tenantID, orderID).
		Return(newTestOrder(t, tenantID, orderID), nil).Once().
		On("Get", ctx, tenantID, orderID).
		Return(newTestOrder(t, tenantID, orderID), nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(conflict).Times(3)
	uow.On("Rollback", ctx).Return(nil).Times(3)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	handler := commands.NewCancelOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflictingVersion)
	orderRepo.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestMutateOrder_NoRetryOnDomainError(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(tenantID, orderID, "paciente desistiu", "recepcao.carla")
	require.NoError(t, err)

	cancelled := newTestOrder(t, tenantID, orderID)
	require.NoError(t, cancelled.Cancel("ja cancelada", "recepcao.carla"))

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, orderID).Return(cancelled, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestMutateOrder_GetError(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(tenantID, orderID, "paciente desistiu", "recepcao.carla")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, orderID).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
}
