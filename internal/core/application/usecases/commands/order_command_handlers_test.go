package commands_test

import (
	"context"
	"testing"
	"time"

	"labos/internal/core/application/usecases/commands"
	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectMutation wires the single-attempt read-mutate-write expectations
// shared by every mutation handler's happy path.
func expectMutation(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID, aggregate *order.Order) (*MockOrderRepository, *MockOrderUoWFactory) {
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, orderID).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return orderRepo, factory
}

// releasedAggregate builds an in-care order with one fully released item.
func releasedAggregate(t *testing.T, tenantID kernel.TenantID, orderID kernel.UUID) (*order.Order, *order.ExamItem, *order.ExamResult) {
	t.Helper()

	aggregate := newOrderInCare(t, tenantID, orderID)
	item := addCollectedItem(t, aggregate)
	result := addReviewedResult(t, aggregate, item, true)
	require.NoError(t, aggregate.ReleaseResult(
		item.ID(), result.ID(),
		"dr.liberador", "assinatura-abc", time.Now(),
	))
	return aggregate, item, result
}

func TestAddExamItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()

	aggregate := newTestOrder(t, tenantID, orderID)
	itemID := kernel.NewUUID()

	cmd, err := commands.NewAddExamItemCommand(
		tenantID, orderID, itemID, kernel.NewUUID(),
		2, money(t, 4500), money(t, 500),
		order.RealizationInterna, "recepcao.carla",
	)
	require.NoError(t, err)

	orderRepo, factory := expectMutation(ctx, tenantID, orderID, aggregate)

	handler := commands.NewAddExamItemCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, aggregate.Items(), 1)
	assert.Equal(t, int64(8500), aggregate.ValorFinal().Centavos())
	orderRepo.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_Schedules(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()

	aggregate := newTestOrder(t, tenantID, orderID)

	cmd, err := commands.NewAdvanceOrderCommand(
		tenantID, orderID,
		order.StatusAgendado, timePtrDaysAhead(2), "recepcao.carla",
	)
	require.NoError(t, err)

	orderRepo, factory := expectMutation(ctx, tenantID, orderID, aggregate)

	handler := commands.NewAdvanceOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusAgendado, aggregate.Status())
	assert.Equal(t, 1, aggregate.Historico().Len())
	orderRepo.AssertExpectations(t)
}

func TestRouteItemToSupportCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()

	aggregate := newOrderInCare(t, tenantID, orderID)
	item, err := aggregate.AddItem(
		kernel.NewUUID(), kernel.NewUUID(), 1,
		money(t, 12000), kernel.Zero(),
		order.RealizationApoio, "recepcao.carla",
	)
	require.NoError(t, err)
	require.NoError(t, aggregate.AwaitItemCollection(item.ID(), "tecnico.ana"))
	require.NoError(t, aggregate.CollectItem(item.ID(), order.CollectionData{
		At:       time.Now(),
		Coletor:  "tecnico.ana",
		Material: "sangue",
	}, "tecnico.ana"))

	cmd, err := commands.NewRouteItemToSupportCommand(
		tenantID, orderID, item.ID(), kernel.NewUUID(),
		"APOIO-9912", "LOTE-07", "logistica.rui",
	)
	require.NoError(t, err)

	orderRepo, factory := expectMutation(ctx, tenantID, orderID, aggregate)

	handler := commands.NewRouteItemToSupportCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ItemEnviadoApoio, item.Status())
	orderRepo.AssertExpectations(t)
}

func TestApproveResultQCCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()

	aggregate := newOrderInCare(t, tenantID, orderID)
	item := addCollectedItem(t, aggregate)
	result := addReviewedResult(t, aggregate, item, false)

	cmd, err := commands.NewApproveResultQCCommand(
		tenantID, orderID, item.ID(), result.ID(), "dr.revisor",
	)
	require.NoError(t, err)

	orderRepo, factory := expectMutation(ctx, tenantID, orderID, aggregate)

	handler := commands.NewApproveResultQCCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.QCAprovado())
	assert.Equal(t, "dr.revisor", result.QCAprovadoPor())
	orderRepo.AssertExpectations(t)
}

func TestRectifyResultCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()

	aggregate, item, result := releasedAggregate(t, tenantID, orderID)

	cmd, err := commands.NewRectifyResultCommand(
		tenantID, orderID, item.ID(), result.ID(),
		"dr.liberador", floatPtr(104), "", "",
	)
	require.NoError(t, err)

	orderRepo, factory := expectMutation(ctx, tenantID, orderID, aggregate)

	handler := commands.NewRectifyResultCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ResultRetificado, result.Status())
	assert.Equal(t, 2, result.Versao())
	require.Len(t, result.HistoricoVersoes(), 1)
	assert.Equal(t, order.StatusLiberado, aggregate.Status())
	orderRepo.AssertExpectations(t)
}

func TestRepeatItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()

	aggregate, item, _ := releasedAggregate(t, tenantID, orderID)
	newItemID := kernel.NewUUID()

	cmd, err := commands.NewRepeatItemCommand(
		tenantID, orderID, item.ID(), newItemID,
		"amostra hemolisada", "analista.bia",
	)
	require.NoError(t, err)

	orderRepo, factory := expectMutation(ctx, tenantID, orderID, aggregate)

	handler := commands.NewRepeatItemCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ItemRepetir, item.Status())
	require.Len(t, aggregate.Items(), 2)

	repeat, err := aggregate.Item(newItemID)
	require.NoError(t, err)
	assert.True(t, repeat.IsRepeticao())
	assert.True(t, repeat.ValorTotal().IsZero())
	orderRepo.AssertExpectations(t)
}

func TestDeliverOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()

	aggregate, _, _ := releasedAggregate(t, tenantID, orderID)

	cmd, err := commands.NewDeliverOrderCommand(
		tenantID, orderID, "portal", "recepcao.carla",
	)
	require.NoError(t, err)

	orderRepo, factory := expectMutation(ctx, tenantID, orderID, aggregate)

	handler := commands.NewDeliverOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusEntregue, aggregate.Status())
	assert.Equal(t, "portal", aggregate.FormaEntrega())
	orderRepo.AssertExpectations(t)
}

func TestRegisterPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	orderID := kernel.NewUUID()

	aggregate := newOrderInCare(t, tenantID, orderID)
	addCollectedItem(t, aggregate)

	cmd, err := commands.NewRegisterPaymentCommand(
		tenantID, orderID, money(t, 5000), "caixa.lia",
	)
	require.NoError(t, err)

	orderRepo, factory := expectMutation(ctx, tenantID, orderID, aggregate)

	handler := commands.NewRegisterPaymentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PaymentPago, aggregate.StatusPagamento())
	assert.Equal(t, int64(5000), aggregate.ValorPago().Centavos())
	orderRepo.AssertExpectations(t)
}
