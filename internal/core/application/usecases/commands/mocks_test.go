package commands_test

import (
	"context"
	"testing"
	"time"

	"labos/internal/core/application/usecases/commands"
	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCodigo(ctx context.Context, tenantID kernel.TenantID, codigo string) (*order.Order, error) {
	args := m.Called(ctx, tenantID, codigo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllWithOverdueUrgentItems(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// Test fixtures shared by the handler tests.

func money(t *testing.T, centavos int64) kernel.Money {
	t.Helper()

	m, err := kernel.NewMoney(centavos)
	require.NoError(t, err)
	return m
}

func floatPtr(v float64) *float64 { return &v }

func timePtrDaysAhead(days int) *time.Time {
	at := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	return &at
}

// newTestOrder builds a particular-care order in rascunho with no items.
func newTestOrder(t *testing.T, tenantID kernel.TenantID, orderID kernel.UUID) *order.Order {
	t.Helper()

	o, err := order.NewOrder(order.NewOrderParams{
		ID:              orderID,
		TenantID:        tenantID,
		Codigo:          "OS-2026-000300",
		Protocolo:       "PROT-000300",
		PacienteID:      kernel.NewUUID(),
		UnidadeID:       kernel.NewUUID(),
		TipoAtendimento: order.CareParticular,
		Prioridade:      order.PriorityNormal,
		CanalOrigem:     "recepcao",
		CriadoPor:       "recepcao.carla",
	})
	require.NoError(t, err)
	return o
}

// newOrderInCare drives a fresh order to em_atendimento.
func newOrderInCare(t *testing.T, tenantID kernel.TenantID, orderID kernel.UUID) *order.Order {
	t.Helper()

	o := newTestOrder(t, tenantID, orderID)
	require.NoError(t, o.Schedule(time.Now().Add(24*time.Hour), "recepcao.carla"))
	require.NoError(t, o.Confirm("recepcao.carla"))
	require.NoError(t, o.StartCare("triagem.davi"))
	return o
}

// addCollectedItem adds an item to an in-care order and collects it.
func addCollectedItem(t *testing.T, o *order.Order) *order.ExamItem {
	t.Helper()

	item, err := o.AddItem(
		kernel.NewUUID(), kernel.NewUUID(), 1,
		money(t, 5000), kernel.Zero(),
		order.RealizationInterna, "recepcao.carla",
	)
	require.NoError(t, err)
	require.NoError(t, o.AwaitItemCollection(item.ID(), "tecnico.ana"))
	require.NoError(t, o.CollectItem(item.ID(), order.CollectionData{
		At:       time.Now(),
		Coletor:  "tecnico.ana",
		Material: "sangue",
	}, "tecnico.ana"))
	return item
}
