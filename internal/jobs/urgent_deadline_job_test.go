package jobs

import (
	"bytes"
	"context"
	"testing"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderRepository struct {
	overdue []*order.Order
	err     error
}

func (s *stubOrderRepository) Add(context.Context, *order.Order) error    { return nil }
func (s *stubOrderRepository) Update(context.Context, *order.Order) error { return nil }

func (s *stubOrderRepository) Get(context.Context, kernel.TenantID, kernel.UUID) (*order.Order, error) {
	return nil, nil
}

func (s *stubOrderRepository) GetByCodigo(context.Context, kernel.TenantID, string) (*order.Order, error) {
	return nil, nil
}

func (s *stubOrderRepository) GetAllWithOverdueUrgentItems(context.Context, time.Time) ([]*order.Order, error) {
	return s.overdue, s.err
}

func orderWithUrgentItem(t *testing.T, prazo time.Time) *order.Order {
	t.Helper()

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:         kernel.NewUUID(),
		TenantID:   kernel.NewTenantID(),
		Codigo:     "OS-2025-000777",
		Protocolo:  "PROT-777",
		PacienteID: kernel.NewUUID(),
		UnidadeID:  kernel.NewUUID(),

		TipoAtendimento: order.CareParticular,
		Prioridade:      order.PriorityUrgente,
		CanalOrigem:     "recepcao",
		CriadoPor:       "atendente",
	})
	require.NoError(t, err)

	unit, err := kernel.NewMoney(4500)
	require.NoError(t, err)
	zero, err := kernel.NewMoney(0)
	require.NoError(t, err)

	item, err := aggregate.AddItem(
		kernel.NewUUID(), kernel.NewUUID(), 1,
		unit, zero, order.RealizationInterna, "atendente",
	)
	require.NoError(t, err)
	require.NoError(t, item.MarkUrgent(prazo))

	return aggregate
}

func TestUrgentDeadlineJob_Scan_LogsOverdueItems(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	aggregate := orderWithUrgentItem(t, now.Add(-30*time.Minute))

	var buf bytes.Buffer
	job := NewUrgentDeadlineJob(&stubOrderRepository{overdue: []*order.Order{aggregate}}, zerolog.New(&buf))
	job.now = func() time.Time { return now }

	require.NoError(t, job.Scan(context.Background()))

	output := buf.String()
	assert.Contains(t, output, "urgent item past deadline")
	assert.Contains(t, output, "OS-2025-000777")
	assert.Contains(t, output, aggregate.Items()[0].ID().String())
}

func TestUrgentDeadlineJob_Scan_SkipsItemsStillWithinDeadline(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	aggregate := orderWithUrgentItem(t, now.Add(2*time.Hour))

	var buf bytes.Buffer
	job := NewUrgentDeadlineJob(&stubOrderRepository{overdue: []*order.Order{aggregate}}, zerolog.New(&buf))
	job.now = func() time.Time { return now }

	require.NoError(t, job.Scan(context.Background()))
	assert.NotContains(t, buf.String(), "urgent item past deadline")
}

func TestUrgentDeadlineJob_Scan_PropagatesRepositoryError(t *testing.T) {
	job := NewUrgentDeadlineJob(&stubOrderRepository{err: assert.AnError}, zerolog.Nop())

	err := job.Scan(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
