package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"labos/internal/adapters/out/postgres/orderrepo"
	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence of the
// full three-level aggregate.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ExamItemDTO{},
		&orderrepo.ExamResultDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_FullAggregate() {
	ctx := context.Background()
	tenantID := kernel.NewTenantID()

	aggregate := suite.createOrderWithCollectedItem(tenantID, "OS-2026-000401")
	item := aggregate.Items()[0]
	result := suite.attachReleasedResult(aggregate, item)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, tenantID, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(aggregate.ID(), restored.ID())
	suite.Equal("OS-2026-000401", restored.Codigo())
	suite.Equal(order.StatusLiberado, restored.Status())
	suite.Equal(aggregate.Historico().Len(), restored.Historico().Len())
	suite.Equal(int64(5000), restored.ValorFinal().Centavos())
	suite.Equal(1, restored.Version())

	suite.Require().Len(restored.Items(), 1)
	restoredItem := restored.Items()[0]
	suite.Equal(order.ItemLiberado, restoredItem.Status())
	suite.Require().NotNil(restoredItem.Coleta())
	suite.Equal("tecnico.ana", restoredItem.Coleta().Coletor)

	suite.Require().Len(restoredItem.Results(), 1)
	restoredResult := restoredItem.Results()[0]
	suite.Equal(result.ID(), restoredResult.ID())
	suite.Equal(order.ResultLiberado, restoredResult.Status())
	suite.Equal("dr.liberador", restoredResult.LiberadoPor())
	suite.Equal(1, restoredResult.Versao())
	suite.Require().NotNil(restoredResult.ValorNumerico())
	suite.InDelta(92, *restoredResult.ValorNumerico(), 0.001)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewTenantID(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_OtherTenant_ReturnsNotFoundError() {
	ctx := context.Background()
	tenantID := kernel.NewTenantID()

	aggregate := suite.createDraftOrder(tenantID, "OS-2026-000402")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, kernel.NewTenantID(), aggregate.ID())

	suite.Nil(retrieved)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByCodigo() {
	ctx := context.Background()
	tenantID := kernel.NewTenantID()

	aggregate := suite.createDraftOrder(tenantID, "OS-2026-000403")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	retrieved, err := suite.repository.GetByCodigo(ctx, tenantID, "OS-2026-000403")
	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), retrieved.ID())

	_, err = suite.repository.GetByCodigo(ctx, tenantID, "OS-2026-999999")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsNewItemsAndVersion() {
	ctx := context.Background()
	tenantID := kernel.NewTenantID()

	aggregate := suite.createDraftOrder(tenantID, "OS-2026-000404")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, tenantID, aggregate.ID())
	suite.Require().NoError(err)

	_, err = loaded.AddItem(
		kernel.NewUUID(), kernel.NewUUID(), 1,
		suite.money(12000), kernel.Zero(),
		order.RealizationInterna, "recepcao.carla",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, tenantID, aggregate.ID())
	suite.Require().NoError(err)
	suite.Len(reloaded.Items(), 1)
	suite.Equal(int64(12000), reloaded.ValorFinal().Centavos())
	suite.Equal(2, reloaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()
	tenantID := kernel.NewTenantID()

	aggregate := suite.createDraftOrder(tenantID, "OS-2026-000405")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	first, err := suite.repository.Get(ctx, tenantID, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, tenantID, aggregate.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Schedule(time.Now().Add(24*time.Hour), "recepcao.carla"))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Schedule(time.Now().Add(48*time.Hour), "recepcao.carla"))
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflictingVersion)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllWithOverdueUrgentItems() {
	ctx := context.Background()
	tenantID := kernel.NewTenantID()

	overdue := suite.createOrderWithCollectedItem(tenantID, "OS-2026-000406")
	suite.Require().NoError(overdue.Items()[0].MarkUrgent(time.Now().Add(-time.Hour)))
	suite.Require().NoError(suite.repository.Add(ctx, overdue))

	onTime := suite.createOrderWithCollectedItem(tenantID, "OS-2026-000407")
	suite.Require().NoError(onTime.Items()[0].MarkUrgent(time.Now().Add(48 * time.Hour)))
	suite.Require().NoError(suite.repository.Add(ctx, onTime))

	routine := suite.createOrderWithCollectedItem(tenantID, "OS-2026-000408")
	suite.Require().NoError(suite.repository.Add(ctx, routine))

	overdueOrders, err := suite.repository.GetAllWithOverdueUrgentItems(ctx, time.Now())
	suite.Require().NoError(err)
	suite.Require().Len(overdueOrders, 1)
	suite.Equal(overdue.ID(), overdueOrders[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) createDraftOrder(tenantID kernel.TenantID, codigo string) *order.Order {
	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:              kernel.NewUUID(),
		TenantID:        tenantID,
		Codigo:          codigo,
		Protocolo:       "PROT-" + codigo,
		PacienteID:      kernel.NewUUID(),
		UnidadeID:       kernel.NewUUID(),
		TipoAtendimento: order.CareParticular,
		Prioridade:      order.PriorityNormal,
		CanalOrigem:     "recepcao",
		CriadoPor:       "recepcao.carla",
	})
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) createOrderWithCollectedItem(tenantID kernel.TenantID, codigo string) *order.Order {
	aggregate := suite.createDraftOrder(tenantID, codigo)
	item, err := aggregate.AddItem(
		kernel.NewUUID(), kernel.NewUUID(), 1,
		suite.money(5000), kernel.Zero(),
		order.RealizationInterna, "recepcao.carla",
	)
	suite.Require().NoError(err)

	suite.Require().NoError(aggregate.Schedule(time.Now().Add(time.Hour), "recepcao.carla"))
	suite.Require().NoError(aggregate.Confirm("recepcao.carla"))
	suite.Require().NoError(aggregate.StartCare("triagem.davi"))
	suite.Require().NoError(aggregate.AwaitItemCollection(item.ID(), "tecnico.ana"))
	suite.Require().NoError(aggregate.CollectItem(item.ID(), order.CollectionData{
		At:       time.Now(),
		Coletor:  "tecnico.ana",
		Material: "sangue",
	}, "tecnico.ana"))
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) attachReleasedResult(aggregate *order.Order, item *order.ExamItem) *order.ExamResult {
	result, err := order.NewExamResult(
		kernel.NewUUID(), item.ID(), item.ExamID(),
		"Glicose", order.OriginManual, 1,
	)
	suite.Require().NoError(err)

	valor := 92.0
	suite.Require().NoError(result.SetValue(&valor, "", ""))
	suite.Require().NoError(aggregate.AddItemResult(item.ID(), result, "analista.bia"))
	suite.Require().NoError(aggregate.StartItemAnalysis(item.ID(), "analista.bia", time.Now()))
	suite.Require().NoError(result.StartAnalysis())
	suite.Require().NoError(result.SendToReview("dr.revisor", time.Now()))
	suite.Require().NoError(result.ApproveQC("dr.revisor", time.Now()))
	suite.Require().NoError(aggregate.ReleaseResult(
		item.ID(), result.ID(),
		"dr.liberador", "assinatura-abc", time.Now(),
	))
	return result
}

func (suite *OrderRepositoryIntegrationTestSuite) money(centavos int64) kernel.Money {
	m, err := kernel.NewMoney(centavos)
	suite.Require().NoError(err)
	return m
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
