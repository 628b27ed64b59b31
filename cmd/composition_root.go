package cmd

import (
	"labos/internal/adapters/in/http"
	"labos/internal/adapters/out/postgres"
	"labos/internal/adapters/out/postgres/orderrepo"
	"labos/internal/core/application/usecases/commands"
	"labos/internal/core/application/usecases/queries"
	"labos/internal/core/domain/model/kernel"
	"labos/internal/jobs"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CompositionRoot wires the persistence, application, and inbound layers.
// Handlers are cheap value types; each getter builds a fresh one over the
// shared unit-of-work factory.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     zerolog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger zerolog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

// orderUoWFactory bridges the ports-level factory to the commands-level
// interface; the two shapes are structurally identical.
func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// CreateHTTPHandlers builds the full handler set the HTTP server routes to.
func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	f := c.orderUoWFactory()
	return http.Handlers{
		CreateOrder:        commands.NewCreateOrderCommandHandler(f),
		AddExamItem:        commands.NewAddExamItemCommandHandler(f),
		AdvanceOrder:       commands.NewAdvanceOrderCommandHandler(f),
		CollectItem:        commands.NewCollectItemCommandHandler(f),
		RouteItemToSupport: commands.NewRouteItemToSupportCommandHandler(f),
		EnterResult:        commands.NewEnterResultCommandHandler(f),
		ApproveResultQC:    commands.NewApproveResultQCCommandHandler(f),
		ReleaseResult:      commands.NewReleaseResultCommandHandler(f),
		RectifyResult:      commands.NewRectifyResultCommandHandler(f),
		RepeatItem:         commands.NewRepeatItemCommandHandler(f),
		DeliverOrder:       commands.NewDeliverOrderCommandHandler(f),
		CancelOrder:        commands.NewCancelOrderCommandHandler(f),
		RegisterPayment:    commands.NewRegisterPaymentCommandHandler(f),

		GetOrder:           queries.NewGetOrderQueryHandler(c.gormDB),
		GetActiveOrders:    queries.NewGetActiveOrdersQueryHandler(c.gormDB),
		GetCriticalResults: queries.NewGetCriticalResultsQueryHandler(c.gormDB),
	}
}

// CreateUrgentDeadlineJob builds the deadline watcher over a repository
// outside any unit of work; the job only reads.
func (c *CompositionRoot) CreateUrgentDeadlineJob() *jobs.UrgentDeadlineJob {
	repo := orderrepo.NewGormOrderRepository(c.gormDB, noopTracker{})
	return jobs.NewUrgentDeadlineJob(repo, c.logger)
}

// noopTracker satisfies the repository's tracking hook for read-only use
// outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
