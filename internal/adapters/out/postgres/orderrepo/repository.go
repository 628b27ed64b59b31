package orderrepo

import (
	"context"
	"errors"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM. Writes replace
// the aggregate whole: the order row is version-guarded, and items and
// results are upserted under it.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and results to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The order row is written
// with a WHERE on the version read at load time; zero rows affected means a
// concurrent writer got there first and nothing is persisted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := dto.Items
	dto.Items = nil
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictingVersionError("order", aggregate.ID().String(), aggregate.Version())
	}

	for idx := range items {
		item := items[idx]
		results := item.Results
		item.Results = nil

		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Create(&item).Error; err != nil {
			return err
		}

		for resultIdx := range results {
			if err := r.db.WithContext(ctx).
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "id"}},
					UpdateAll: true,
				}).
				Create(&results[resultIdx]).Error; err != nil {
				return err
			}
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items and results by id, scoped to the
// tenant. A cross-tenant id is indistinguishable from a missing one.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.preloaded(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCodigo retrieves an order by its business code, scoped to the tenant.
func (r *GormOrderRepository) GetByCodigo(ctx context.Context, tenantID kernel.TenantID, codigo string) (*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if codigo == "" {
		return nil, errs.NewValueIsRequiredError("codigo")
	}

	var dto OrderDTO
	err := r.preloaded(ctx).
		First(&dto, "codigo = ? AND tenant_id = ?", codigo, tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", codigo)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllWithOverdueUrgentItems retrieves, across tenants, every non-terminal
// order holding an urgent item whose deadline passed before the given
// instant.
func (r *GormOrderRepository) GetAllWithOverdueUrgentItems(ctx context.Context, now time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Where(`status NOT IN ? AND id IN (
			SELECT order_id FROM order_exam_items
			WHERE urgente AND prazo_maximo < ? AND status NOT IN ?
		)`,
			[]string{order.StatusEntregue.String(), order.StatusCancelado.String()},
			now,
			[]string{order.ItemLiberado.String(), order.ItemCancelado.String()},
		).
		Order("codigo").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_exam_items.id")
		}).
		Preload("Items.Results", func(db *gorm.DB) *gorm.DB {
			return db.Order("exam_results.ordem_exibicao, exam_results.id")
		})
}
