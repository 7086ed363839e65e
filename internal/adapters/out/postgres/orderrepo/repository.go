package orderrepo

import (
	"context"
	"errors"

	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/core/ports"
	"scantrack/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records what a unit of work changed.
type aggregateTracker interface {
	TrackAggregate(collection ports.Collection, id string, aggregate any)
	TrackDeletion(collection ports.Collection, id string)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Upsert inserts the order or overwrites every column of the existing row.
func (r *GormOrderRepository) Upsert(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
	if err != nil {
		return errs.NewPersistenceError("upsert order "+dto.ID, err)
	}

	r.tracker.TrackAggregate(ports.OrdersCollection, dto.ID, aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewPersistenceError("get order "+id.String(), err)
	}

	return toDomain(dto)
}

// ListAll returns every order by creation time.
func (r *GormOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("creation_time, id").Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("list orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Delete removes one order; unknown ids are not an error.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.String())
	if result.Error != nil {
		return errs.NewPersistenceError("delete order "+id.String(), result.Error)
	}

	if result.RowsAffected > 0 {
		r.tracker.TrackDeletion(ports.OrdersCollection, id.String())
	}
	return nil
}

func (r *GormOrderRepository) DeleteCompleted(ctx context.Context) (int64, error) {
	var ids []string
	db := r.db.WithContext(ctx)
	if err := db.Model(&OrderDTO{}).Where("end_time IS NOT NULL").Pluck("id", &ids).Error; err != nil {
		return 0, errs.NewPersistenceError("list completed orders", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result := db.Where("id IN ?", ids).Delete(&OrderDTO{})
	if result.Error != nil {
		return 0, errs.NewPersistenceError("delete completed orders", result.Error)
	}

	for _, id := range ids {
		r.tracker.TrackDeletion(ports.OrdersCollection, id)
	}
	return result.RowsAffected, nil
}
