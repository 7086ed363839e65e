package operatorrepo

import (
	"context"
	"errors"

	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/core/ports"
	"scantrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOperatorRepository implements ports.OperatorRepository using GORM.
type GormOperatorRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(collection ports.Collection, id string, aggregate any)
	TrackDeletion(collection ports.Collection, id string)
}

func NewGormOperatorRepository(db *gorm.DB, tracker aggregateTracker) *GormOperatorRepository {
	return &GormOperatorRepository{db: db, tracker: tracker}
}

func (r *GormOperatorRepository) Add(ctx context.Context, op operator.Operator) error {
	if err := op.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&OperatorDTO{}).Where("id = ?", op.ID()).Count(&count).Error; err != nil {
		return errs.NewPersistenceError("check operator "+op.ID(), err)
	}
	if count > 0 {
		return errs.NewConflictError("add operator "+op.ID(), "the id is already registered")
	}

	dto := fromDomain(op)
	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("add operator "+op.ID(), "the id is already registered", err)
		}
		return errs.NewPersistenceError("add operator "+op.ID(), err)
	}

	r.tracker.TrackAggregate(ports.OperatorsCollection, op.ID(), op)
	return nil
}

// Update renames an operator. Orders keep the name they were started with.
func (r *GormOperatorRepository) Update(ctx context.Context, op operator.Operator) error {
	if err := op.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OperatorDTO{}).Where("id = ?", op.ID()).Update("name", op.Name())
	if result.Error != nil {
		return errs.NewPersistenceError("update operator "+op.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("operator", op.ID())
	}

	r.tracker.TrackAggregate(ports.OperatorsCollection, op.ID(), op)
	return nil
}

func (r *GormOperatorRepository) Get(ctx context.Context, id string) (operator.Operator, error) {
	var dto OperatorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return operator.Operator{}, errs.NewObjectNotFoundError("operator", id)
		}
		return operator.Operator{}, errs.NewPersistenceError("get operator "+id, err)
	}

	return toDomain(dto)
}

func (r *GormOperatorRepository) ListAll(ctx context.Context) ([]operator.Operator, error) {
	var dtos []OperatorDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("list operators", err)
	}

	ops := make([]operator.Operator, 0, len(dtos))
	for _, dto := range dtos {
		op, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (r *GormOperatorRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&OperatorDTO{}, "id = ?", id)
	if result.Error != nil {
		return errs.NewPersistenceError("delete operator "+id, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("operator", id)
	}

	r.tracker.TrackDeletion(ports.OperatorsCollection, id)
	return nil
}
