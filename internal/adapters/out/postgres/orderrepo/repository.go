package orderrepo

import (
	"context"
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"
	"transit/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrDbIsRequired = errors.New("db is required")
var ErrTrackerIsRequired = errors.New("tracker is required")

// aggregateTracker lets the unit of work collect aggregates touched during
// a transaction so domain events can be published after commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate interface{})
}

// GormOrderRepository persists order aggregates through GORM.
// Updates are guarded by the aggregate version: a write only lands when the
// stored row still carries the version the aggregate was loaded with.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormOrderRepository creates a repository bound to the given connection
// or transaction handle.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) (*GormOrderRepository, error) {
	if db == nil {
		return nil, ErrDbIsRequired
	}
	if tracker == nil {
		return nil, ErrTrackerIsRequired
	}

	return &GormOrderRepository{db: db, tracker: tracker}, nil
}

// Add inserts a new order aggregate.
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

// Update persists an order aggregate with an optimistic concurrency check.
// The row is matched on id AND the version the aggregate was loaded with,
// and the stored version is bumped in the same statement. A zero row count
// means a concurrent writer got there first.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError(
			"order",
			errors.New("order was modified concurrently"),
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	return nil
}

// Get loads an order aggregate by its identifier.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive loads every order that has not reached a terminal status.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []int{int(order.StatusDelivered), int(order.StatusCancelled)}).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}
