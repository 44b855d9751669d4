package hubrepo

import (
	"context"
	"errors"

	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrDbIsRequired = errors.New("db is required")

// GormHubRepository loads hub entities through GORM.
type GormHubRepository struct {
	db *gorm.DB
}

// NewGormHubRepository creates a repository bound to the given connection
// or transaction handle.
func NewGormHubRepository(db *gorm.DB) (*GormHubRepository, error) {
	if db == nil {
		return nil, ErrDbIsRequired
	}

	return &GormHubRepository{db: db}, nil
}

// Get loads a hub by its identifier.
func (r *GormHubRepository) Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HubDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("hubId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll loads every registered hub, active and inactive alike.
// Topology construction decides which hubs take part in routing.
func (r *GormHubRepository) GetAll(ctx context.Context) ([]*hub.Hub, error) {
	var dtos []HubDTO
	err := r.db.WithContext(ctx).Order("position").Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	hubs := make([]*hub.Hub, 0, len(dtos))
	for _, dto := range dtos {
		entity, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		hubs = append(hubs, entity)
	}

	return hubs, nil
}
