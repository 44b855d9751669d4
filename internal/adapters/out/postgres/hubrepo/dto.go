// Package hubrepo provides read access to the hub registry.
// Hubs are administered outside this service, so the repository only
// loads them for topology building and access checks.
package hubrepo

import (
	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// HubDTO represents the database structure for hub entities.
type HubDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    ``
	District string    `gorm:"index"`
	Position int       `gorm:"index"`
	Kind     int       ``
	IsActive bool      `gorm:"index"`
	Managers []string  `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for hub entities.
func (HubDTO) TableName() string {
	return "hubs"
}

// toDomain converts a database DTO to a hub domain entity.
func toDomain(dto HubDTO) (*hub.Hub, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	district, err := kernel.NewDistrict(dto.District)
	if err != nil {
		return nil, err
	}

	managers := make([]kernel.UUID, 0, len(dto.Managers))
	for _, raw := range dto.Managers {
		managerID, managerErr := kernel.UUIDFromString(raw)
		if managerErr != nil {
			return nil, managerErr
		}
		managers = append(managers, managerID)
	}

	return hub.RestoreHub(
		id,
		dto.Name,
		district,
		dto.Position,
		hub.Kind(dto.Kind),
		dto.IsActive,
		managers,
	)
}
