// Package accesspolicy answers authorization questions against the hub
// registry and the carrier coverage table.
package accesspolicy

import (
	"context"
	"errors"
	"fmt"

	"transit/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrDbIsRequired = errors.New("db is required")

// CarrierAreaDTO maps a carrier to a district it serves.
type CarrierAreaDTO struct {
	CarrierID uuid.UUID `gorm:"type:uuid;primaryKey"`
	District  string    `gorm:"primaryKey"`
}

// TableName specifies the database table name for carrier coverage rows.
func (CarrierAreaDTO) TableName() string {
	return "carrier_areas"
}

// GormAccessPolicy checks operator and carrier permissions with direct
// lookups, outside any command transaction. Staff assignments change
// rarely so a stale read here is acceptable.
type GormAccessPolicy struct {
	db *gorm.DB
}

// NewGormAccessPolicy creates an access policy backed by the database.
func NewGormAccessPolicy(db *gorm.DB) (*GormAccessPolicy, error) {
	if db == nil {
		return nil, ErrDbIsRequired
	}

	return &GormAccessPolicy{db: db}, nil
}

// ManagesHub reports whether the operator appears in the hub's manager list.
// The managers column holds a JSONB array of operator identifiers.
func (p *GormAccessPolicy) ManagesHub(
	ctx context.Context,
	operatorID kernel.UUID,
	hubID kernel.UUID,
) (bool, error) {
	if err := operatorID.Validate(); err != nil {
		return false, err
	}
	if err := hubID.Validate(); err != nil {
		return false, err
	}

	match := fmt.Sprintf("[%q]", operatorID.String())

	var count int64
	err := p.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM hubs
		WHERE id = ?
		  AND is_active
		  AND managers @> ?::jsonb
	`, hubID.Bytes(), match).Scan(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CarrierEligible reports whether the carrier covers the district.
func (p *GormAccessPolicy) CarrierEligible(
	ctx context.Context,
	carrierID kernel.UUID,
	district kernel.District,
) (bool, error) {
	if err := carrierID.Validate(); err != nil {
		return false, err
	}
	if err := district.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := p.db.WithContext(ctx).
		Model(&CarrierAreaDTO{}).
		Where("carrier_id = ? AND LOWER(district) = ?", carrierID.Bytes(), district.Key()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
