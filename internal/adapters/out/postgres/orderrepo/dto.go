// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The planned route and the tracking timeline live in JSONB columns: both
// are read and written as a whole with the aggregate and the timeline is
// queried with containment operators on the read side.
type OrderDTO struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primaryKey"`
	DestinationDistrict string             `gorm:"index"`
	Route               []string           `gorm:"serializer:json;type:jsonb"`
	CurrentHubID        *uuid.UUID         `gorm:"type:uuid;index"`
	Status              int                `gorm:"index"`
	DeliveryStatus      int                ``
	CarrierID           *uuid.UUID         `gorm:"type:uuid;index"`
	DeliveryOtp         *string            ``
	OtpIssuedAt         *time.Time         ``
	TrackingTimeline    []TrackingEventDTO `gorm:"serializer:json;type:jsonb"`
	Version             int64              ``
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// TrackingEventDTO is one element of the tracking_timeline JSONB column.
// The event status is stored as its wire name so containment queries can
// match on readable values.
type TrackingEventDTO struct {
	Status      string    `json:"status"`
	Hub         *string   `json:"hub,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		DestinationDistrict: aggregate.DestinationDistrict().Name(),
		Status:              int(aggregate.Status()),
		DeliveryStatus:      int(aggregate.DeliveryStatus()),
		Version:             aggregate.Version(),
	}

	for _, hubID := range aggregate.Route() {
		dto.Route = append(dto.Route, hubID.String())
	}

	if current := aggregate.CurrentHub(); current != nil {
		raw := current.Bytes()
		dto.CurrentHubID = &raw
	}
	if carrier := aggregate.CarrierID(); carrier != nil {
		raw := carrier.Bytes()
		dto.CarrierID = &raw
	}
	if otp := aggregate.DeliveryOtp(); otp != nil {
		code := otp.String()
		dto.DeliveryOtp = &code
	}
	dto.OtpIssuedAt = aggregate.OtpIssuedAt()

	for _, event := range aggregate.Timeline() {
		eventDTO := TrackingEventDTO{
			Status:      event.Status.String(),
			Timestamp:   event.Timestamp,
			Location:    event.Location,
			Description: event.Description,
		}
		if event.Hub != nil {
			hubID := event.Hub.String()
			eventDTO.Hub = &hubID
		}
		dto.TrackingTimeline = append(dto.TrackingTimeline, eventDTO)
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including both status machines and
// the timeline using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewDistrict(dto.DestinationDistrict)
	if err != nil {
		return nil, err
	}

	route := make([]kernel.UUID, 0, len(dto.Route))
	for _, raw := range dto.Route {
		hubID, routeErr := kernel.UUIDFromString(raw)
		if routeErr != nil {
			return nil, routeErr
		}
		route = append(route, hubID)
	}

	var currentHub *kernel.UUID
	if dto.CurrentHubID != nil {
		hubID, hubErr := kernel.UUIDFromBytes((*dto.CurrentHubID)[:])
		if hubErr != nil {
			return nil, hubErr
		}
		currentHub = &hubID
	}

	var carrierID *kernel.UUID
	if dto.CarrierID != nil {
		cID, carrierErr := kernel.UUIDFromBytes((*dto.CarrierID)[:])
		if carrierErr != nil {
			return nil, carrierErr
		}
		carrierID = &cID
	}

	var deliveryOtp *kernel.Otp
	if dto.DeliveryOtp != nil {
		otp, otpErr := kernel.OtpFromString(*dto.DeliveryOtp)
		if otpErr != nil {
			return nil, otpErr
		}
		deliveryOtp = &otp
	}

	timeline := make([]order.TrackingEvent, 0, len(dto.TrackingTimeline))
	for _, eventDTO := range dto.TrackingTimeline {
		status, statusErr := order.EventStatusFromString(eventDTO.Status)
		if statusErr != nil {
			return nil, statusErr
		}

		var hubID *kernel.UUID
		if eventDTO.Hub != nil {
			parsed, hubErr := kernel.UUIDFromString(*eventDTO.Hub)
			if hubErr != nil {
				return nil, hubErr
			}
			hubID = &parsed
		}

		timeline = append(timeline, order.TrackingEvent{
			Status:      status,
			Hub:         hubID,
			Timestamp:   eventDTO.Timestamp,
			Location:    eventDTO.Location,
			Description: eventDTO.Description,
		})
	}

	return order.RestoreOrder(
		id,
		destination,
		route,
		currentHub,
		order.Status(dto.Status),
		order.DeliveryStatus(dto.DeliveryStatus),
		carrierID,
		deliveryOtp,
		dto.OtpIssuedAt,
		timeline,
		dto.Version,
	)
}
