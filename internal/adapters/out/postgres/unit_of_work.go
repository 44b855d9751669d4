// Package postgres provides PostgreSQL implementations of the outbound ports.
// It contains the unit of work coordinating transactions and the GORM backed
// repositories for orders and hubs.
package postgres

import (
	"context"
	"errors"

	"transit/internal/adapters/out/postgres/hubrepo"
	"transit/internal/adapters/out/postgres/orderrepo"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/ports"

	"gorm.io/gorm"
)

var ErrDbIsRequired = errors.New("db is required")

// GormUnitOfWorkFactory creates GormUnitOfWork instances.
// Each unit of work gets its own transaction state, so a factory instance
// can be shared across concurrent requests.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to a database connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) (*GormUnitOfWorkFactory, error) {
	if db == nil {
		return nil, ErrDbIsRequired
	}

	return &GormUnitOfWorkFactory{db: db}, nil
}

// Create returns a new unit of work with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// trackedAggregate is an aggregate touched during the transaction,
// remembered so callers can publish change notifications after commit.
type trackedAggregate struct {
	id        kernel.UUID
	aggregate interface{}
}

// GormUnitOfWork implements the unit of work pattern over a GORM
// transaction. Repositories obtained from it are bound to the active
// transaction once Begin has been called, and to the plain connection
// otherwise, so read-only callers can skip the transaction entirely.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB

	trackedAggregates []trackedAggregate
}

// Begin starts a database transaction. Calling Begin with a transaction
// already active is a no-op.
func (u *GormUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	u.tx = tx
	return nil
}

// Commit commits the active transaction.
func (u *GormUnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback rolls back the active transaction.
func (u *GormUnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// HubRepository returns a hub repository bound to the current handle.
func (u *GormUnitOfWork) HubRepository() ports.HubRepository {
	repository, err := hubrepo.NewGormHubRepository(u.handle())
	if err != nil {
		panic(err)
	}

	return repository
}

// OrderRepository returns an order repository bound to the current handle.
func (u *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	repository, err := orderrepo.NewGormOrderRepository(u.handle(), u)
	if err != nil {
		panic(err)
	}

	return repository
}

// TrackAggregate records an aggregate modified within this unit of work.
func (u *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	u.trackedAggregates = append(u.trackedAggregates, trackedAggregate{
		id:        id,
		aggregate: aggregate,
	})
}

func (u *GormUnitOfWork) handle() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}
