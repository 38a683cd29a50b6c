// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work scopes one business transaction: repositories
// obtained from it share the same database transaction, and aggregates they
// touch are tracked for post-commit processing.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"pressing/internal/adapters/out/postgres/fulfillerrepo"
	"pressing/internal/adapters/out/postgres/orderrepo"
	"pressing/internal/adapters/out/postgres/outboxrepo"
	"pressing/internal/adapters/out/postgres/promorepo"
	"pressing/internal/adapters/out/postgres/webhookrepo"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// database connection. Each business operation gets a fresh unit of work
// with its own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction across the repositories
// and tracks aggregate changes for post-commit processing.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Repeated calls on the same
// instance are no-ops; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository provides order persistence within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// PromoCodeRepository provides promo code persistence within the unit of work.
func (uow *GormUnitOfWork) PromoCodeRepository() ports.PromoCodeRepository {
	return promorepo.NewGormPromoCodeRepository(uow.conn(), uow)
}

// FulfillerRepository provides washer and partner persistence within the unit of work.
func (uow *GormUnitOfWork) FulfillerRepository() ports.FulfillerRepository {
	return fulfillerrepo.NewGormFulfillerRepository(uow.conn(), uow)
}

// WebhookEventRepository provides the processed webhook event ledger within the unit of work.
func (uow *GormUnitOfWork) WebhookEventRepository() ports.WebhookEventRepository {
	return webhookrepo.NewGormWebhookEventRepository(uow.conn())
}

// OutboxRepository provides outbox message persistence within the unit of work.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by repository implementations on writes.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
