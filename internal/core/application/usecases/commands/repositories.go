// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"pressing/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler declares the narrowest unit of work it needs, so tests mock
// only the repositories the command actually touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PromoCodeRepoFactory provides access to the promo code repository within a transaction.
	PromoCodeRepoFactory interface {
		PromoCodeRepository() ports.PromoCodeRepository
	}

	// FulfillerRepoFactory provides access to the fulfiller repository within a transaction.
	FulfillerRepoFactory interface {
		FulfillerRepository() ports.FulfillerRepository
	}

	// WebhookEventRepoFactory provides access to the webhook idempotency ledger within a transaction.
	WebhookEventRepoFactory interface {
		WebhookEventRepository() ports.WebhookEventRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// The outbox rides along so status-change notifications commit atomically
	// with the order mutation.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ClaimUoW manages transactions for claim operations, which read the
	// claiming fulfiller's record alongside the order.
	ClaimUoW interface {
		TxManager
		OrderRepoFactory
		FulfillerRepoFactory
		OutboxRepoFactory
	}

	// ClaimUoWFactory creates new claim unit of work instances.
	ClaimUoWFactory interface {
		Create() ClaimUoW
	}

	// PromoUoW manages transactions spanning an order and the promo code
	// being redeemed against it.
	PromoUoW interface {
		TxManager
		OrderRepoFactory
		PromoCodeRepoFactory
		OutboxRepoFactory
	}

	// PromoUoWFactory creates new promo unit of work instances.
	PromoUoWFactory interface {
		Create() PromoUoW
	}

	// OutboxUoW manages transactions for outbox dispatch runs.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// ReconcileUoW manages transactions for webhook reconciliation: the
	// idempotency ledger insert and the order mutation succeed or fail as one.
	ReconcileUoW interface {
		TxManager
		OrderRepoFactory
		WebhookEventRepoFactory
		OutboxRepoFactory
	}

	// ReconcileUoWFactory creates new reconcile unit of work instances.
	ReconcileUoWFactory interface {
		Create() ReconcileUoW
	}
)
