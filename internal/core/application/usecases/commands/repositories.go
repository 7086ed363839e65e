// Package commands contains the state-changing use cases of the order
// tracker. Every handler validates its command, opens a unit of work,
// applies the domain transition and commits; a failure before Commit leaves
// storage unchanged.
package commands

import (
	"context"

	"scantrack/internal/core/application/snapshot"
	"scantrack/internal/core/ports"
)

// Unit of Work interfaces, narrowed per handler.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	OperatorRepoFactory interface {
		OperatorRepository() ports.OperatorRepository
	}

	// OrderUoW is used by commands touching orders only.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OperatorUoW is used by roster management commands.
	OperatorUoW interface {
		TxManager
		OperatorRepoFactory
	}

	OperatorUoWFactory interface {
		Create() OperatorUoW
	}

	// UoW spans both repositories, e.g. to start an order with an operator
	// read in the same transaction.
	UoW interface {
		TxManager
		OrderRepoFactory
		OperatorRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// SnapshotSource exposes the current in-memory view of storage.
type SnapshotSource interface {
	Current() snapshot.Snapshot
}
