package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command or per storage attempt.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Client code manages the
// transaction lifecycle explicitly: Begin, repository calls, Commit, and a
// deferred Rollback that is a no-op after Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// ShipmentRepository is bound to the transaction started by Begin.
	ShipmentRepository() ShipmentRepository
}
