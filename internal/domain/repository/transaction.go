package repository

import "context"

// RepositoryFactory hands out repository instances bound to one transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	RefreshTokenRepo() RefreshTokenRepository
	OrderRepo() OrderRepository
}

// TransactionManager runs a unit of work atomically. The callback receives a
// factory whose repositories all share the same transaction; returning an
// error rolls everything back.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
