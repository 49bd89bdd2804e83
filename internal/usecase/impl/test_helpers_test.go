package impl

import (
	"context"
	"io"
	"log/slog"

	"coderr/internal/domain/repository"
)

// newDiscardLogger returns a logger that produces no output, for tests.
func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// passthroughTx returns an Execute implementation that runs the transaction
// closure against the given factory and propagates its error, mimicking a
// committed or rolled-back transaction without a database.
func passthroughTx(factory repository.RepositoryFactory) func(context.Context, func(repository.RepositoryFactory) error) error {
	return func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
		return fn(factory)
	}
}
