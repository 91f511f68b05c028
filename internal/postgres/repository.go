// internal/postgres/repository.go
//
// Repository is the single persistence collaborator for the service,
// backed by PostgreSQL. It satisfies checkout.Repository,
// inventory.Repository, and reminders.Store.
package postgres

import (
	"database/sql"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Repository provides the SQL read model over database/sql.
type Repository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewRepository creates a repository on top of an open connection pool.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:     db,
		tracer: otel.Tracer("equiptrack/postgres"),
	}
}
