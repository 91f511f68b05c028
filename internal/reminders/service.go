// internal/reminders/service.go
package reminders

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence collaborator for reminders. SaveReminder is
// an upsert keyed by transaction ID: a transaction has at most one
// stored reminder, always the latest.
type Store interface {
	SaveReminder(ctx context.Context, r *Reminder) error
	FindReminderByTransaction(ctx context.Context, transactionID uuid.UUID) (*Reminder, error)
}

// Service defines the interface for the reminders service.
type Service interface {
	// LatestReminder returns the stored reminder for a transaction, or
	// nil when none has been generated yet.
	LatestReminder(ctx context.Context, transactionID uuid.UUID) (*Reminder, error)
	// PreviewReminder generates a reminder for a transaction as of
	// today without storing it.
	PreviewReminder(ctx context.Context, transactionID uuid.UUID) (*Reminder, error)
}
