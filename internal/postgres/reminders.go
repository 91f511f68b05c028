// internal/postgres/reminders.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"equiptrack/internal/reminders"
)

// SaveReminder upserts the reminder for a transaction: each transaction
// keeps exactly one stored reminder, always the latest generated.
func (r *Repository) SaveReminder(ctx context.Context, reminder *reminders.Reminder) error {
	ctx, span := r.tracer.Start(ctx, "repository.save_reminder",
		trace.WithAttributes(
			attribute.String("reminder.transaction_id", reminder.TransactionID.String()),
		),
	)
	defer span.End()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (id, transaction_id, employee_id, reminder_date, message)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (transaction_id) DO UPDATE
		SET employee_id = EXCLUDED.employee_id,
		    reminder_date = EXCLUDED.reminder_date,
		    message = EXCLUDED.message
	`, reminder.ID, reminder.TransactionID, reminder.EmployeeID,
		reminder.ReminderDate, reminder.Message)
	if err != nil {
		return fmt.Errorf("upsert reminder: %w", err)
	}
	return nil
}

// FindReminderByTransaction returns the stored reminder for a
// transaction, or nil when none has been generated.
func (r *Repository) FindReminderByTransaction(ctx context.Context, transactionID uuid.UUID) (*reminders.Reminder, error) {
	ctx, span := r.tracer.Start(ctx, "repository.find_reminder",
		trace.WithAttributes(attribute.String("reminder.transaction_id", transactionID.String())),
	)
	defer span.End()

	reminder := &reminders.Reminder{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, transaction_id, employee_id, reminder_date, message
		FROM reminders WHERE transaction_id = $1
	`, transactionID).Scan(&reminder.ID, &reminder.TransactionID, &reminder.EmployeeID,
		&reminder.ReminderDate, &reminder.Message)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query reminder: %w", err)
	}
	return reminder, nil
}
