// internal/reminders/implementation.go
package reminders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"equiptrack/internal/checkout"
)

// Notifier observes transactions and turns every state change into a
// stored reminder. It holds no per-transaction state: each update
// re-derives the employee and reminder date from the incoming
// transaction, so one notifier can be registered on every transaction.
type Notifier struct {
	store Store
	now   func() time.Time
}

// NewNotifier creates a reminder notifier backed by the given store.
func NewNotifier(store Store) *Notifier {
	return &Notifier{store: store, now: time.Now}
}

// Update implements checkout.Observer. It regenerates the reminder for
// the transaction and upserts it. Store failures are logged and
// swallowed: the notification loop must keep running for the remaining
// observers.
func (n *Notifier) Update(t *checkout.Transaction) {
	if t == nil || t.Employee == nil {
		log.Printf("reminder update skipped: transaction or employee is missing")
		return
	}

	r := FromTransaction(t, n.now())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := n.store.SaveReminder(ctx, r); err != nil {
		log.Printf("failed to save reminder for transaction %s: %v", t.ID, err)
	}
}

// service implements the Service interface.
type service struct {
	store        Store
	transactions checkout.Repository
	now          func() time.Time
}

// NewService creates a new reminders service instance.
func NewService(store Store, transactions checkout.Repository) Service {
	return &service{store: store, transactions: transactions, now: time.Now}
}

// LatestReminder returns the stored reminder for a transaction.
func (s *service) LatestReminder(ctx context.Context, transactionID uuid.UUID) (*Reminder, error) {
	r, err := s.store.FindReminderByTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("find reminder: %w", err)
	}
	return r, nil
}

// PreviewReminder regenerates a reminder from the transaction's current
// state without persisting it.
func (s *service) PreviewReminder(ctx context.Context, transactionID uuid.UUID) (*Reminder, error) {
	t, err := s.transactions.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	if t == nil {
		return nil, checkout.ErrTransactionNotFound
	}
	return FromTransaction(t, s.now()), nil
}
