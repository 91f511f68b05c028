// internal/reminders/domain.go
package reminders

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"equiptrack/internal/checkout"
)

// Reminder is a derived, regenerable notice about a transaction's due
// status. It is always recomputable from its transaction and is never
// independently mutated: each notification produces a fresh record that
// replaces the previous one for the same transaction.
type Reminder struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	EmployeeID    uuid.UUID `json:"employee_id"`
	ReminderDate  time.Time `json:"reminder_date"`
	Message       string    `json:"message"`
}

// ReturnSoonWindowDays is how many days before the due date the
// "should return" nudge starts. The window is inclusive: an item due
// exactly two days from now is already in it.
const ReturnSoonWindowDays = 2

const dateLayout = "2006-01-02"

// GenerateMessage derives the reminder text for a transaction as of the
// given day. It never fails: missing data produces a descriptive error
// message instead, so the reminder path always has something to report.
//
// Three cases, evaluated in order:
//  1. past the due date: overdue
//  2. within two days of the due date (inclusive): should return
//  3. otherwise: no action needed, with the days left
func GenerateMessage(t *checkout.Transaction, today time.Time) string {
	if t == nil || t.Employee == nil {
		return "Reminder Error: Transaction or Employee is missing."
	}
	if t.ExpectedReturnDate.IsZero() {
		return "Reminder Error: Expected return date is missing."
	}
	if t.Equipment == nil {
		return "Reminder Error: Equipment data is missing."
	}

	due := checkout.DateOnly(t.ExpectedReturnDate)
	day := checkout.DateOnly(today)
	daysLeft := int(due.Sub(day).Hours() / 24)

	switch {
	case day.After(due):
		return fmt.Sprintf("%s has an overdue item: %s. Due on: %s",
			t.Employee.Name, t.Equipment.Name, due.Format(dateLayout))
	case !day.Before(due.AddDate(0, 0, -ReturnSoonWindowDays)):
		return fmt.Sprintf("%s should return: %s by %s",
			t.Employee.Name, t.Equipment.Name, due.Format(dateLayout))
	default:
		return fmt.Sprintf("No action needed for: %s. Time left to return: %d days.",
			t.Equipment.Name, daysLeft)
	}
}

// FromTransaction builds a fresh reminder record for a transaction as
// of the given day.
func FromTransaction(t *checkout.Transaction, today time.Time) *Reminder {
	r := &Reminder{
		ID:           uuid.New(),
		ReminderDate: checkout.DateOnly(today),
		Message:      GenerateMessage(t, today),
	}
	if t != nil {
		r.TransactionID = t.ID
		if t.Employee != nil {
			r.EmployeeID = t.Employee.ID
		}
	}
	return r
}
