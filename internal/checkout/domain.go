// internal/checkout/domain.go
package checkout

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"equiptrack/internal/inventory"
)

// LoanPeriodDays is how long an employee may keep a piece of equipment
// before it is due back: 7 weeks from the borrow date.
const LoanPeriodDays = 49

// TransactionStatus describes where a loan sits in its lifecycle.
// Borrowed is the initial state; Returned and Cancelled are terminal.
// Late is never stored: it is derived from the due date on demand.
type TransactionStatus string

const (
	StatusBorrowed  TransactionStatus = "Borrowed"
	StatusReturned  TransactionStatus = "Returned"
	StatusLate      TransactionStatus = "Late"
	StatusCancelled TransactionStatus = "Cancelled"
)

// TransactionStatuses lists every recognized transaction status.
var TransactionStatuses = []TransactionStatus{StatusBorrowed, StatusReturned, StatusLate, StatusCancelled}

// ParseTransactionStatus converts a case-insensitive string to the
// corresponding TransactionStatus.
func ParseTransactionStatus(value string) (TransactionStatus, error) {
	for _, s := range TransactionStatuses {
		if strings.EqualFold(string(s), value) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown transaction status: %q", value)
}

// OrderStatus describes the state of an equipment order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every recognized order status.
var OrderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderCancelled}

// ParseOrderStatus converts a case-insensitive string to the
// corresponding OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, s := range OrderStatuses {
		if strings.EqualFold(string(s), value) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown order status: %q", value)
}

// Observer reacts to a transaction's state changes. Observers are
// invoked synchronously, on the call stack of the mutation.
type Observer interface {
	Update(t *Transaction)
}

// Employee can check out and return equipment and place or cancel
// orders. The employee is the sole owner of its transaction list.
type Employee struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Skill        inventory.Skill `json:"skill"`
	Transactions []*Transaction  `json:"-"`
}

// Order reserves a piece of equipment for later pickup. It references
// the employee and equipment without owning them, and optionally the
// transaction that fulfilled it.
type Order struct {
	ID          uuid.UUID            `json:"id"`
	Employee    *Employee            `json:"employee,omitempty"`
	Equipment   *inventory.Equipment `json:"equipment,omitempty"`
	OrderDate   time.Time            `json:"order_date"`
	Status      OrderStatus          `json:"status"`
	PickUpDate  *time.Time           `json:"pickup_date,omitempty"`
	Transaction *Transaction         `json:"-"`
}

// Transaction records one equipment loan from checkout through return
// or cancellation. It is created only by Employee.CheckOut and never
// deleted, only transitioned.
//
// Transaction is also the subject of the observer mechanism: mutating
// its status or return date notifies every registered observer, in
// registration order, before the mutating call returns. A single mutex
// makes each mutation plus its notification one critical section, so
// observers always see the fully updated transaction.
type Transaction struct {
	ID                 uuid.UUID            `json:"id"`
	Employee           *Employee            `json:"employee,omitempty"`
	Equipment          *inventory.Equipment `json:"equipment,omitempty"`
	Order              *Order               `json:"order,omitempty"`
	OrderDate          *time.Time           `json:"order_date,omitempty"`
	BorrowDate         time.Time            `json:"borrow_date"`
	ExpectedReturnDate time.Time            `json:"expected_return_date"`
	ReturnDate         *time.Time           `json:"return_date,omitempty"`
	Status             TransactionStatus    `json:"status"`
	CheckoutCondition  *inventory.Condition `json:"checkout_condition,omitempty"`
	ReturnCondition    *inventory.Condition `json:"return_condition,omitempty"`

	mu        sync.Mutex
	obsMu     sync.Mutex
	observers []Observer
}

// RegisterObserver adds an observer to the transaction. Registering the
// same observer twice is a no-op.
func (t *Transaction) RegisterObserver(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for _, existing := range t.observers {
		if existing == o {
			return
		}
	}
	t.observers = append(t.observers, o)
}

// RemoveObserver removes an observer from the transaction.
func (t *Transaction) RemoveObserver(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, existing := range t.observers {
		if existing == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// NotifyObservers invokes Update on every registered observer,
// synchronously and in registration order. Iteration runs over a
// snapshot of the list, so an observer removing itself mid-notification
// cannot corrupt the walk.
func (t *Transaction) NotifyObservers() {
	t.obsMu.Lock()
	snapshot := make([]Observer, len(t.observers))
	copy(snapshot, t.observers)
	t.obsMu.Unlock()

	for _, o := range snapshot {
		o.Update(t)
	}
}

// IsOverdue reports whether a still-borrowed transaction has passed its
// expected return date as of the given day.
func (t *Transaction) IsOverdue(today time.Time) bool {
	return t.Status == StatusBorrowed && DateOnly(today).After(DateOnly(t.ExpectedReturnDate))
}

// DisplayStatus returns the status to show for the given day: Late for
// an overdue Borrowed transaction, the stored status otherwise.
func (t *Transaction) DisplayStatus(today time.Time) TransactionStatus {
	if t.IsOverdue(today) {
		return StatusLate
	}
	return t.Status
}

// markReturned applies the full return transition in one critical
// section: return date, status, return condition, and the equipment's
// condition and status are all updated before observers fire.
func (t *Transaction) markReturned(today time.Time, condition inventory.Condition) {
	t.mu.Lock()
	defer t.mu.Unlock()

	returned := DateOnly(today)
	t.ReturnDate = &returned
	t.Status = StatusReturned
	t.ReturnCondition = &condition
	if t.Equipment != nil {
		t.Equipment.Condition = condition
		t.Equipment.Status = inventory.StatusAvailable
	}

	t.NotifyObservers()
}

// reopenReturn undoes markReturned after a failed persistence call,
// restoring the transaction and equipment to their pre-return state.
// No notification fires: observers only ever see committed transitions
// going forward.
func (t *Transaction) reopenReturn(prevCondition inventory.Condition, prevStatus inventory.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ReturnDate = nil
	t.Status = StatusBorrowed
	t.ReturnCondition = nil
	if t.Equipment != nil {
		t.Equipment.Condition = prevCondition
		t.Equipment.Status = prevStatus
	}
}

// CheckOut creates a Borrowed transaction for the given equipment,
// snapshots the equipment's condition, flips the equipment to Loaned,
// and appends the transaction to the employee's list.
//
// Availability is enforced here: only Available equipment, or Ordered
// equipment being picked up against a confirmed order, may be checked
// out. Loaned or Lost equipment is rejected.
func (e *Employee) CheckOut(equipment *inventory.Equipment, today time.Time) (*Transaction, error) {
	if equipment == nil {
		return nil, ErrEquipmentNotFound
	}
	if equipment.Status != inventory.StatusAvailable && equipment.Status != inventory.StatusOrdered {
		return nil, ErrEquipmentUnavailable
	}

	borrow := DateOnly(today)
	snapshot := equipment.Condition

	t := &Transaction{
		ID:                 uuid.New(),
		Employee:           e,
		Equipment:          equipment,
		BorrowDate:         borrow,
		ExpectedReturnDate: borrow.AddDate(0, 0, LoanPeriodDays),
		Status:             StatusBorrowed,
		CheckoutCondition:  &snapshot,
	}

	equipment.Status = inventory.StatusLoaned
	e.Transactions = append(e.Transactions, t)
	return t, nil
}

// ReturnEquipment transitions an owned Borrowed transaction to
// Returned. It returns nil, with no state mutated, when no Borrowed
// transaction matches the ID or the condition is empty.
func (e *Employee) ReturnEquipment(transactionID uuid.UUID, condition inventory.Condition, today time.Time) *Transaction {
	if condition == "" {
		return nil
	}
	for _, t := range e.Transactions {
		if t.ID == transactionID && t.Status == StatusBorrowed {
			t.markReturned(today, condition)
			return t
		}
	}
	return nil
}

// removeTransaction detaches a transaction from the employee's list,
// used to roll back a checkout whose persistence failed.
func (e *Employee) removeTransaction(t *Transaction) {
	for i, existing := range e.Transactions {
		if existing == t {
			e.Transactions = append(e.Transactions[:i], e.Transactions[i+1:]...)
			return
		}
	}
}

// DateOnly truncates a timestamp to its civil date in UTC. All loan
// dates are compared at day granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
