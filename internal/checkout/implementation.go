// internal/checkout/implementation.go
package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"equiptrack/internal/inventory"
)

// Outcome messages surfaced to callers instead of errors; call sites
// originally showed these verbatim in the UI.
const (
	MsgEquipmentNotAvailable = "Equipment is not available."
	MsgNotQualified          = "You are not qualified to order this equipment."
	MsgOrderConfirmed        = "Order confirmed."
	MsgOrderFailed           = "Failed to place order."
	MsgOrderNotFound         = "Order not found"
	MsgOrderAlreadyCancelled = "Order is already cancelled"
	MsgOrderCancelled        = "Order successfully cancelled"
	MsgCancelFailed          = "Failed to cancel order"
)

// service implements the Service interface.
type service struct {
	repo      Repository
	observers []Observer
	limiter   *rate.Limiter
	now       func() time.Time
}

// NewService creates a new checkout service instance. The given
// observers are registered on every transaction the service creates or
// loads, so reminder generation follows each state change.
func NewService(repo Repository, observers ...Observer) Service {
	return &service{
		repo:      repo,
		observers: observers,
		limiter:   rate.NewLimiter(rate.Every(1*time.Minute), 5), // 5 orders per minute
		now:       time.Now,
	}
}

func (s *service) today() time.Time {
	return DateOnly(s.now())
}

// loadEmployee fetches the employee with their transaction history and
// attaches the service's observers to every loaded transaction.
func (s *service) loadEmployee(ctx context.Context, employeeID uuid.UUID) (*Employee, error) {
	employee, err := s.repo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	transactions, err := s.repo.FindTransactionsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	employee.Transactions = transactions

	for _, t := range transactions {
		t.Employee = employee
		s.attach(t)
	}
	return employee, nil
}

func (s *service) attach(t *Transaction) {
	for _, o := range s.observers {
		t.RegisterObserver(o)
	}
}

// CheckOut creates a Borrowed transaction for the employee and flips
// the equipment to Loaned. The in-memory transition is rolled back if
// persistence fails.
func (s *service) CheckOut(ctx context.Context, employeeID, equipmentID uuid.UUID) (*Transaction, error) {
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	equipment, err := s.repo.FindEquipmentByID(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("find equipment: %w", err)
	}
	if equipment == nil {
		return nil, ErrEquipmentNotFound
	}

	prevStatus := equipment.Status
	t, err := employee.CheckOut(equipment, s.today())
	if err != nil {
		return nil, err
	}
	s.attach(t)

	rollback := func() {
		employee.removeTransaction(t)
		equipment.Status = prevStatus
	}

	if err := s.repo.InsertTransaction(ctx, t); err != nil {
		rollback()
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	if err := s.repo.SaveEquipment(ctx, equipment); err != nil {
		rollback()
		return nil, fmt.Errorf("save equipment: %w", err)
	}

	return t, nil
}

// ReturnEquipment transitions a Borrowed transaction to Returned and
// makes the equipment Available again in the recorded condition. When
// persistence fails the in-memory transition is rolled back and the
// failure surfaced.
func (s *service) ReturnEquipment(ctx context.Context, employeeID, transactionID uuid.UUID, condition inventory.Condition) (*Transaction, error) {
	if condition == "" {
		return nil, ErrMissingCondition
	}
	condition, err := inventory.ParseCondition(string(condition))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingCondition, err)
	}

	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	var prevCondition inventory.Condition
	var prevStatus inventory.Status
	for _, t := range employee.Transactions {
		if t.ID == transactionID && t.Equipment != nil {
			prevCondition = t.Equipment.Condition
			prevStatus = t.Equipment.Status
		}
	}

	t := employee.ReturnEquipment(transactionID, condition, s.today())
	if t == nil {
		return nil, ErrTransactionNotFound
	}

	if err := s.repo.SaveEquipment(ctx, t.Equipment); err != nil {
		t.reopenReturn(prevCondition, prevStatus)
		return nil, fmt.Errorf("save equipment: %w", err)
	}
	if err := s.repo.SaveTransactionReturn(ctx, t); err != nil {
		t.reopenReturn(prevCondition, prevStatus)
		return nil, fmt.Errorf("save transaction return: %w", err)
	}

	return t, nil
}

// OrderEquipment validates that the equipment is Available and the
// employee's skill matches the required one, then records a Confirmed
// order and marks the equipment Ordered.
func (s *service) OrderEquipment(ctx context.Context, employeeID, equipmentID uuid.UUID) (string, error) {
	if !s.limiter.Allow() {
		return "", fmt.Errorf("rate limit exceeded")
	}

	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return "", err
	}

	equipment, err := s.repo.FindEquipmentByID(ctx, equipmentID)
	if err != nil {
		return "", fmt.Errorf("find equipment: %w", err)
	}
	if equipment == nil {
		return "", ErrEquipmentNotFound
	}

	if equipment.Status != inventory.StatusAvailable {
		return MsgEquipmentNotAvailable, nil
	}
	if employee.Skill != equipment.RequiredSkill {
		return MsgNotQualified, nil
	}

	order := &Order{
		ID:        uuid.New(),
		Employee:  employee,
		Equipment: equipment,
		OrderDate: s.today(),
		Status:    OrderConfirmed,
	}

	if err := s.repo.InsertOrder(ctx, order); err != nil {
		log.Printf("failed to place order for equipment %s: %v", equipmentID, err)
		return MsgOrderFailed, nil
	}

	equipment.Status = inventory.StatusOrdered
	if err := s.repo.SaveEquipment(ctx, equipment); err != nil {
		log.Printf("failed to mark equipment %s as ordered: %v", equipmentID, err)
		equipment.Status = inventory.StatusAvailable
		if err := s.repo.SaveOrderStatus(ctx, order.ID, OrderCancelled); err != nil {
			log.Printf("failed to compensate order %s: %v", order.ID, err)
		}
		return MsgOrderFailed, nil
	}

	return MsgOrderConfirmed, nil
}

// CancelOrder sets an order to Cancelled and releases its equipment
// back to Available. Cancelling twice reports "already cancelled" on
// the second call; the pre-check keeps the operation from silently
// becoming a no-op.
func (s *service) CancelOrder(ctx context.Context, orderID uuid.UUID) (string, error) {
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return MsgOrderNotFound, nil
	}
	if order.Status == OrderCancelled {
		return MsgOrderAlreadyCancelled, nil
	}

	prevStatus := order.Status
	if err := s.repo.SaveOrderStatus(ctx, orderID, OrderCancelled); err != nil {
		log.Printf("failed to cancel order %s: %v", orderID, err)
		return MsgCancelFailed, nil
	}
	order.Status = OrderCancelled

	if order.Equipment != nil {
		prevEquipmentStatus := order.Equipment.Status
		order.Equipment.Status = inventory.StatusAvailable
		if err := s.repo.SaveEquipment(ctx, order.Equipment); err != nil {
			// Compensate: put the order and equipment back in their previous
			// state so the equipment is not released while the order stands.
			log.Printf("failed to release equipment for order %s, compensating: %v", orderID, err)
			order.Status = prevStatus
			order.Equipment.Status = prevEquipmentStatus
			if err := s.repo.SaveOrderStatus(ctx, orderID, prevStatus); err != nil {
				log.Printf("failed to compensate order %s: %v", orderID, err)
			}
			return MsgCancelFailed, nil
		}
	}

	return MsgOrderCancelled, nil
}

// ViewRecord lists the employee's transaction history.
func (s *service) ViewRecord(ctx context.Context, employeeID uuid.UUID) ([]*Transaction, error) {
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return employee.Transactions, nil
}
