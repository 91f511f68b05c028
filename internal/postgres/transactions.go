// internal/postgres/transactions.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"equiptrack/internal/checkout"
	"equiptrack/internal/inventory"
)

// transactionColumns joins the employee and equipment a transaction
// references so a single query rebuilds the full object graph the
// observers need (employee name, equipment name, due date).
const transactionColumns = `
	SELECT t.id, t.order_id, t.borrow_date, t.expected_return_date, t.return_date,
	       t.status, t.checkout_condition, t.return_condition,
	       e.id, e.name, e.skill,
	       eq.id, eq.name, eq.condition, eq.status, eq.required_skill, eq.created_at, eq.updated_at
	FROM transactions t
	JOIN employees e ON t.employee_id = e.id
	JOIN equipment eq ON t.equipment_id = eq.id
`

// FindTransactionByID returns a transaction with its employee and
// equipment attached, or nil when none exists.
func (r *Repository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*checkout.Transaction, error) {
	ctx, span := r.tracer.Start(ctx, "repository.find_transaction",
		trace.WithAttributes(attribute.String("transaction.id", id.String())),
	)
	defer span.End()

	t, err := scanTransaction(r.db.QueryRowContext(ctx, transactionColumns+` WHERE t.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query transaction: %w", err)
	}
	return t, nil
}

// FindTransactionsByEmployee lists an employee's transactions, oldest
// first.
func (r *Repository) FindTransactionsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*checkout.Transaction, error) {
	ctx, span := r.tracer.Start(ctx, "repository.find_transactions_by_employee",
		trace.WithAttributes(attribute.String("employee.id", employeeID.String())),
	)
	defer span.End()

	rows, err := r.db.QueryContext(ctx, transactionColumns+`
		WHERE t.employee_id = $1
		ORDER BY t.borrow_date ASC, t.id ASC
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*checkout.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	span.SetAttributes(attribute.Int("transactions.count", len(transactions)))
	return transactions, nil
}

// InsertTransaction records a freshly created checkout.
func (r *Repository) InsertTransaction(ctx context.Context, t *checkout.Transaction) error {
	ctx, span := r.tracer.Start(ctx, "repository.insert_transaction",
		trace.WithAttributes(
			attribute.String("transaction.id", t.ID.String()),
			attribute.String("transaction.status", string(t.Status)),
		),
	)
	defer span.End()

	var orderID uuid.NullUUID
	if t.Order != nil {
		orderID = uuid.NullUUID{UUID: t.Order.ID, Valid: true}
	}
	var checkoutCondition sql.NullString
	if t.CheckoutCondition != nil {
		checkoutCondition = sql.NullString{String: string(*t.CheckoutCondition), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, employee_id, equipment_id, order_id, borrow_date,
		                          expected_return_date, status, checkout_condition)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.ID, t.Employee.ID, t.Equipment.ID, orderID, t.BorrowDate, t.ExpectedReturnDate,
		string(t.Status), checkoutCondition)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// SaveTransactionReturn persists the return transition: status, return
// date, and return condition.
func (r *Repository) SaveTransactionReturn(ctx context.Context, t *checkout.Transaction) error {
	ctx, span := r.tracer.Start(ctx, "repository.save_transaction_return",
		trace.WithAttributes(attribute.String("transaction.id", t.ID.String())),
	)
	defer span.End()

	var returnDate sql.NullTime
	if t.ReturnDate != nil {
		returnDate = sql.NullTime{Time: *t.ReturnDate, Valid: true}
	}
	var returnCondition sql.NullString
	if t.ReturnCondition != nil {
		returnCondition = sql.NullString{String: string(*t.ReturnCondition), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET status = $1, return_date = $2, return_condition = $3
		WHERE id = $4
	`, string(t.Status), returnDate, returnCondition, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction return: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction return: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update transaction %s: no such row", t.ID)
	}
	return nil
}

func scanTransaction(row rowScanner) (*checkout.Transaction, error) {
	t := &checkout.Transaction{}
	employee := &checkout.Employee{}
	equipment := &inventory.Equipment{}

	var orderID uuid.NullUUID
	var returnDate sql.NullTime
	var status, empSkill, eqCondition, eqStatus, eqSkill string
	var checkoutCondition, returnCondition sql.NullString

	err := row.Scan(
		&t.ID, &orderID, &t.BorrowDate, &t.ExpectedReturnDate, &returnDate,
		&status, &checkoutCondition, &returnCondition,
		&employee.ID, &employee.Name, &empSkill,
		&equipment.ID, &equipment.Name, &eqCondition, &eqStatus, &eqSkill,
		&equipment.CreatedAt, &equipment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if t.Status, err = checkout.ParseTransactionStatus(status); err != nil {
		return nil, err
	}
	if employee.Skill, err = inventory.ParseSkill(empSkill); err != nil {
		return nil, err
	}
	if equipment.Condition, err = inventory.ParseCondition(eqCondition); err != nil {
		return nil, err
	}
	if equipment.Status, err = inventory.ParseStatus(eqStatus); err != nil {
		return nil, err
	}
	if equipment.RequiredSkill, err = inventory.ParseSkill(eqSkill); err != nil {
		return nil, err
	}

	if returnDate.Valid {
		d := returnDate.Time
		t.ReturnDate = &d
	}
	if checkoutCondition.Valid {
		c, err := inventory.ParseCondition(checkoutCondition.String)
		if err != nil {
			return nil, err
		}
		t.CheckoutCondition = &c
	}
	if returnCondition.Valid {
		c, err := inventory.ParseCondition(returnCondition.String)
		if err != nil {
			return nil, err
		}
		t.ReturnCondition = &c
	}
	if orderID.Valid {
		t.Order = &checkout.Order{ID: orderID.UUID}
	}

	t.Employee = employee
	t.Equipment = equipment
	return t, nil
}
