// internal/postgres/orders.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"equiptrack/internal/checkout"
	"equiptrack/internal/inventory"
)

// FindOrderByID returns an order with its employee and equipment
// attached, or nil when none exists.
func (r *Repository) FindOrderByID(ctx context.Context, id uuid.UUID) (*checkout.Order, error) {
	ctx, span := r.tracer.Start(ctx, "repository.find_order",
		trace.WithAttributes(attribute.String("order.id", id.String())),
	)
	defer span.End()

	order := &checkout.Order{}
	employee := &checkout.Employee{}
	equipment := &inventory.Equipment{}
	var orderStatus, empSkill, eqCondition, eqStatus, eqSkill string
	var pickUpDate sql.NullTime

	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.order_date, o.status, o.pickup_date,
		       e.id, e.name, e.skill,
		       eq.id, eq.name, eq.condition, eq.status, eq.required_skill, eq.created_at, eq.updated_at
		FROM orders o
		JOIN employees e ON o.employee_id = e.id
		JOIN equipment eq ON o.equipment_id = eq.id
		WHERE o.id = $1
	`, id).Scan(
		&order.ID, &order.OrderDate, &orderStatus, &pickUpDate,
		&employee.ID, &employee.Name, &empSkill,
		&equipment.ID, &equipment.Name, &eqCondition, &eqStatus, &eqSkill,
		&equipment.CreatedAt, &equipment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	if order.Status, err = checkout.ParseOrderStatus(orderStatus); err != nil {
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
	if pickUpDate.Valid {
		d := pickUpDate.Time
		order.PickUpDate = &d
	}

	order.Employee = employee
	order.Equipment = equipment
	return order, nil
}

// InsertOrder records a new order. A second confirmed order for the
// same equipment violates the partial unique index and surfaces as
// checkout.ErrDuplicateOrder.
func (r *Repository) InsertOrder(ctx context.Context, order *checkout.Order) error {
	ctx, span := r.tracer.Start(ctx, "repository.insert_order",
		trace.WithAttributes(
			attribute.String("order.id", order.ID.String()),
			attribute.String("order.status", string(order.Status)),
		),
	)
	defer span.End()

	var pickUpDate sql.NullTime
	if order.PickUpDate != nil {
		pickUpDate = sql.NullTime{Time: *order.PickUpDate, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, employee_id, equipment_id, order_date, status, pickup_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, order.ID, order.Employee.ID, order.Equipment.ID, order.OrderDate,
		string(order.Status), pickUpDate)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return checkout.ErrDuplicateOrder
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// SaveOrderStatus persists a status change for an order.
func (r *Repository) SaveOrderStatus(ctx context.Context, orderID uuid.UUID, status checkout.OrderStatus) error {
	ctx, span := r.tracer.Start(ctx, "repository.save_order_status",
		trace.WithAttributes(
			attribute.String("order.id", orderID.String()),
			attribute.String("order.status", string(status)),
		),
	)
	defer span.End()

	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2
	`, string(status), orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update order %s: no such row", orderID)
	}
	return nil
}
