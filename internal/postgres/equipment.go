// internal/postgres/equipment.go
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

// FindEmployeeByID returns an employee, or nil when none exists.
func (r *Repository) FindEmployeeByID(ctx context.Context, id uuid.UUID) (*checkout.Employee, error) {
	ctx, span := r.tracer.Start(ctx, "repository.find_employee",
		trace.WithAttributes(attribute.String("employee.id", id.String())),
	)
	defer span.End()

	employee := &checkout.Employee{}
	var skill string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, skill FROM employees WHERE id = $1
	`, id).Scan(&employee.ID, &employee.Name, &skill)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query employee: %w", err)
	}

	employee.Skill, err = inventory.ParseSkill(skill)
	if err != nil {
		return nil, fmt.Errorf("employee %s: %w", id, err)
	}
	return employee, nil
}

// FindEquipmentByID returns a piece of equipment, or nil when none exists.
func (r *Repository) FindEquipmentByID(ctx context.Context, id uuid.UUID) (*inventory.Equipment, error) {
	ctx, span := r.tracer.Start(ctx, "repository.find_equipment",
		trace.WithAttributes(attribute.String("equipment.id", id.String())),
	)
	defer span.End()

	equipment, err := scanEquipment(r.db.QueryRowContext(ctx, `
		SELECT id, name, condition, status, required_skill, created_at, updated_at
		FROM equipment WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query equipment: %w", err)
	}
	return equipment, nil
}

// FindAvailableEquipmentBySkill lists Available equipment requiring the
// given skill.
func (r *Repository) FindAvailableEquipmentBySkill(ctx context.Context, skill inventory.Skill) ([]*inventory.Equipment, error) {
	return r.listEquipment(ctx, "repository.find_available_equipment", `
		SELECT id, name, condition, status, required_skill, created_at, updated_at
		FROM equipment
		WHERE status = $1 AND required_skill = $2
		ORDER BY name ASC
	`, string(inventory.StatusAvailable), string(skill))
}

// FindOrderableEquipmentBySkill lists equipment an employee with the
// given skill may order. Only Available equipment can be ordered.
func (r *Repository) FindOrderableEquipmentBySkill(ctx context.Context, skill inventory.Skill) ([]*inventory.Equipment, error) {
	return r.listEquipment(ctx, "repository.find_orderable_equipment", `
		SELECT e.id, e.name, e.condition, e.status, e.required_skill, e.created_at, e.updated_at
		FROM equipment e
		WHERE e.status = $1 AND e.required_skill = $2
		AND NOT EXISTS (
			SELECT 1 FROM orders o
			WHERE o.equipment_id = e.id AND o.status = 'Confirmed'
		)
		ORDER BY e.name ASC
	`, string(inventory.StatusAvailable), string(skill))
}

func (r *Repository) listEquipment(ctx context.Context, spanName, query string, args ...interface{}) ([]*inventory.Equipment, error) {
	ctx, span := r.tracer.Start(ctx, spanName)
	defer span.End()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query equipment: %w", err)
	}
	defer rows.Close()

	var items []*inventory.Equipment
	for rows.Next() {
		equipment, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		items = append(items, equipment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equipment: %w", err)
	}

	span.SetAttributes(attribute.Int("equipment.count", len(items)))
	return items, nil
}

// SaveEquipment persists the equipment's current status and condition.
func (r *Repository) SaveEquipment(ctx context.Context, equipment *inventory.Equipment) error {
	ctx, span := r.tracer.Start(ctx, "repository.save_equipment",
		trace.WithAttributes(
			attribute.String("equipment.id", equipment.ID.String()),
			attribute.String("equipment.status", string(equipment.Status)),
		),
	)
	defer span.End()

	result, err := r.db.ExecContext(ctx, `
		UPDATE equipment
		SET condition = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`, string(equipment.Condition), string(equipment.Status), equipment.ID)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update equipment %s: no such row", equipment.ID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEquipment(row rowScanner) (*inventory.Equipment, error) {
	equipment := &inventory.Equipment{}
	var condition, status, skill string
	if err := row.Scan(&equipment.ID, &equipment.Name, &condition, &status, &skill,
		&equipment.CreatedAt, &equipment.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if equipment.Condition, err = inventory.ParseCondition(condition); err != nil {
		return nil, err
	}
	if equipment.Status, err = inventory.ParseStatus(status); err != nil {
		return nil, err
	}
	if equipment.RequiredSkill, err = inventory.ParseSkill(skill); err != nil {
		return nil, err
	}
	return equipment, nil
}
