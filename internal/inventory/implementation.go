// internal/inventory/implementation.go
package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// service implements the Service interface.
type service struct {
	repo Repository
}

// NewService creates a new inventory service instance.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetEquipment returns the equipment with the given ID, or nil when no
// such equipment exists.
func (s *service) GetEquipment(ctx context.Context, id uuid.UUID) (*Equipment, error) {
	equipment, err := s.repo.FindEquipmentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find equipment: %w", err)
	}
	return equipment, nil
}

// AvailableBySkill lists equipment that is Available and requires the
// given skill, used to filter what an employee may check out.
func (s *service) AvailableBySkill(ctx context.Context, skill Skill) ([]*Equipment, error) {
	items, err := s.repo.FindAvailableEquipmentBySkill(ctx, skill)
	if err != nil {
		return nil, fmt.Errorf("find available equipment: %w", err)
	}
	return items, nil
}

// OrderableBySkill lists equipment an employee with the given skill may
// place an order for.
func (s *service) OrderableBySkill(ctx context.Context, skill Skill) ([]*Equipment, error) {
	items, err := s.repo.FindOrderableEquipmentBySkill(ctx, skill)
	if err != nil {
		return nil, fmt.Errorf("find orderable equipment: %w", err)
	}
	return items, nil
}
