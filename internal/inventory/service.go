// internal/inventory/service.go
package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence collaborator for equipment records.
type Repository interface {
	FindEquipmentByID(ctx context.Context, id uuid.UUID) (*Equipment, error)
	FindAvailableEquipmentBySkill(ctx context.Context, skill Skill) ([]*Equipment, error)
	FindOrderableEquipmentBySkill(ctx context.Context, skill Skill) ([]*Equipment, error)
	SaveEquipment(ctx context.Context, equipment *Equipment) error
}

// Service defines the interface for the inventory service.
type Service interface {
	GetEquipment(ctx context.Context, id uuid.UUID) (*Equipment, error)
	AvailableBySkill(ctx context.Context, skill Skill) ([]*Equipment, error)
	OrderableBySkill(ctx context.Context, skill Skill) ([]*Equipment, error)
}
