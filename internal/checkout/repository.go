// internal/checkout/repository.go
package checkout

import (
	"context"

	"github.com/google/uuid"

	"equiptrack/internal/inventory"
)

// Repository is the external persistence collaborator for the checkout
// lifecycle. Lookup methods return nil without error on a clean miss;
// how rows are stored is entirely the implementation's concern.
type Repository interface {
	FindEmployeeByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindEquipmentByID(ctx context.Context, id uuid.UUID) (*inventory.Equipment, error)

	FindTransactionByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindTransactionsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*Transaction, error)
	InsertTransaction(ctx context.Context, t *Transaction) error
	// SaveTransactionReturn persists the return transition: status,
	// return date, and return condition.
	SaveTransactionReturn(ctx context.Context, t *Transaction) error

	// SaveEquipment persists the equipment's status and condition.
	SaveEquipment(ctx context.Context, equipment *inventory.Equipment) error

	FindOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	InsertOrder(ctx context.Context, order *Order) error
	SaveOrderStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) error
}
