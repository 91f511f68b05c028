// internal/checkout/service.go
package checkout

import (
	"context"

	"github.com/google/uuid"

	"equiptrack/internal/inventory"
)

// Service defines the interface for the checkout service. Operations
// that validate business rules (ordering, cancelling) report their
// outcome as a plain-language message; lifecycle operations return the
// updated transaction.
type Service interface {
	CheckOut(ctx context.Context, employeeID, equipmentID uuid.UUID) (*Transaction, error)
	ReturnEquipment(ctx context.Context, employeeID, transactionID uuid.UUID, condition inventory.Condition) (*Transaction, error)
	OrderEquipment(ctx context.Context, employeeID, equipmentID uuid.UUID) (string, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) (string, error)
	ViewRecord(ctx context.Context, employeeID uuid.UUID) ([]*Transaction, error)
}
