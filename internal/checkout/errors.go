// internal/checkout/errors.go
package checkout

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEquipmentNotFound    = errors.New("equipment not found")
	ErrTransactionNotFound  = errors.New("no active transaction found for this equipment")
	ErrEquipmentUnavailable = errors.New("equipment is not available for checkout")
	ErrMissingCondition     = errors.New("return condition is required")
	ErrDuplicateOrder       = errors.New("equipment already has a confirmed order")
)
