// internal/checkout/handler.go
package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"equiptrack/internal/inventory"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID  uuid.UUID `json:"employee_id"`
		EquipmentID uuid.UUID `json:"equipment_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.service.CheckOut(r.Context(), req.EmployeeID, req.EquipmentID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(t)
}

func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID    uuid.UUID `json:"employee_id"`
		TransactionID uuid.UUID `json:"transaction_id"`
		Condition     string    `json:"condition"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.service.ReturnEquipment(r.Context(), req.EmployeeID, req.TransactionID, inventory.Condition(req.Condition))
	if err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(t)
}

func (h *Handler) HandleOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID  uuid.UUID `json:"employee_id"`
		EquipmentID uuid.UUID `json:"equipment_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	message, err := h.service.OrderEquipment(r.Context(), req.EmployeeID, req.EquipmentID)
	if err != nil {
		writeError(w, err)
		return
	}

	if message == MsgOrderConfirmed {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func (h *Handler) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	message, err := h.service.CancelOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func (h *Handler) HandleViewRecord(w http.ResponseWriter, r *http.Request) {
	employeeID, err := uuid.Parse(chi.URLParam(r, "employeeID"))
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	transactions, err := h.service.ViewRecord(r.Context(), employeeID)
	if err != nil {
		writeError(w, err)
		return
	}
	if transactions == nil {
		transactions = []*Transaction{}
	}

	json.NewEncoder(w).Encode(transactions)
}

// writeError maps the checkout error taxonomy onto HTTP statuses:
// lookup misses are 404, validation failures 400, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmployeeNotFound),
		errors.Is(err, ErrEquipmentNotFound),
		errors.Is(err, ErrTransactionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrEquipmentUnavailable),
		errors.Is(err, ErrMissingCondition),
		errors.Is(err, ErrDuplicateOrder):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
