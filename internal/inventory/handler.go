// internal/inventory/handler.go
package inventory

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleGetEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "equipmentID"))
	if err != nil {
		http.Error(w, "invalid equipment id", http.StatusBadRequest)
		return
	}

	equipment, err := h.service.GetEquipment(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if equipment == nil {
		http.Error(w, "equipment not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(equipment)
}

func (h *Handler) HandleAvailableBySkill(w http.ResponseWriter, r *http.Request) {
	h.listBySkill(w, r, h.service.AvailableBySkill)
}

func (h *Handler) HandleOrderableBySkill(w http.ResponseWriter, r *http.Request) {
	h.listBySkill(w, r, h.service.OrderableBySkill)
}

func (h *Handler) listBySkill(w http.ResponseWriter, r *http.Request, list func(context.Context, Skill) ([]*Equipment, error)) {
	skill, err := ParseSkill(r.URL.Query().Get("skill"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := list(r.Context(), skill)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []*Equipment{}
	}

	json.NewEncoder(w).Encode(items)
}
