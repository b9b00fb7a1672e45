package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"servifix-backend/internal/domain"
	"servifix-backend/internal/server/authctx"
	"servifix-backend/internal/store"
)

type EquipmentHandler struct {
	Store *store.Store
}

func (h EquipmentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/equipment", h.list)
	r.Post("/equipment", h.create)
	r.Put("/equipment/{id}", h.update)
}

type equipmentPayload struct {
	CustomerID    string                 `json:"customerId"`
	EquipmentType string                 `json:"equipmentType"`
	Brand         string                 `json:"brand"`
	Model         string                 `json:"model"`
	SerialNumber  string                 `json:"serialNumber"`
	ReportedFault string                 `json:"reportedFault"`
	TechnicianID  string                 `json:"technicianId"`
	EntryDate     time.Time              `json:"entryDate"`
	Status        domain.EquipmentStatus `json:"status"`
}

func (p equipmentPayload) toInput() store.EquipmentInput {
	return store.EquipmentInput{
		CustomerID:    p.CustomerID,
		EquipmentType: p.EquipmentType,
		Brand:         p.Brand,
		Model:         p.Model,
		SerialNumber:  p.SerialNumber,
		ReportedFault: p.ReportedFault,
		TechnicianID:  p.TechnicianID,
		EntryDate:     p.EntryDate,
	}
}

func (h EquipmentHandler) list(w http.ResponseWriter, r *http.Request) {
	equipment := h.Store.Equipment()
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := equipment[:0]
		for _, eq := range equipment {
			if string(eq.Status) == status {
				filtered = append(filtered, eq)
			}
		}
		equipment = filtered
	}
	writeJSON(w, http.StatusOK, equipment)
}

func (h EquipmentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req equipmentPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	equipment, err := h.Store.AddEquipment(authctx.ActorID(r.Context()), req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, equipment)
}

func (h EquipmentHandler) update(w http.ResponseWriter, r *http.Request) {
	var req equipmentPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	equipment, err := h.Store.UpdateEquipment(authctx.ActorID(r.Context()), chi.URLParam(r, "id"), req.toInput(), req.Status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, equipment)
}
