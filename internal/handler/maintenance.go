package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"servifix-backend/internal/store"
)

type MaintenanceHandler struct {
	Store *store.Store
}

func (h MaintenanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/maintenance", h.list)
	r.Post("/maintenance", h.create)
	r.Put("/maintenance/{id}", h.update)
	r.Delete("/maintenance/{id}", h.delete)
	r.Post("/maintenance/sweep", h.sweep)
}

type maintenancePayload struct {
	CustomerID         string `json:"customerId"`
	ServiceDescription string `json:"serviceDescription"`
	FrequencyMonths    int    `json:"frequencyMonths"`
	StartDate          string `json:"startDate"`
	NextDueDate        string `json:"nextDueDate"`
}

func (p maintenancePayload) toInput() store.MaintenanceInput {
	return store.MaintenanceInput{
		CustomerID:         p.CustomerID,
		ServiceDescription: p.ServiceDescription,
		FrequencyMonths:    p.FrequencyMonths,
		StartDate:          p.StartDate,
	}
}

func (h MaintenanceHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.MaintenanceSchedules())
}

func (h MaintenanceHandler) create(w http.ResponseWriter, r *http.Request) {
	var req maintenancePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	schedule, err := h.Store.AddMaintenanceSchedule(req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, schedule)
}

func (h MaintenanceHandler) update(w http.ResponseWriter, r *http.Request) {
	var req maintenancePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	schedule, err := h.Store.UpdateMaintenanceSchedule(chi.URLParam(r, "id"), req.toInput(), req.NextDueDate)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

func (h MaintenanceHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteMaintenanceSchedule(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sweep triggers the due-schedule scan immediately instead of waiting for
// the background ticker.
func (h MaintenanceHandler) sweep(w http.ResponseWriter, r *http.Request) {
	created := h.Store.RunMaintenanceSweep(time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"created": len(created),
		"orders":  created,
	})
}
