package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"servifix-backend/internal/domain"
	"servifix-backend/internal/service"
	"servifix-backend/internal/store"
)

type StaffHandler struct {
	Store *store.Store
	Auth  service.AuthService
}

func (h StaffHandler) RegisterRoutes(r chi.Router) {
	r.Get("/staff", h.list)
	r.Post("/staff", h.create)
	r.Put("/staff/{id}", h.update)
	r.Delete("/staff/{id}", h.delete)
	r.Put("/staff/{id}/role", h.setRole)
	r.Put("/staff/{id}/access-key", h.setAccessKey)
	r.Delete("/staff/{id}/access-key", h.removeAccessKey)
}

type staffPayload struct {
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Role          domain.StaffRole `json:"role"`
	PersonalPhone string           `json:"personalPhone"`
	FleetPhone    string           `json:"fleetPhone"`
	IDNumber      string           `json:"idNumber"`
}

func (p staffPayload) toInput() store.StaffInput {
	return store.StaffInput{
		Name:          p.Name,
		Email:         p.Email,
		Role:          p.Role,
		PersonalPhone: p.PersonalPhone,
		FleetPhone:    p.FleetPhone,
		IDNumber:      p.IDNumber,
	}
}

// staffView drops the access-key hash from API responses.
func staffView(s domain.Staff) map[string]any {
	return map[string]any{
		"id":            s.ID,
		"name":          s.Name,
		"email":         s.Email,
		"calendarId":    s.CalendarID,
		"role":          s.Role,
		"personalPhone": s.PersonalPhone,
		"fleetPhone":    s.FleetPhone,
		"idNumber":      s.IDNumber,
		"hasAccessKey":  s.AccessKeyHash != "",
	}
}

func (h StaffHandler) list(w http.ResponseWriter, r *http.Request) {
	members := h.Store.StaffList()
	resp := make([]map[string]any, 0, len(members))
	for _, m := range members {
		resp = append(resp, staffView(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h StaffHandler) create(w http.ResponseWriter, r *http.Request) {
	var req staffPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	staff, err := h.Store.AddStaff(req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, staffView(staff))
}

func (h StaffHandler) update(w http.ResponseWriter, r *http.Request) {
	var req staffPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	staff, err := h.Store.UpdateStaff(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, staffView(staff))
}

func (h StaffHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteStaff(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h StaffHandler) setRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role domain.StaffRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	staff, err := h.Store.UpdateStaffRole(chi.URLParam(r, "id"), req.Role)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, staffView(staff))
}

func (h StaffHandler) setAccessKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccessKey string `json:"accessKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Auth.SetAccessKey(chi.URLParam(r, "id"), req.AccessKey); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h StaffHandler) removeAccessKey(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.RemoveAccessKey(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
