package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"google.golang.org/api/calendar/v3"

	"servifix-backend/internal/domain"
	"servifix-backend/internal/gcal"
	"servifix-backend/internal/store"
)

type CalendarHandler struct {
	Store *store.Store
	Cal   *gcal.Client
}

func (h CalendarHandler) RegisterRoutes(r chi.Router) {
	r.Get("/calendars", h.list)
	r.Post("/calendars", h.create)
	r.Put("/calendars/{id}", h.update)
	r.Delete("/calendars/{id}", h.delete)
	r.Put("/calendars/{id}/availability", h.setAvailability)
	r.Get("/calendars/{id}/slots", h.slots)
	r.Get("/calendars/{id}/events", h.upcomingEvents)
	r.Get("/availability/public-form", h.getPublicForm)
	r.Put("/availability/public-form", h.setPublicForm)
}

// RegisterPublicRoutes mounts the unauthenticated availability lookup used
// by the booking form.
func (h CalendarHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/public/availability", h.publicSlots)
}

func (h CalendarHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Calendars())
}

func (h CalendarHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		StaffID string `json:"staffId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	cal, err := h.Store.AddCalendar(req.Name, req.StaffID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cal)
}

func (h CalendarHandler) update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Color  string `json:"color"`
		Active bool   `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	cal, err := h.Store.UpdateCalendar(chi.URLParam(r, "id"), req.Name, req.Color, req.Active)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (h CalendarHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteCalendar(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h CalendarHandler) setAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Availability []domain.DailyAvailability `json:"availability"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	cal, err := h.Store.SetCalendarAvailability(chi.URLParam(r, "id"), req.Availability)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (h CalendarHandler) slots(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateQuery(r, "date")
	if err != nil || date == nil {
		writeError(w, http.StatusBadRequest, "date query parameter is required (YYYY-MM-DD)")
		return
	}
	excludeOrderID := r.URL.Query().Get("excludeOrderId")
	slots := h.Store.OpenSlots(chi.URLParam(r, "id"), *date, excludeOrderID)
	writeJSON(w, http.StatusOK, slots)
}

// upcomingEvents lists the future Google events on a calendar. An
// unconfigured integration yields an empty list, not an error.
func (h CalendarHandler) upcomingEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Store.CalendarByID(id); err != nil {
		writeStoreError(w, err)
		return
	}
	events, err := h.Cal.ListUpcomingEvents(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusBadGateway, "calendar provider unavailable")
		return
	}
	if events == nil {
		events = []*calendar.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h CalendarHandler) getPublicForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.PublicFormAvailability())
}

func (h CalendarHandler) setPublicForm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Availability []domain.DailyAvailability `json:"availability"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	h.Store.SetPublicFormAvailability(req.Availability)
	writeJSON(w, http.StatusOK, h.Store.PublicFormAvailability())
}

func (h CalendarHandler) publicSlots(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateQuery(r, "date")
	if err != nil || date == nil {
		writeError(w, http.StatusBadRequest, "date query parameter is required (YYYY-MM-DD)")
		return
	}
	writeJSON(w, http.StatusOK, h.Store.PublicFormSlots(*date))
}
