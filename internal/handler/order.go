package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"servifix-backend/internal/domain"
	"servifix-backend/internal/server/authctx"
	"servifix-backend/internal/service"
	"servifix-backend/internal/store"
)

type OrderHandler struct {
	Store *store.Store
	Sync  service.SyncService
}

func (h OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/orders", h.list)
	r.Get("/orders/{id}", h.get)
	r.Post("/orders", h.create)
	r.Post("/orders/{id}/confirm", h.confirm)
	r.Put("/orders/{id}", h.update)
	r.Post("/orders/{id}/cancel", h.cancel)
	r.Post("/orders/{id}/archive", h.archive)
	r.Put("/orders/{id}/status", h.setStatus)
	r.Put("/orders/{id}/reminders", h.setReminders)
}

// RegisterPublicRoutes exposes the unauthenticated request form.
func (h OrderHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/public/orders", h.createPublic)
}

type orderPayload struct {
	Start            *time.Time        `json:"start"`
	End              *time.Time        `json:"end"`
	CalendarID       string            `json:"calendarId"`
	CustomerName     string            `json:"customerName"`
	CustomerPhone    string            `json:"customerPhone"`
	CustomerAddress  string            `json:"customerAddress"`
	CustomerEmail    string            `json:"customerEmail"`
	Latitude         *float64          `json:"latitude"`
	Longitude        *float64          `json:"longitude"`
	ApplianceType    string            `json:"applianceType"`
	IssueDescription string            `json:"issueDescription"`
	Reminders        []domain.Reminder `json:"reminders"`
}

func (p orderPayload) toInput() store.CreateOrderInput {
	return store.CreateOrderInput{
		Start:            p.Start,
		End:              p.End,
		CalendarID:       p.CalendarID,
		CustomerName:     p.CustomerName,
		CustomerPhone:    p.CustomerPhone,
		CustomerAddress:  p.CustomerAddress,
		CustomerEmail:    p.CustomerEmail,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		ApplianceType:    p.ApplianceType,
		IssueDescription: p.IssueDescription,
		Reminders:        p.Reminders,
	}
}

func (h OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	orders := h.Store.Orders()

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == domain.OrderStatus(status) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	if day, err := parseDateQuery(r, "date"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	} else if day != nil {
		next := day.AddDate(0, 0, 1)
		filtered := orders[:0]
		for _, o := range orders {
			if o.Start != nil && !o.Start.Before(*day) && o.Start.Before(next) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h OrderHandler) get(w http.ResponseWriter, r *http.Request) {
	order, err := h.Store.Order(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req orderPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	order, err := h.Store.CreateOrder(authctx.ActorID(r.Context()), req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h OrderHandler) createPublic(w http.ResponseWriter, r *http.Request) {
	var req orderPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	order, err := h.Store.CreatePublicOrder(req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"number": order.Number,
		"status": order.Status,
	})
}

func (h OrderHandler) confirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Start            time.Time `json:"start"`
		End              time.Time `json:"end"`
		CalendarID       string    `json:"calendarId"`
		CustomerName     string    `json:"customerName"`
		CustomerPhone    string    `json:"customerPhone"`
		CustomerAddress  string    `json:"customerAddress"`
		ApplianceType    string    `json:"applianceType"`
		IssueDescription string    `json:"issueDescription"`
		CheckupOnly      bool      `json:"checkupOnly"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	order, err := h.Store.ConfirmOrder(authctx.ActorID(r.Context()), chi.URLParam(r, "id"), store.ConfirmOrderInput{
		Start:            req.Start,
		End:              req.End,
		CalendarID:       req.CalendarID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerAddress:  req.CustomerAddress,
		ApplianceType:    req.ApplianceType,
		IssueDescription: req.IssueDescription,
		CheckupOnly:      req.CheckupOnly,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.Sync.OrderConfirmed(order)
	writeJSON(w, http.StatusOK, order)
}

func (h OrderHandler) update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Start            *time.Time `json:"start"`
		End              *time.Time `json:"end"`
		CalendarID       *string    `json:"calendarId"`
		CustomerName     *string    `json:"customerName"`
		CustomerPhone    *string    `json:"customerPhone"`
		CustomerAddress  *string    `json:"customerAddress"`
		ApplianceType    *string    `json:"applianceType"`
		IssueDescription *string    `json:"issueDescription"`
		ServiceNotes     *string    `json:"serviceNotes"`
		CheckupOnly      *bool      `json:"checkupOnly"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	order, prevCalendarID, err := h.Store.UpdateOrder(authctx.ActorID(r.Context()), chi.URLParam(r, "id"), store.UpdateOrderInput{
		Start:            req.Start,
		End:              req.End,
		CalendarID:       req.CalendarID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerAddress:  req.CustomerAddress,
		ApplianceType:    req.ApplianceType,
		IssueDescription: req.IssueDescription,
		ServiceNotes:     req.ServiceNotes,
		CheckupOnly:      req.CheckupOnly,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.Sync.OrderUpdated(order, prevCalendarID)
	writeJSON(w, http.StatusOK, order)
}

func (h OrderHandler) cancel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	order, err := h.Store.CancelOrder(authctx.ActorID(r.Context()), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.Sync.OrderCancelled(order)
	writeJSON(w, http.StatusOK, order)
}

func (h OrderHandler) archive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AttendedByID string `json:"attendedById"`
		Reason       string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.AttendedByID == "" {
		req.AttendedByID = authctx.ActorID(r.Context())
	}
	order, err := h.Store.ArchiveOrder(chi.URLParam(r, "id"), req.AttendedByID, req.Reason)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.Sync.OrderArchived(order)
	writeJSON(w, http.StatusOK, order)
}

func (h OrderHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	order, err := h.Store.SetOrderStatus(authctx.ActorID(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.Sync.OrderStatusChanged(order)
	writeJSON(w, http.StatusOK, order)
}

func (h OrderHandler) setReminders(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reminders []domain.Reminder `json:"reminders"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	order, err := h.Store.SetOrderReminders(chi.URLParam(r, "id"), req.Reminders)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.Sync.OrderRemindersChanged(order)
	writeJSON(w, http.StatusOK, order)
}
