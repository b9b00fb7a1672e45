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

type QuoteHandler struct {
	Store *store.Store
}

func (h QuoteHandler) RegisterRoutes(r chi.Router) {
	r.Get("/quotes", h.list)
	r.Post("/quotes", h.create)
	r.Put("/quotes/{id}", h.update)
	r.Delete("/quotes/{id}", h.delete)
}

type quotePayload struct {
	CustomerID string                   `json:"customerId"`
	Date       time.Time                `json:"date"`
	Items      []domain.InvoiceLineItem `json:"items"`
	Discount   float64                  `json:"discount"`
	Taxable    bool                     `json:"isTaxable"`
	Status     domain.QuoteStatus       `json:"status"`
}

func (p quotePayload) toInput() store.QuoteInput {
	return store.QuoteInput{
		CustomerID: p.CustomerID,
		Date:       p.Date,
		Items:      p.Items,
		Discount:   p.Discount,
		Taxable:    p.Taxable,
		Status:     p.Status,
	}
}

func (h QuoteHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Quotes())
}

func (h QuoteHandler) create(w http.ResponseWriter, r *http.Request) {
	var req quotePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	quote, err := h.Store.AddQuote(authctx.ActorID(r.Context()), req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quote)
}

func (h QuoteHandler) update(w http.ResponseWriter, r *http.Request) {
	var req quotePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	quote, err := h.Store.UpdateQuote(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h QuoteHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteQuote(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
