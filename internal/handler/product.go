package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"servifix-backend/internal/store"
)

type ProductHandler struct {
	Store *store.Store
}

func (h ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.list)
	r.Post("/products", h.create)
	r.Put("/products/{id}", h.update)
	r.Delete("/products/{id}", h.delete)
}

type productPayload struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PurchasePrice float64 `json:"purchasePrice"`
	SellPrice1    float64 `json:"sellPrice1"`
	SellPrice2    float64 `json:"sellPrice2"`
	Stock         int     `json:"stock"`
}

func (p productPayload) toInput() store.ProductInput {
	return store.ProductInput{
		Name:          p.Name,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SellPrice1:    p.SellPrice1,
		SellPrice2:    p.SellPrice2,
		Stock:         p.Stock,
	}
}

func (h ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Products())
}

func (h ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	product, err := h.Store.AddProduct(req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h ProductHandler) update(w http.ResponseWriter, r *http.Request) {
	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	product, err := h.Store.UpdateProduct(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteProduct(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
