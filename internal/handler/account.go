package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"servifix-backend/internal/domain"
	"servifix-backend/internal/store"
)

// AccountHandler covers bank accounts plus the company identity printed
// on invoices and quotes.
type AccountHandler struct {
	Store *store.Store
}

func (h AccountHandler) RegisterRoutes(r chi.Router) {
	r.Get("/bank-accounts", h.listAccounts)
	r.Post("/bank-accounts", h.createAccount)
	r.Put("/bank-accounts/{id}", h.updateAccount)
	r.Delete("/bank-accounts/{id}", h.deleteAccount)
	r.Get("/company", h.getCompany)
	r.Put("/company", h.updateCompany)
}

type bankAccountPayload struct {
	BankName      string `json:"bankName"`
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
}

func (h AccountHandler) listAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.BankAccounts())
}

func (h AccountHandler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req bankAccountPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	account, err := h.Store.AddBankAccount(req.BankName, req.AccountHolder, req.AccountNumber)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h AccountHandler) updateAccount(w http.ResponseWriter, r *http.Request) {
	var req bankAccountPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	account, err := h.Store.UpdateBankAccount(chi.URLParam(r, "id"), req.BankName, req.AccountHolder, req.AccountNumber)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h AccountHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteBankAccount(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h AccountHandler) getCompany(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.CompanyInfo())
}

func (h AccountHandler) updateCompany(w http.ResponseWriter, r *http.Request) {
	var req domain.CompanyInfo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	writeJSON(w, http.StatusOK, h.Store.UpdateCompanyInfo(req))
}
