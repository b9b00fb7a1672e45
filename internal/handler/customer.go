package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"servifix-backend/internal/domain"
	"servifix-backend/internal/server/authctx"
	"servifix-backend/internal/store"
)

type CustomerHandler struct {
	Store *store.Store
}

func (h CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/customers", h.list)
	r.Post("/customers", h.create)
	r.Put("/customers/{id}", h.update)
	r.Get("/customers/export", h.export)
	r.Post("/customers/import", h.importBatch)
}

type customerPayload struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (p customerPayload) toInput() store.CustomerInput {
	return store.CustomerInput{
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		Address:   p.Address,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}

func (h CustomerHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Customers())
}

func (h CustomerHandler) create(w http.ResponseWriter, r *http.Request) {
	var req customerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	customer, err := h.Store.AddCustomer(authctx.ActorID(r.Context()), req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h CustomerHandler) update(w http.ResponseWriter, r *http.Request) {
	var req customerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	customer, err := h.Store.UpdateCustomer(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// export streams the customer list. The default JSON form is a plain
// array; importing that exact document reproduces the same list. XLSX is
// export-only.
func (h CustomerHandler) export(w http.ResponseWriter, r *http.Request) {
	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="customers.json"`)
		_ = json.NewEncoder(w).Encode(h.Store.Customers())
	case "xlsx", "excel":
		data, err := exportCustomersXLSX(h.Store.Customers())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"clientes_%s.xlsx\"", time.Now().Format("20060102_150405")))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use json or xlsx)")
	}
}

func exportCustomersXLSX(customers []domain.Customer) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Clientes"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Nombre", "Teléfono", "Correo", "Dirección", "Órdenes"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, cust := range customers {
		row := r + 2
		values := []any{cust.Name, cust.Phone, cust.Email, cust.Address, len(cust.ServiceHistory)}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "C", 20)
	_ = f.SetColWidth(sheet, "D", "D", 36)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "E1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// importBatch replaces the customer list from a JSON array. The batch is
// all-or-nothing: one bad record rejects the whole file.
func (h CustomerHandler) importBatch(w http.ResponseWriter, r *http.Request) {
	var customers []domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&customers); err != nil {
		writeError(w, http.StatusBadRequest, "el formato del archivo es incorrecto")
		return
	}
	if err := h.Store.ImportCustomers(customers); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(customers)})
}
