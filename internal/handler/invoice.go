package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"servifix-backend/internal/domain"
	"servifix-backend/internal/store"
)

type InvoiceHandler struct {
	Store *store.Store
}

func (h InvoiceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/invoices", h.list)
	r.Get("/invoices/export", h.export)
	r.Get("/invoices/{id}", h.get)
	r.Post("/invoices", h.create)
	r.Put("/invoices/{id}", h.update)
	r.Post("/invoices/{id}/payments", h.recordPayment)
	r.Post("/invoices/{id}/void", h.void)
}

type invoicePayload struct {
	CustomerID              string                   `json:"customerId"`
	Date                    time.Time                `json:"date"`
	Items                   []domain.InvoiceLineItem `json:"items"`
	Discount                float64                  `json:"discount"`
	Taxable                 bool                     `json:"isTaxable"`
	Status                  domain.InvoiceStatus     `json:"status"`
	ServiceOrderID          string                   `json:"serviceOrderId"`
	ServiceOrderDescription string                   `json:"serviceOrderDescription"`
	QuoteID                 string                   `json:"quoteId"`
}

func (p invoicePayload) toInput() store.InvoiceInput {
	return store.InvoiceInput{
		CustomerID:              p.CustomerID,
		Date:                    p.Date,
		Items:                   p.Items,
		Discount:                p.Discount,
		Taxable:                 p.Taxable,
		Status:                  p.Status,
		ServiceOrderID:          p.ServiceOrderID,
		ServiceOrderDescription: p.ServiceOrderDescription,
		QuoteID:                 p.QuoteID,
	}
}

func (h InvoiceHandler) list(w http.ResponseWriter, r *http.Request) {
	invoices := h.Store.Invoices()
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := invoices[:0]
		for _, inv := range invoices {
			if string(inv.Status) == status {
				filtered = append(filtered, inv)
			}
		}
		invoices = filtered
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h InvoiceHandler) get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Store.InvoiceByID(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h InvoiceHandler) create(w http.ResponseWriter, r *http.Request) {
	var req invoicePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	invoice, err := h.Store.AddInvoice(req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoice)
}

func (h InvoiceHandler) update(w http.ResponseWriter, r *http.Request) {
	var req invoicePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	invoice, err := h.Store.UpdateInvoice(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h InvoiceHandler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentDetails
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	invoice, err := h.Store.RecordInvoicePayment(chi.URLParam(r, "id"), req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h InvoiceHandler) void(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Store.VoidInvoice(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h InvoiceHandler) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	invoices := h.Store.Invoices()
	customers := make(map[string]string)
	for _, c := range h.Store.Customers() {
		customers[c.ID] = c.Name
	}

	filenameSuffix := time.Now().Format("20060102_150405")

	switch format {
	case "csv":
		data, err := exportInvoicesCSV(invoices, customers)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"facturas_%s.csv\"", filenameSuffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := exportInvoicesXLSX(invoices, customers)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"facturas_%s.xlsx\"", filenameSuffix))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

func exportInvoicesCSV(invoices []domain.Invoice, customers map[string]string) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"number", "date", "customer", "subtotal", "discount", "taxes", "total", "paid", "status"})
	for _, inv := range invoices {
		_ = w.Write([]string{
			inv.Number,
			inv.Date.Format("2006-01-02"),
			customers[inv.CustomerID],
			strconv.FormatFloat(inv.Subtotal, 'f', 2, 64),
			strconv.FormatFloat(inv.Discount, 'f', 2, 64),
			strconv.FormatFloat(inv.Taxes, 'f', 2, 64),
			strconv.FormatFloat(inv.Total, 'f', 2, 64),
			strconv.FormatFloat(inv.PaidAmount, 'f', 2, 64),
			string(inv.Status),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportInvoicesXLSX(invoices []domain.Invoice, customers map[string]string) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Facturas"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Número", "Fecha", "Cliente", "Subtotal", "Descuento", "ITBIS", "Total", "Pagado", "Estado"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, inv := range invoices {
		row := r + 2
		values := []any{
			inv.Number,
			inv.Date.Format("2006-01-02"),
			customers[inv.CustomerID],
			inv.Subtotal,
			inv.Discount,
			inv.Taxes,
			inv.Total,
			inv.PaidAmount,
			string(inv.Status),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 28)
	_ = f.SetColWidth(sheet, "D", "H", 14)
	_ = f.SetColWidth(sheet, "I", "I", 14)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "I1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
