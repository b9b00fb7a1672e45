package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"servifix-backend/internal/domain"
)

// taxRate is the flat ITBIS rate applied when a document is taxable.
const taxRate = 0.18

// Totals are the derived money fields of an invoice or quote.
type Totals struct {
	Subtotal float64
	Taxes    float64
	Total    float64
}

// ComputeTotals derives subtotal/taxes/total from line items, discount and
// the taxable flag. The taxable base is subtotal minus discount and is NOT
// clamped at zero: a discount larger than the subtotal yields negative tax
// and total, matching the issuing rules this system inherited.
func ComputeTotals(items []domain.InvoiceLineItem, discount float64, taxable bool) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.SellPrice * item.Quantity
	}
	base := subtotal - discount
	var taxes float64
	if taxable {
		taxes = base * taxRate
	}
	return Totals{Subtotal: subtotal, Taxes: taxes, Total: base + taxes}
}

// InvoiceInput is the editable part of an invoice; totals are always
// derived, never accepted from the caller.
type InvoiceInput struct {
	CustomerID              string
	Date                    time.Time
	Items                   []domain.InvoiceLineItem
	Discount                float64
	Taxable                 bool
	Status                  domain.InvoiceStatus
	ServiceOrderID          string
	ServiceOrderDescription string
	QuoteID                 string
}

// AddInvoice creates an invoice. The number continues from the highest
// existing invoice number.
func (s *Store) AddInvoice(in InvoiceInput) (domain.Invoice, error) {
	if in.CustomerID == "" {
		return domain.Invoice{}, validationErrorf("customer is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCustomer(in.CustomerID) == nil {
		return domain.Invoice{}, validationErrorf("customer not found")
	}

	last := 0
	for _, inv := range s.state.Invoices {
		if n := invoiceSeq(inv.Number); n > last {
			last = n
		}
	}
	totals := ComputeTotals(in.Items, in.Discount, in.Taxable)
	status := in.Status
	if status == "" {
		status = domain.InvoiceIssued
	}
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	invoice := domain.Invoice{
		ID:                      newID(),
		Number:                  fmt.Sprintf("F-%06d", last+1),
		CustomerID:              in.CustomerID,
		Date:                    date,
		Items:                   in.Items,
		Subtotal:                totals.Subtotal,
		Discount:                in.Discount,
		Taxes:                   totals.Taxes,
		Total:                   totals.Total,
		Taxable:                 in.Taxable,
		Status:                  status,
		ServiceOrderID:          in.ServiceOrderID,
		ServiceOrderDescription: in.ServiceOrderDescription,
		QuoteID:                 in.QuoteID,
		Payments:                []domain.PaymentDetails{},
	}
	s.state.Invoices = append(s.state.Invoices, invoice)
	return invoice, nil
}

// UpdateInvoice re-derives totals from the new items/discount. Paid and
// voided invoices are immutable.
func (s *Store) UpdateInvoice(id string, in InvoiceInput) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoice := s.findInvoice(id)
	if invoice == nil {
		return domain.Invoice{}, ErrNotFound
	}
	if invoice.Status == domain.InvoicePaid || invoice.Status == domain.InvoiceVoided {
		return domain.Invoice{}, validationErrorf("invoice %s is %s and cannot be edited", invoice.Number, invoice.Status)
	}

	totals := ComputeTotals(in.Items, in.Discount, in.Taxable)
	invoice.Items = in.Items
	invoice.Discount = in.Discount
	invoice.Taxable = in.Taxable
	invoice.Subtotal = totals.Subtotal
	invoice.Taxes = totals.Taxes
	invoice.Total = totals.Total
	if in.CustomerID != "" {
		invoice.CustomerID = in.CustomerID
	}
	if !in.Date.IsZero() {
		invoice.Date = in.Date
	}
	if in.Status != "" {
		invoice.Status = in.Status
	}
	invoice.ServiceOrderID = in.ServiceOrderID
	invoice.ServiceOrderDescription = in.ServiceOrderDescription
	invoice.QuoteID = in.QuoteID
	return *invoice, nil
}

// RecordInvoicePayment appends a payment and moves the status by totals
// alone: Pagada once the paid sum covers the total, Pago Parcial
// otherwise. Cash payments get their change computed against what was
// still due.
func (s *Store) RecordInvoicePayment(id string, payment domain.PaymentDetails) (domain.Invoice, error) {
	if payment.Amount <= 0 {
		return domain.Invoice{}, validationErrorf("payment amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invoice := s.findInvoice(id)
	if invoice == nil {
		return domain.Invoice{}, ErrNotFound
	}
	if invoice.Status == domain.InvoiceVoided {
		return domain.Invoice{}, validationErrorf("invoice %s is voided", invoice.Number)
	}

	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = s.now()
	}
	if payment.Method == domain.PaymentCash && payment.CashReceived > 0 {
		due := invoice.Total - invoice.PaidAmount
		if change := payment.CashReceived - due; change > 0 {
			payment.ChangeGiven = change
		}
	}

	invoice.Payments = append(invoice.Payments, payment)
	var paid float64
	for _, p := range invoice.Payments {
		paid += p.Amount
	}
	invoice.PaidAmount = paid
	if paid >= invoice.Total {
		invoice.Status = domain.InvoicePaid
	} else {
		invoice.Status = domain.InvoicePartial
	}
	return *invoice, nil
}

// VoidInvoice marks an invoice Anulada; it stays on the books but rejects
// any further edits or payments.
func (s *Store) VoidInvoice(id string) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoice := s.findInvoice(id)
	if invoice == nil {
		return domain.Invoice{}, ErrNotFound
	}
	if invoice.Status == domain.InvoicePaid {
		return domain.Invoice{}, validationErrorf("invoice %s is paid and cannot be voided", invoice.Number)
	}
	invoice.Status = domain.InvoiceVoided
	return *invoice, nil
}

// Invoices returns a copy of all invoices.
func (s *Store) Invoices() []domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Invoice(nil), s.state.Invoices...)
}

// InvoiceByID returns one invoice.
func (s *Store) InvoiceByID(id string) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv := s.findInvoice(id); inv != nil {
		return *inv, nil
	}
	return domain.Invoice{}, ErrNotFound
}

// QuoteInput is the editable part of a quote.
type QuoteInput struct {
	CustomerID string
	Date       time.Time
	Items      []domain.InvoiceLineItem
	Discount   float64
	Taxable    bool
	Status     domain.QuoteStatus
}

// AddQuote creates a quote; numbering uses the store counter.
func (s *Store) AddQuote(actorID string, in QuoteInput) (domain.Quote, error) {
	if in.CustomerID == "" {
		return domain.Quote{}, validationErrorf("customer is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCustomer(in.CustomerID) == nil {
		return domain.Quote{}, validationErrorf("customer not found")
	}

	s.state.LastQuoteNumber++
	totals := ComputeTotals(in.Items, in.Discount, in.Taxable)
	status := in.Status
	if status == "" {
		status = domain.QuoteDraft
	}
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	quote := domain.Quote{
		ID:          newID(),
		Number:      fmt.Sprintf("COT-%06d", s.state.LastQuoteNumber),
		CustomerID:  in.CustomerID,
		Date:        date,
		Items:       in.Items,
		Subtotal:    totals.Subtotal,
		Discount:    in.Discount,
		Taxes:       totals.Taxes,
		Total:       totals.Total,
		Taxable:     in.Taxable,
		Status:      status,
		CreatedByID: actorID,
	}
	s.state.Quotes = append(s.state.Quotes, quote)
	return quote, nil
}

// UpdateQuote re-derives totals from the new items/discount.
func (s *Store) UpdateQuote(id string, in QuoteInput) (domain.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Quotes {
		if s.state.Quotes[i].ID != id {
			continue
		}
		q := &s.state.Quotes[i]
		totals := ComputeTotals(in.Items, in.Discount, in.Taxable)
		q.Items = in.Items
		q.Discount = in.Discount
		q.Taxable = in.Taxable
		q.Subtotal = totals.Subtotal
		q.Taxes = totals.Taxes
		q.Total = totals.Total
		if in.CustomerID != "" {
			q.CustomerID = in.CustomerID
		}
		if !in.Date.IsZero() {
			q.Date = in.Date
		}
		if in.Status != "" {
			q.Status = in.Status
		}
		return *q, nil
	}
	return domain.Quote{}, ErrNotFound
}

// DeleteQuote removes a quote; unlike orders and invoices, quotes carry no
// audit obligations.
func (s *Store) DeleteQuote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.Quotes[:0]
	found := false
	for _, q := range s.state.Quotes {
		if q.ID == id {
			found = true
			continue
		}
		kept = append(kept, q)
	}
	s.state.Quotes = kept
	if !found {
		return ErrNotFound
	}
	return nil
}

// Quotes returns a copy of all quotes.
func (s *Store) Quotes() []domain.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Quote(nil), s.state.Quotes...)
}

func (s *Store) findInvoice(id string) *domain.Invoice {
	for i := range s.state.Invoices {
		if s.state.Invoices[i].ID == id {
			return &s.state.Invoices[i]
		}
	}
	return nil
}

// invoiceSeq parses the numeric part of "F-000123"; malformed numbers
// count as zero.
func invoiceSeq(number string) int {
	_, digits, ok := strings.Cut(number, "-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
