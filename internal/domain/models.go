package domain

import "time"

// Enumerations. Status literals are the business-facing Spanish labels and
// travel as-is through the API and the calendar event summaries.
const (
	RoleAdmin       StaffRole = "administrador"
	RoleCoordinator StaffRole = "coordinador"
	RoleTechnician  StaffRole = "tecnico"
	RoleSecretary   StaffRole = "secretaria"

	OrderUnconfirmed  OrderStatus = "Por Confirmar"
	OrderPending      OrderStatus = "Pendiente"
	OrderInProgress   OrderStatus = "En Proceso"
	OrderCompleted    OrderStatus = "Completado"
	OrderCancelled    OrderStatus = "Cancelado"
	OrderWarranty     OrderStatus = "Garantía"
	OrderNotScheduled OrderStatus = "No Agendado"

	ActionCreated       LogAction = "Creado"
	ActionConfirmed     LogAction = "Confirmado"
	ActionEdited        LogAction = "Editado"
	ActionRescheduled   LogAction = "Reagendado"
	ActionCancelled     LogAction = "Cancelado"
	ActionStatusChanged LogAction = "Estado Cambiado"

	InvoiceDraft   InvoiceStatus = "Borrador"
	InvoiceIssued  InvoiceStatus = "Emitida"
	InvoicePartial InvoiceStatus = "Pago Parcial"
	InvoicePaid    InvoiceStatus = "Pagada"
	InvoiceVoided  InvoiceStatus = "Anulada"

	QuoteDraft    QuoteStatus = "Borrador"
	QuoteSent     QuoteStatus = "Enviada"
	QuoteAccepted QuoteStatus = "Aceptada"
	QuoteRejected QuoteStatus = "Rechazada"

	PaymentCash       PaymentMethod = "Efectivo"
	PaymentTransfer   PaymentMethod = "Transferencia"
	PaymentCreditCard PaymentMethod = "Tarjeta de Crédito"
	PaymentDebitCard  PaymentMethod = "Tarjeta de Débito"

	EquipmentReceived   EquipmentStatus = "Recibido"
	EquipmentDiagnosing EquipmentStatus = "En Diagnóstico"
	EquipmentAwaiting   EquipmentStatus = "Esperando Repuesto"
	EquipmentRepairing  EquipmentStatus = "En Reparación"
	EquipmentReady      EquipmentStatus = "Listo para Retirar"
	EquipmentDelivered  EquipmentStatus = "Entregado"

	ItemInventory ItemType = "Inventario"
	ItemManual    ItemType = "Manual"

	// Actor ids recorded in history entries when no staff member acted.
	ActorPublicForm = "public_form"
	ActorSystem     = "system"
)

type StaffRole string
type OrderStatus string
type LogAction string
type InvoiceStatus string
type QuoteStatus string
type PaymentMethod string
type EquipmentStatus string
type ItemType string

// ActionLog is one immutable audit entry on a ServiceOrder or a
// WorkshopEquipment record.
type ActionLog struct {
	Action    LogAction `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actorId"`
	Details   string    `json:"details,omitempty"`
}

type Staff struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CalendarID    string    `json:"calendarId"`
	Role          StaffRole `json:"role"`
	PersonalPhone string    `json:"personalPhone,omitempty"`
	FleetPhone    string    `json:"fleetPhone,omitempty"`
	IDNumber      string    `json:"idNumber,omitempty"`
	// AccessKeyHash is the bcrypt hash of the staff member's access key.
	// Empty means no key has been issued. Handlers never serialize it;
	// the tag exists for state snapshots only.
	AccessKeyHash string `json:"accessKeyHash,omitempty"`
}

type Customer struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email,omitempty"`
	Address        string   `json:"address,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	ServiceHistory []string `json:"serviceHistory"`
	CreatedByID    string   `json:"createdById,omitempty"`
}

// TimeSlot is one open range in a weekly availability template,
// times as "HH:MM" local.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type DailyAvailability struct {
	DayOfWeek int        `json:"dayOfWeek"` // 0=Sunday .. 6=Saturday
	Slots     []TimeSlot `json:"slots"`
}

type Calendar struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	StaffID      string              `json:"staffId"`
	Color        string              `json:"color"`
	Availability []DailyAvailability `json:"availability,omitempty"`
	Active       bool                `json:"active"`
}

type Reminder struct {
	Minutes int `json:"minutes"`
}

type ServiceOrder struct {
	ID                 string      `json:"id"`
	Number             string      `json:"number"` // "OS-0001"
	Title              string      `json:"title"`
	Start              *time.Time  `json:"start,omitempty"`
	End                *time.Time  `json:"end,omitempty"`
	CalendarID         string      `json:"calendarId,omitempty"`
	GoogleSynced       bool        `json:"googleSynced"`
	GoogleEventID      string      `json:"googleEventId,omitempty"`
	CustomerID         string      `json:"customerId"`
	CustomerName       string      `json:"customerName"`
	CustomerPhone      string      `json:"customerPhone"`
	CustomerAddress    string      `json:"customerAddress"`
	CustomerEmail      string      `json:"customerEmail,omitempty"`
	Latitude           *float64    `json:"latitude,omitempty"`
	Longitude          *float64    `json:"longitude,omitempty"`
	ApplianceType      string      `json:"applianceType"`
	IssueDescription   string      `json:"issueDescription"`
	Reminders          []Reminder  `json:"reminders,omitempty"`
	Status             OrderStatus `json:"status"`
	ServiceNotes       string      `json:"serviceNotes,omitempty"`
	CheckupOnly        bool        `json:"checkupOnly,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	CreatedByID        string      `json:"createdById,omitempty"`
	ConfirmedByID      string      `json:"confirmedById,omitempty"`
	AttendedByID       string      `json:"attendedById,omitempty"`
	ArchiveReason      string      `json:"archiveReason,omitempty"`
	CancellationReason string      `json:"cancellationReason,omitempty"`
	CancelledByID      string      `json:"cancelledById,omitempty"`
	RescheduledCount   int         `json:"rescheduledCount,omitempty"`
	History            []ActionLog `json:"history,omitempty"`
}

// Resolved reports whether the order no longer demands attention from the
// scheduling side.
func (o ServiceOrder) Resolved() bool {
	return o.Status != OrderUnconfirmed && o.Status != OrderPending
}

type MaintenanceSchedule struct {
	ID                 string `json:"id"`
	CustomerID         string `json:"customerId"`
	ServiceDescription string `json:"serviceDescription"`
	FrequencyMonths    int    `json:"frequencyMonths"` // 3, 6 or 12
	StartDate          string `json:"startDate"`       // "2006-01-02"
	NextDueDate        string `json:"nextDueDate"`     // "2006-01-02"
}

type BankAccount struct {
	ID            string `json:"id"`
	BankName      string `json:"bankName"`
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
}

type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	PurchasePrice float64 `json:"purchasePrice"`
	SellPrice1    float64 `json:"sellPrice1"`
	SellPrice2    float64 `json:"sellPrice2"`
	Stock         int     `json:"stock"`
}

type Commission struct {
	TechnicianID string  `json:"technicianId"`
	Amount       float64 `json:"amount"`
}

type InvoiceLineItem struct {
	ID            string      `json:"id"`
	Type          ItemType    `json:"type"`
	ProductID     string      `json:"productId,omitempty"`
	Description   string      `json:"description"`
	Quantity      float64     `json:"quantity"`
	PurchasePrice float64     `json:"purchasePrice"`
	SellPrice     float64     `json:"sellPrice"`
	Commission    *Commission `json:"commission,omitempty"`
}

type PaymentDetails struct {
	Method        PaymentMethod `json:"method"`
	Amount        float64       `json:"amount"`
	BankAccountID string        `json:"bankAccountId,omitempty"`
	CashReceived  float64       `json:"cashReceived,omitempty"`
	ChangeGiven   float64       `json:"changeGiven,omitempty"`
	PaymentDate   time.Time     `json:"paymentDate"`
}

type Invoice struct {
	ID                      string            `json:"id"`
	Number                  string            `json:"number"` // "F-000001"
	CustomerID              string            `json:"customerId"`
	Date                    time.Time         `json:"date"`
	Items                   []InvoiceLineItem `json:"items"`
	Subtotal                float64           `json:"subtotal"`
	Discount                float64           `json:"discount"`
	Taxes                   float64           `json:"taxes"`
	Total                   float64           `json:"total"`
	Taxable                 bool              `json:"isTaxable"`
	Status                  InvoiceStatus     `json:"status"`
	ServiceOrderID          string            `json:"serviceOrderId,omitempty"`
	ServiceOrderDescription string            `json:"serviceOrderDescription,omitempty"`
	QuoteID                 string            `json:"quoteId,omitempty"`
	Payments                []PaymentDetails  `json:"payments"`
	PaidAmount              float64           `json:"paidAmount"`
}

type Quote struct {
	ID          string            `json:"id"`
	Number      string            `json:"number"` // "COT-000001"
	CustomerID  string            `json:"customerId"`
	Date        time.Time         `json:"date"`
	Items       []InvoiceLineItem `json:"items"`
	Subtotal    float64           `json:"subtotal"`
	Discount    float64           `json:"discount"`
	Taxes       float64           `json:"taxes"`
	Total       float64           `json:"total"`
	Taxable     bool              `json:"isTaxable"`
	Status      QuoteStatus       `json:"status"`
	CreatedByID string            `json:"createdById,omitempty"`
}

type WorkshopEquipment struct {
	ID            string          `json:"id"`
	EntryDate     time.Time       `json:"entryDate"`
	CustomerID    string          `json:"customerId"`
	EquipmentType string          `json:"equipmentType"`
	Brand         string          `json:"brand,omitempty"`
	Model         string          `json:"model,omitempty"`
	SerialNumber  string          `json:"serialNumber,omitempty"`
	ReportedFault string          `json:"reportedFault"`
	TechnicianID  string          `json:"technicianId,omitempty"`
	Status        EquipmentStatus `json:"status"`
	History       []ActionLog     `json:"history,omitempty"`
}

type CompanyInfo struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
	LogoURL  string `json:"logoUrl,omitempty"`
}
