package model

import (
	"time"

	"github.com/shopspring/decimal"

	"kosan/shared/model"
)

const (
	TableName  = "invoices"
	EntityName = "invoice"

	FieldID           = "id"
	FieldContractID   = "contract_id"
	FieldBranchID     = "branch_id"
	FieldAmount       = "amount"
	FieldBillingMonth = "billing_month"
	FieldDueDate      = "due_date"
	FieldStatus       = "status"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// Invoice is one monthly bill for a contract. billing_month is the canonical billing
// key; due_date is a payment/display field. At most one live invoice per
// (contract, billing_month).
type Invoice struct {
	ID           string          `db:"id"`
	ContractID   string          `db:"contract_id"`
	BranchID     string          `db:"branch_id"`
	Amount       decimal.Decimal `db:"amount"`
	BillingMonth string          `db:"billing_month"`
	DueDate      time.Time       `db:"due_date"`
	Status       string          `db:"status"`
	model.SoftDelete
	model.Metadata
}

const (
	PaymentTableName  = "payments"
	PaymentEntityName = "payment"

	FieldPaymentDate = "payment_date"
)

// Payment mirrors an invoice that reached paid status, keyed by (contract, due_date).
type Payment struct {
	ID          string          `db:"id"`
	ContractID  string          `db:"contract_id"`
	Amount      decimal.Decimal `db:"amount"`
	DueDate     time.Time       `db:"due_date"`
	PaymentDate time.Time       `db:"payment_date"`
	Status      string          `db:"status"`
	model.Metadata
}

// BillingLine is one itemized component of an invoice amount: the synthetic room-price
// line followed by one line per metered service.
type BillingLine struct {
	ServiceID   string          `json:"service_id,omitempty"`
	ServiceName string          `json:"service_name"`
	UsageAmount decimal.Decimal `json:"usage_amount"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineAmount  decimal.Decimal `json:"line_amount"`
}
