package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kosan/internal/domains/invoice/model"
	"kosan/shared"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	gModel "kosan/shared/model"
	"kosan/shared/timezone"
)

type CreateInvoiceRequest struct {
	ContractID string          `json:"contract_id" validate:"required,uuid"`
	BranchID   string          `json:"branch_id"   validate:"required,uuid"`
	Amount     decimal.Decimal `json:"amount"      validate:"required"`
	DueDate    string          `json:"due_date"    validate:"required,dateonly"`
	Status     string          `json:"status"      validate:"omitempty,oneof=pending paid overdue"`
}

func (c *CreateInvoiceRequest) ToModel(user string) (model.Invoice, error) {
	dueDate, err := time.Parse(constant.DateOnlyFormat, c.DueDate)
	if err != nil {
		return model.Invoice{}, err
	}

	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	return model.Invoice{
		ID:           uuid.NewString(),
		ContractID:   c.ContractID,
		BranchID:     c.BranchID,
		Amount:       c.Amount,
		BillingMonth: shared.MonthOf(dueDate),
		DueDate:      dueDate,
		Status:       status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateInvoiceRequest struct {
	Amount  *decimal.Decimal `db:"amount" json:"amount"   validate:"omitempty"`
	DueDate string           `json:"due_date" validate:"omitempty,dateonly"`
	Status  string           `db:"status" json:"status"   validate:"omitempty,oneof=pending paid overdue"`
}

type BulkGenerateRequest struct {
	BranchID string `json:"branch_id" validate:"required,uuid"`
	Month    string `json:"month"     validate:"required,month"`
	DueDate  string `json:"due_date"  validate:"required,dateonly"`
}

type InvoiceResponse struct {
	ID           string          `json:"id"`
	ContractID   string          `json:"contract_id"`
	BranchID     string          `json:"branch_id"`
	Amount       decimal.Decimal `json:"amount"`
	BillingMonth string          `json:"billing_month"`
	DueDate      string          `json:"due_date"`
	Status       string          `json:"status"`
	gDto.Metadata
}

func (r *InvoiceResponse) FromModel(model model.Invoice) {
	r.ID = model.ID
	r.ContractID = model.ContractID
	r.BranchID = model.BranchID
	r.Amount = model.Amount
	r.BillingMonth = model.BillingMonth
	r.DueDate = model.DueDate.Format(constant.DateOnlyFormat)
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

// InvoiceDetailResponse is an invoice with its itemized billing lines recomputed from
// current room price and usage data.
type InvoiceDetailResponse struct {
	InvoiceResponse
	Lines []model.BillingLine `json:"lines"`
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Invoices[i].FromModel(mod)
	}
}

// BulkGenerateResponse reports the outcome of one bulk regeneration run.
type BulkGenerateResponse struct {
	Count    int               `json:"count"`
	Created  int               `json:"created"`
	Updated  int               `json:"updated"`
	Invoices []InvoiceResponse `json:"invoices"`
}

func (r *BulkGenerateResponse) FromModels(models []model.Invoice, created int) {
	r.Count = len(models)
	r.Created = created
	r.Updated = len(models) - created

	r.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Invoices[i].FromModel(mod)
	}
}
