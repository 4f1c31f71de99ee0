package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kosan/internal/domains/utility/model"
	"kosan/shared"
	gDto "kosan/shared/dto"
	gModel "kosan/shared/model"
	"kosan/shared/timezone"
)

type CreateServiceRequest struct {
	Name         string          `json:"name"          validate:"required,max=100"`
	Type         string          `json:"type"          validate:"required,oneof=electricity water other"`
	Unit         string          `json:"unit"          validate:"required,max=20"`
	DefaultPrice decimal.Decimal `json:"default_price" validate:"required"`
}

func (c *CreateServiceRequest) ToModel(user string) model.Service {
	return model.Service{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Type:         c.Type,
		Unit:         c.Unit,
		DefaultPrice: c.DefaultPrice,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateServiceRequest struct {
	Name         string           `db:"name"          json:"name"          validate:"omitempty,max=100"`
	Type         string           `db:"type"          json:"type"          validate:"omitempty,oneof=electricity water other"`
	Unit         string           `db:"unit"          json:"unit"          validate:"omitempty,max=20"`
	DefaultPrice *decimal.Decimal `db:"default_price" json:"default_price" validate:"omitempty"`
}

type ServiceResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Unit         string          `json:"unit"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.Unit = model.Unit
	r.DefaultPrice = model.DefaultPrice
	r.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

type SetBranchDefaultRequest struct {
	CustomPrice decimal.Decimal `json:"custom_price" validate:"required"`
}

type BranchDefaultResponse struct {
	ID          string          `json:"id"`
	BranchID    string          `json:"branch_id"`
	ServiceID   string          `json:"service_id"`
	CustomPrice decimal.Decimal `json:"custom_price"`
}

func (r *BranchDefaultResponse) FromModel(model model.BranchServiceDefault) {
	r.ID = model.ID
	r.BranchID = model.BranchID
	r.ServiceID = model.ServiceID
	r.CustomPrice = model.CustomPrice
}

type CreateUsageRequest struct {
	RoomID      string          `json:"room_id"      validate:"required,uuid"`
	ServiceID   string          `json:"service_id"   validate:"required,uuid"`
	Month       string          `json:"month"        validate:"required,month"`
	OldReading  decimal.Decimal `json:"old_reading"  validate:"omitempty"`
	NewReading  decimal.Decimal `json:"new_reading"  validate:"omitempty"`
	UsageAmount decimal.Decimal `json:"usage_amount" validate:"omitempty"`
}

func (c *CreateUsageRequest) ToModel(user string) model.UtilityUsage {
	return model.UtilityUsage{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		ServiceID:   c.ServiceID,
		Month:       c.Month,
		OldReading:  c.OldReading,
		NewReading:  c.NewReading,
		UsageAmount: c.UsageAmount,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateUsageRequest struct {
	OldReading  *decimal.Decimal `db:"old_reading"  json:"old_reading"  validate:"omitempty"`
	NewReading  *decimal.Decimal `db:"new_reading"  json:"new_reading"  validate:"omitempty"`
	UsageAmount *decimal.Decimal `db:"usage_amount" json:"usage_amount" validate:"omitempty"`
}

type UsageResponse struct {
	ID          string          `json:"id"`
	RoomID      string          `json:"room_id"`
	ServiceID   string          `json:"service_id"`
	Month       string          `json:"month"`
	OldReading  decimal.Decimal `json:"old_reading"`
	NewReading  decimal.Decimal `json:"new_reading"`
	UsageAmount decimal.Decimal `json:"usage_amount"`
	gDto.Metadata
}

func (r *UsageResponse) FromModel(model model.UtilityUsage) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.ServiceID = model.ServiceID
	r.Month = model.Month
	r.OldReading = model.OldReading
	r.NewReading = model.NewReading
	r.UsageAmount = model.UsageAmount
	r.Metadata.FromModel(model.Metadata)
}

type GetUsagesResponse struct {
	Usages    []UsageResponse `json:"usages"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetUsagesResponse) FromModels(models []model.UtilityUsage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Usages = make([]UsageResponse, len(models))
	for i, mod := range models {
		r.Usages[i].FromModel(mod)
	}
}
