package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kosan/internal/domains/contract/model"
	"kosan/shared"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	gModel "kosan/shared/model"
	"kosan/shared/timezone"
)

type CreateContractRequest struct {
	RoomID    string          `json:"room_id"    validate:"required,uuid"`
	UserID    string          `json:"user_id"    validate:"required,uuid"`
	StartDate string          `json:"start_date" validate:"required,dateonly"`
	EndDate   string          `json:"end_date"   validate:"required,dateonly"`
	Deposit   decimal.Decimal `json:"deposit"    validate:"omitempty"`
	Status    string          `json:"status"     validate:"omitempty,oneof=active ended cancelled expired terminated"`
}

func (c *CreateContractRequest) ToModel(user, branchID string) (model.Contract, error) {
	startDate, err := time.Parse(constant.DateOnlyFormat, c.StartDate)
	if err != nil {
		return model.Contract{}, err
	}

	endDate, err := time.Parse(constant.DateOnlyFormat, c.EndDate)
	if err != nil {
		return model.Contract{}, err
	}

	status := model.StatusActive
	if c.Status != "" {
		status = model.CanonicalStatus(c.Status)
	}

	return model.Contract{
		ID:        uuid.NewString(),
		RoomID:    c.RoomID,
		UserID:    c.UserID,
		BranchID:  branchID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
		Deposit:   c.Deposit,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateContractRequest struct {
	Status  string `json:"status"   validate:"omitempty,oneof=active ended cancelled expired terminated"`
	EndDate string `json:"end_date" validate:"omitempty,dateonly"`
}

type ContractResponse struct {
	ID        string          `json:"id"`
	RoomID    string          `json:"room_id"`
	UserID    string          `json:"user_id"`
	BranchID  string          `json:"branch_id"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Status    string          `json:"status"`
	Deposit   decimal.Decimal `json:"deposit"`
	gDto.Metadata
}

func (r *ContractResponse) FromModel(model model.Contract) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.UserID = model.UserID
	r.BranchID = model.BranchID
	r.StartDate = model.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = model.EndDate.Format(constant.DateOnlyFormat)
	r.Status = model.Status
	r.Deposit = model.Deposit
	r.Metadata.FromModel(model.Metadata)
}

type GetContractsResponse struct {
	Contracts []ContractResponse `json:"contracts"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetContractsResponse) FromModels(models []model.Contract, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Contracts = make([]ContractResponse, len(models))
	for i, mod := range models {
		r.Contracts[i].FromModel(mod)
	}
}
