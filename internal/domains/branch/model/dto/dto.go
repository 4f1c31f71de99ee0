package dto

import (
	"github.com/google/uuid"

	"kosan/internal/domains/branch/model"
	"kosan/shared"
	gDto "kosan/shared/dto"
	gModel "kosan/shared/model"
	"kosan/shared/timezone"
)

type CreateBranchRequest struct {
	OwnerID string `json:"owner_id" validate:"omitempty,uuid"`
	Name    string `json:"name"     validate:"required,max=100"`
	Address string `json:"address"  validate:"required,max=255"`
	Phone   string `json:"phone"    validate:"omitempty,max=20"`
}

func (c *CreateBranchRequest) ToModel(user, ownerID string) model.Branch {
	return model.Branch{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBranchRequest struct {
	Name    string `db:"name"    json:"name"    validate:"omitempty,max=100"`
	Address string `db:"address" json:"address" validate:"omitempty,max=255"`
	Phone   string `db:"phone"   json:"phone"   validate:"omitempty,max=20"`
}

type AssignEmployeeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
}

type AttachCustomerRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

type BranchResponse struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	gDto.Metadata
}

func (r *BranchResponse) FromModel(model model.Branch) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Name = model.Name
	r.Address = model.Address
	r.Phone = model.Phone
	r.Metadata.FromModel(model.Metadata)
}

type GetBranchesResponse struct {
	Branches  []BranchResponse `json:"branches"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetBranchesResponse) FromModels(models []model.Branch, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Branches = make([]BranchResponse, len(models))
	for i, mod := range models {
		r.Branches[i].FromModel(mod)
	}
}
