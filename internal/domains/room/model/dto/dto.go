package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kosan/internal/domains/room/model"
	"kosan/shared"
	gDto "kosan/shared/dto"
	gModel "kosan/shared/model"
	"kosan/shared/timezone"
)

type CreateRoomRequest struct {
	BranchID string          `json:"branch_id" validate:"required,uuid"`
	TypeID   string          `json:"type_id"   validate:"omitempty,uuid"`
	Price    decimal.Decimal `json:"price"     validate:"required"`
	Status   string          `json:"status"    validate:"omitempty,oneof=available occupied maintenance"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	return model.Room{
		ID:       uuid.NewString(),
		BranchID: c.BranchID,
		TypeID:   c.TypeID,
		Price:    c.Price,
		Status:   status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	TypeID string           `db:"type_id" json:"type_id" validate:"omitempty,uuid"`
	Price  *decimal.Decimal `db:"price"   json:"price"   validate:"omitempty"`
	Status string           `db:"status"  json:"status"  validate:"omitempty,oneof=available occupied maintenance"`
}

type RoomResponse struct {
	ID       string          `json:"id"`
	BranchID string          `json:"branch_id"`
	TypeID   string          `json:"type_id,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Status   string          `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.BranchID = model.BranchID
	r.TypeID = model.TypeID
	r.Price = model.Price
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type CreateRoomTypeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (c *CreateRoomTypeRequest) ToModel(user string) model.RoomType {
	return model.RoomType{
		ID:   uuid.NewString(),
		Name: c.Name,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type RoomTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.Name = model.Name
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType) {
	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}
