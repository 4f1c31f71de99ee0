package model

import (
	"github.com/shopspring/decimal"

	"kosan/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID       = "id"
	FieldBranchID = "branch_id"
	FieldTypeID   = "type_id"
	FieldPrice    = "price"
	FieldStatus   = "status"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

type Room struct {
	ID       string          `db:"id"`
	BranchID string          `db:"branch_id"`
	TypeID   string          `db:"type_id"`
	Price    decimal.Decimal `db:"price"`
	Status   string          `db:"status"`
	model.SoftDelete
	model.Metadata
}

const (
	TypeTableName  = "room_types"
	TypeEntityName = "room_type"

	FieldName = "name"
)

type RoomType struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.SoftDelete
	model.Metadata
}

const (
	OccupantTableName  = "room_occupants"
	OccupantEntityName = "room_occupant"

	FieldRoomID     = "room_id"
	FieldUserID     = "user_id"
	FieldContractID = "contract_id"
)

// RoomOccupant records who currently lives in a room; customers derive their
// co-occupant visibility from rows sharing a room.
type RoomOccupant struct {
	ID         string `db:"id"`
	RoomID     string `db:"room_id"`
	UserID     string `db:"user_id"`
	ContractID string `db:"contract_id"`
	model.Metadata
}
