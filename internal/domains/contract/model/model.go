package model

import (
	"time"

	"github.com/shopspring/decimal"

	"kosan/shared/model"
)

const (
	TableName  = "contracts"
	EntityName = "contract"

	FieldID        = "id"
	FieldRoomID    = "room_id"
	FieldUserID    = "user_id"
	FieldBranchID  = "branch_id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldStatus    = "status"
	FieldDeposit   = "deposit"
)

// Canonical status set. Legacy call sites also used "expired" and "terminated"; those
// map onto ended and cancelled at the dto boundary.
const (
	StatusActive    = "active"
	StatusEnded     = "ended"
	StatusCancelled = "cancelled"
)

// CanonicalStatus maps the legacy status vocabulary onto the canonical enum. Unknown
// values pass through untouched so validation can reject them.
func CanonicalStatus(status string) string {
	switch status {
	case "expired":
		return StatusEnded
	case "terminated":
		return StatusCancelled
	default:
		return status
	}
}

type Contract struct {
	ID        string          `db:"id"`
	RoomID    string          `db:"room_id"`
	UserID    string          `db:"user_id"`
	BranchID  string          `db:"branch_id"`
	StartDate time.Time       `db:"start_date"`
	EndDate   time.Time       `db:"end_date"`
	Status    string          `db:"status"`
	Deposit   decimal.Decimal `db:"deposit"`
	model.SoftDelete
	model.Metadata
}
