package model

import (
	"github.com/shopspring/decimal"

	"kosan/shared/model"
)

const (
	ServiceTableName  = "services"
	ServiceEntityName = "service"

	FieldID           = "id"
	FieldName         = "name"
	FieldType         = "type"
	FieldUnit         = "unit"
	FieldDefaultPrice = "default_price"
)

const (
	ServiceTypeElectricity = "electricity"
	ServiceTypeWater       = "water"
	ServiceTypeOther       = "other"
)

// Service is a billable utility (electricity, water, ...) with a catalog-wide unit price.
type Service struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	Type         string          `db:"type"`
	Unit         string          `db:"unit"`
	DefaultPrice decimal.Decimal `db:"default_price"`
	model.SoftDelete
	model.Metadata
}

const (
	BranchDefaultTableName  = "branch_service_defaults"
	BranchDefaultEntityName = "branch_service_default"

	FieldBranchID    = "branch_id"
	FieldServiceID   = "service_id"
	FieldCustomPrice = "custom_price"
)

// BranchServiceDefault overrides a service's unit price for one branch. At most one
// live row per (branch, service).
type BranchServiceDefault struct {
	ID          string          `db:"id"`
	BranchID    string          `db:"branch_id"`
	ServiceID   string          `db:"service_id"`
	CustomPrice decimal.Decimal `db:"custom_price"`
	model.SoftDelete
	model.Metadata
}

const (
	UsageTableName  = "utility_usages"
	UsageEntityName = "utility_usage"

	FieldRoomID      = "room_id"
	FieldMonth       = "month"
	FieldOldReading  = "old_reading"
	FieldNewReading  = "new_reading"
	FieldUsageAmount = "usage_amount"
)

// UtilityUsage is one metered reading for a room, service and month. The
// (room, service, month) slot is unique among live rows.
type UtilityUsage struct {
	ID          string          `db:"id"`
	RoomID      string          `db:"room_id"`
	ServiceID   string          `db:"service_id"`
	Month       string          `db:"month"`
	OldReading  decimal.Decimal `db:"old_reading"`
	NewReading  decimal.Decimal `db:"new_reading"`
	UsageAmount decimal.Decimal `db:"usage_amount"`
	model.SoftDelete
	model.Metadata
}

// UsageLine is a usage row joined to its service, as the billing aggregator consumes it.
type UsageLine struct {
	ID          string          `db:"id"`
	RoomID      string          `db:"room_id"`
	ServiceID   string          `db:"service_id"`
	Month       string          `db:"month"`
	UsageAmount decimal.Decimal `db:"usage_amount"`
	ServiceName string          `db:"service_name" column:"name"     table:"services"`
	ServiceType string          `db:"service_type" column:"type"     table:"services"`
	Unit        string          `db:"unit"         table:"services"`
	Price       decimal.Decimal `db:"default_price" column:"default_price" table:"services"`
}

// GetJoinQuery wires UsageLine selects to the service catalog.
func (UsageLine) GetJoinQuery() string {
	return "JOIN services ON services.id = utility_usages.service_id AND services.deleted_at IS NULL"
}
