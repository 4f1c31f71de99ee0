package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}

// SoftDelete marks a row as logically removed; repositories built with
// NewSoftDeleteRepository exclude rows where it is set.
type SoftDelete struct {
	DeletedAt *time.Time `db:"deleted_at"`
}
