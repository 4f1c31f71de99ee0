package model

import "kosan/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldRole     = "role"
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldStatus   = "status"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID       string `db:"id"`
	Role     string `db:"role"`
	Username string `db:"username"`
	Email    string `db:"email"`
	Password string `db:"password"`
	Status   string `db:"status"`
	model.Metadata
}
