package model

import "kosan/shared/model"

const (
	TableName  = "branches"
	EntityName = "branch"

	FieldID      = "id"
	FieldOwnerID = "owner_id"
	FieldName    = "name"
	FieldAddress = "address"
	FieldPhone   = "phone"
)

type Branch struct {
	ID      string `db:"id"`
	OwnerID string `db:"owner_id"`
	Name    string `db:"name"`
	Address string `db:"address"`
	Phone   string `db:"phone"`
	model.SoftDelete
	model.Metadata
}

const (
	AssignmentTableName  = "employee_assignments"
	AssignmentEntityName = "employee_assignment"

	FieldEmployeeID = "employee_id"
	FieldBranchID   = "branch_id"
)

// EmployeeAssignment grants an employee scope over one branch. An employee may hold
// assignments to several branches.
type EmployeeAssignment struct {
	ID         string `db:"id"`
	EmployeeID string `db:"employee_id"`
	BranchID   string `db:"branch_id"`
	model.Metadata
}

const (
	CustomerTableName  = "branch_customers"
	CustomerEntityName = "branch_customer"

	FieldUserID = "user_id"
)

// BranchCustomer associates a customer with a branch, independent of any contract.
type BranchCustomer struct {
	ID       string `db:"id"`
	BranchID string `db:"branch_id"`
	UserID   string `db:"user_id"`
	model.Metadata
}
