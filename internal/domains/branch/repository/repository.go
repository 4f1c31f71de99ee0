package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"kosan/infras/otel"
	"kosan/infras/postgres"
	"kosan/internal/domains/branch/model"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/logger"
	gRepo "kosan/shared/repository"
)

type Branch interface {
	Insert(ctx context.Context, model model.Branch) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Branch, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Branch, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	SoftDelete(ctx context.Context, filter gDto.FilterGroup, now any) error
	ListOwnedBranchIDs(ctx context.Context, ownerID string) ([]string, error)
	ListBranchUserIDs(ctx context.Context, branchIDs []string) ([]string, error)
}

type branchImpl struct {
	gRepo.Repository[model.Branch]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Branch {
	return &branchImpl{
		Repository: gRepo.NewSoftDeleteRepository[model.Branch](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *branchImpl) ListOwnedBranchIDs(ctx context.Context, ownerID string) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".branch.ListOwnedBranchIDs")
	defer scope.End()

	query := "SELECT id FROM branches WHERE owner_id = $1 AND deleted_at IS NULL"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	ids := []string{}

	if err := repo.db.Read.SelectContext(ctx, &ids, query, ownerID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list owned branches (%s): %w", model.EntityName, err)
	}

	return ids, nil
}

func (repo *branchImpl) ListBranchUserIDs(ctx context.Context, branchIDs []string) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".branch.ListBranchUserIDs")
	defer scope.End()

	if len(branchIDs) == 0 {
		return []string{}, nil
	}

	query := `SELECT employee_id AS user_id FROM employee_assignments WHERE branch_id IN (?)
		UNION SELECT user_id FROM branch_customers WHERE branch_id IN (?)`

	query, args, err := sqlx.In(query, branchIDs, branchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to expand branch ids: %w", err)
	}

	query = repo.db.Read.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	ids := []string{}

	if err := repo.db.Read.SelectContext(ctx, &ids, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list branch users (%s): %w", model.EntityName, err)
	}

	return ids, nil
}

type Assignment interface {
	Insert(ctx context.Context, model model.EmployeeAssignment) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.EmployeeAssignment, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ListAssignedBranchIDs(ctx context.Context, employeeID string) ([]string, error)
}

type assignmentImpl struct {
	gRepo.Repository[model.EmployeeAssignment]
	db   *postgres.Connection
	otel otel.Otel
}

func NewAssignment(db *postgres.Connection, otel otel.Otel) Assignment {
	return &assignmentImpl{
		Repository: gRepo.NewRepository[model.EmployeeAssignment](model.AssignmentEntityName, model.AssignmentTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *assignmentImpl) ListAssignedBranchIDs(ctx context.Context, employeeID string) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".employee_assignment.ListAssignedBranchIDs")
	defer scope.End()

	query := "SELECT branch_id FROM employee_assignments WHERE employee_id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	ids := []string{}

	if err := repo.db.Read.SelectContext(ctx, &ids, query, employeeID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list assigned branches (%s): %w", model.AssignmentEntityName, err)
	}

	return ids, nil
}

type Customer interface {
	Insert(ctx context.Context, model model.BranchCustomer) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BranchCustomer, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type customerImpl struct {
	gRepo.Repository[model.BranchCustomer]
	db   *postgres.Connection
	otel otel.Otel
}

func NewCustomer(db *postgres.Connection, otel otel.Otel) Customer {
	return &customerImpl{
		Repository: gRepo.NewRepository[model.BranchCustomer](model.CustomerEntityName, model.CustomerTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
