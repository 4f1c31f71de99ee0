package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"kosan/infras/otel"
	"kosan/infras/postgres"
	"kosan/internal/domains/contract/model"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/logger"
	gRepo "kosan/shared/repository"
)

type Contract interface {
	Insert(ctx context.Context, model model.Contract) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Contract) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Contract, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Contract, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	SoftDelete(ctx context.Context, filter gDto.FilterGroup, now any) error
	ListUserContractIDs(ctx context.Context, userID string) ([]string, error)
	ListRoomIDs(ctx context.Context, contractIDs []string) ([]string, error)
	ListCoOccupantUserIDs(ctx context.Context, userID string) ([]string, error)
	ListBillableByBranchMonth(ctx context.Context, branchID, month string) ([]model.Contract, error)
}

type contractImpl struct {
	gRepo.Repository[model.Contract]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Contract {
	return &contractImpl{
		Repository: gRepo.NewSoftDeleteRepository[model.Contract](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *contractImpl) ListUserContractIDs(ctx context.Context, userID string) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".contract.ListUserContractIDs")
	defer scope.End()

	query := "SELECT id FROM contracts WHERE user_id = $1 AND deleted_at IS NULL"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	ids := []string{}

	if err := repo.db.Read.SelectContext(ctx, &ids, query, userID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list user contracts (%s): %w", model.EntityName, err)
	}

	return ids, nil
}

// ListRoomIDs maps a contract scope onto the rooms it covers.
func (repo *contractImpl) ListRoomIDs(ctx context.Context, contractIDs []string) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".contract.ListRoomIDs")
	defer scope.End()

	ids := []string{}

	if len(contractIDs) == 0 {
		return ids, nil
	}

	query, args, err := sqlx.In("SELECT DISTINCT room_id FROM contracts WHERE id IN (?) AND deleted_at IS NULL", contractIDs)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build room id query (%s): %w", model.EntityName, err)
	}

	query = repo.db.Read.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err := repo.db.Read.SelectContext(ctx, &ids, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list room ids by contracts (%s): %w", model.EntityName, err)
	}

	return ids, nil
}

func (repo *contractImpl) ListCoOccupantUserIDs(ctx context.Context, userID string) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".contract.ListCoOccupantUserIDs")
	defer scope.End()

	query := `SELECT DISTINCT other.user_id
		FROM room_occupants own
		JOIN room_occupants other ON other.room_id = own.room_id
		WHERE own.user_id = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	ids := []string{}

	if err := repo.db.Read.SelectContext(ctx, &ids, query, userID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list co-occupants (%s): %w", model.EntityName, err)
	}

	return ids, nil
}

// ListBillableByBranchMonth selects the contracts eligible for bulk invoice generation:
// occupied rooms of the branch, a contract whose date range covers the month, and a live
// electricity usage row for (room, month) — rooms without an electricity reading are
// skipped entirely.
func (repo *contractImpl) ListBillableByBranchMonth(ctx context.Context, branchID, month string) ([]model.Contract, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".contract.ListBillableByBranchMonth")
	defer scope.End()

	query := `SELECT contracts.* FROM contracts
		JOIN rooms ON rooms.id = contracts.room_id
		WHERE rooms.branch_id = $1
		  AND rooms.status = 'occupied'
		  AND rooms.deleted_at IS NULL
		  AND contracts.deleted_at IS NULL
		  AND contracts.status IN ('active', 'ended', 'cancelled')
		  AND to_char(contracts.start_date, 'YYYY-MM') <= $2
		  AND to_char(contracts.end_date, 'YYYY-MM') >= $2
		  AND EXISTS (
			SELECT 1 FROM utility_usages
			JOIN services ON services.id = utility_usages.service_id
			WHERE utility_usages.room_id = contracts.room_id
			  AND utility_usages.month = $2
			  AND utility_usages.deleted_at IS NULL
			  AND services.type = 'electricity'
		  )
		ORDER BY contracts.created_at`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	contracts := []model.Contract{}

	if err := repo.db.Read.SelectContext(ctx, &contracts, query, branchID, month); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list billable contracts (%s): %w", model.EntityName, err)
	}

	return contracts, nil
}
