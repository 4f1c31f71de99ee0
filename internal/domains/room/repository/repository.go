package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"kosan/infras/otel"
	"kosan/infras/postgres"
	"kosan/internal/domains/room/model"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/logger"
	gRepo "kosan/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	SoftDelete(ctx context.Context, filter gDto.FilterGroup, now any) error
	ListIDsByBranches(ctx context.Context, branchIDs []string) ([]string, error)
}

type roomImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &roomImpl{
		Repository: gRepo.NewSoftDeleteRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ListIDsByBranches returns the live room ids of the given branches, used to narrow
// room-keyed rows (utility usages) to a branch scope.
func (repo *roomImpl) ListIDsByBranches(ctx context.Context, branchIDs []string) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.ListIDsByBranches")
	defer scope.End()

	ids := []string{}

	if len(branchIDs) == 0 {
		return ids, nil
	}

	query, args, err := sqlx.In("SELECT id FROM rooms WHERE branch_id IN (?) AND deleted_at IS NULL", branchIDs)
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

		return nil, fmt.Errorf("failed to list room ids by branches (%s): %w", model.EntityName, err)
	}

	return ids, nil
}

type RoomType interface {
	Insert(ctx context.Context, model model.RoomType) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomType, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	SoftDelete(ctx context.Context, filter gDto.FilterGroup, now any) error
}

type roomTypeImpl struct {
	gRepo.Repository[model.RoomType]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRoomType(db *postgres.Connection, otel otel.Otel) RoomType {
	return &roomTypeImpl{
		Repository: gRepo.NewSoftDeleteRepository[model.RoomType](model.TypeEntityName, model.TypeTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type Occupant interface {
	Insert(ctx context.Context, model model.RoomOccupant) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.RoomOccupant) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomOccupant, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type occupantImpl struct {
	gRepo.Repository[model.RoomOccupant]
	db   *postgres.Connection
	otel otel.Otel
}

func NewOccupant(db *postgres.Connection, otel otel.Otel) Occupant {
	return &occupantImpl{
		Repository: gRepo.NewRepository[model.RoomOccupant](model.OccupantEntityName, model.OccupantTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
