package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"kosan/infras/otel"
	"kosan/infras/postgres"
	"kosan/internal/domains/utility/model"
	gDto "kosan/shared/dto"
	gRepo "kosan/shared/repository"
)

type Service interface {
	Insert(ctx context.Context, model model.Service) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Service, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Service, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	SoftDelete(ctx context.Context, filter gDto.FilterGroup, now any) error
}

type serviceImpl struct {
	gRepo.Repository[model.Service]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Service {
	return &serviceImpl{
		Repository: gRepo.NewSoftDeleteRepository[model.Service](model.ServiceEntityName, model.ServiceTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type BranchDefault interface {
	Insert(ctx context.Context, model model.BranchServiceDefault) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BranchServiceDefault, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BranchServiceDefault, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	SoftDelete(ctx context.Context, filter gDto.FilterGroup, now any) error
}

type branchDefaultImpl struct {
	gRepo.Repository[model.BranchServiceDefault]
	db   *postgres.Connection
	otel otel.Otel
}

func NewBranchDefault(db *postgres.Connection, otel otel.Otel) BranchDefault {
	return &branchDefaultImpl{
		Repository: gRepo.NewSoftDeleteRepository[model.BranchServiceDefault](model.BranchDefaultEntityName, model.BranchDefaultTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type Usage interface {
	Insert(ctx context.Context, model model.UtilityUsage) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.UtilityUsage, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.UtilityUsage, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	SoftDelete(ctx context.Context, filter gDto.FilterGroup, now any) error
}

type usageImpl struct {
	gRepo.Repository[model.UtilityUsage]
	db   *postgres.Connection
	otel otel.Otel
}

func NewUsage(db *postgres.Connection, otel otel.Otel) Usage {
	return &usageImpl{
		Repository: gRepo.NewSoftDeleteRepository[model.UtilityUsage](model.UsageEntityName, model.UsageTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UsageLines reads usage rows joined to the service catalog for the billing aggregator.
type UsageLines interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.UsageLine, error)
}

type usageLinesImpl struct {
	gRepo.Repository[model.UsageLine]
	db   *postgres.Connection
	otel otel.Otel
}

func NewUsageLines(db *postgres.Connection, otel otel.Otel) UsageLines {
	return &usageLinesImpl{
		Repository: gRepo.NewSoftDeleteRepository[model.UsageLine](model.UsageEntityName, model.UsageTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
