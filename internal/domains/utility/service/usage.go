package service

//go:generate go run go.uber.org/mock/mockgen -source=./usage.go -destination=../mocks/usage_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"kosan/config"
	"kosan/infras/otel"
	"kosan/internal/access"
	contractRepo "kosan/internal/domains/contract/repository"
	roomModel "kosan/internal/domains/room/model"
	roomRepo "kosan/internal/domains/room/repository"
	"kosan/internal/domains/utility/model"
	"kosan/internal/domains/utility/model/dto"
	"kosan/internal/domains/utility/repository"
	"kosan/shared"
	"kosan/shared/cache"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/failure"
	"kosan/shared/timezone"
)

const (
	cacheGetUsage    = "usage:get"
	cacheGetAllUsage = "usage:gets"
	cacheCountUsage  = "usage:count"
)

// readingTolerance bounds the accepted drift between usage_amount and
// new_reading - old_reading on input. Invoice totals never apply it.
var readingTolerance = decimal.NewFromFloat(0.01)

type Usage interface {
	Create(ctx context.Context, req dto.CreateUsageRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UsageResponse, error)
	Update(ctx context.Context, req dto.UpdateUsageRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type usageImpl struct {
	repo         repository.Usage
	roomRepo     roomRepo.Room
	serviceRepo  repository.Service
	contractRepo contractRepo.Contract
	resolver     access.Resolver
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func NewUsage(
	repo repository.Usage,
	roomRepo roomRepo.Room,
	serviceRepo repository.Service,
	contractRepo contractRepo.Contract,
	resolver access.Resolver,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Usage {
	return &usageImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		serviceRepo:  serviceRepo,
		contractRepo: contractRepo,
		resolver:     resolver,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// validateReadings enforces the meter-reading invariant: non-negative values,
// new >= old, and usage within tolerance of the reading delta.
func validateReadings(oldReading, newReading, usageAmount decimal.Decimal) error {
	if oldReading.IsNegative() || newReading.IsNegative() || usageAmount.IsNegative() {
		return failure.BadRequestFromString("readings and usage amount must not be negative") // nolint:wrapcheck
	}

	if newReading.LessThan(oldReading) {
		return failure.BadRequestFromString("new reading must not be less than old reading") // nolint:wrapcheck
	}

	diff := usageAmount.Sub(newReading.Sub(oldReading)).Abs()
	if diff.GreaterThan(readingTolerance) {
		return failure.BadRequestFromString("usage amount does not match the reading delta") // nolint:wrapcheck
	}

	return nil
}

func (s *usageImpl) Create(ctx context.Context, req dto.CreateUsageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".usage.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := access.ActorFromContext(ctx)

	userScope, err := s.resolver.Resolve(ctx, actor, access.ResourceUsage)
	if err != nil {
		return err
	}

	if userScope.ContractIDs != nil {
		return failure.Forbidden("recording usage requires branch scope") // nolint:wrapcheck
	}

	if err = validateReadings(req.OldReading, req.NewReading, req.UsageAmount); err != nil {
		return err
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for usage")

		return fmt.Errorf("failed to get room for usage: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	if !userScope.AllowsBranch(room.BranchID) {
		return failure.Forbidden("room is outside your scope") // nolint:wrapcheck
	}

	svcExists, err := s.serviceRepo.Exist(ctx, shared.FilterByID(req.ServiceID, model.FieldID, model.ServiceTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !svcExists {
		return failure.BadRequestFromString("service does not exist") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(actor.ID)); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("a usage row already exists for this room, service and month") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create usage")

		return fmt.Errorf("failed to create usage: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUsage)
		shared.InvalidateCaches(c, s.cache, cacheCountUsage)
	}()

	return nil
}

func (s *usageImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".usage.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	scoped, err := s.scopedFilter(ctx, filter)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUsage, req, scoped)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for usages")

		return res, nil
	}

	total, err := s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count usages")

		return res, fmt.Errorf("failed to count usages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get usages")

		return res, fmt.Errorf("failed to get usages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save usages to cache")
		}
	}()

	return res, nil
}

func (s *usageImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".usage.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	scoped, err := s.scopedFilter(ctx, filter)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUsage, req, scoped)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for usage count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count usages")

		return res, fmt.Errorf("failed to count usages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save usage count to cache")
		}
	}()

	return res, nil
}

func (s *usageImpl) Get(ctx context.Context, id string) (res dto.UsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".usage.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	usage, err := s.getInScope(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(usage)

	return res, nil
}

func (s *usageImpl) Update(ctx context.Context, req dto.UpdateUsageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".usage.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateUsageRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor := access.ActorFromContext(ctx)

	usage, err := s.getInScope(ctx, id)
	if err != nil {
		return err
	}

	// Revalidate the invariant against the merged row, not just the patch.
	oldReading := usage.OldReading
	if req.OldReading != nil {
		oldReading = *req.OldReading
	}

	newReading := usage.NewReading
	if req.NewReading != nil {
		newReading = *req.NewReading
	}

	usageAmount := usage.UsageAmount
	if req.UsageAmount != nil {
		usageAmount = *req.UsageAmount
	}

	if err = validateReadings(oldReading, newReading, usageAmount); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.ID), shared.FilterByID(id, model.FieldID, model.UsageTableName)); err != nil {
		log.Error().Err(err).Msg("failed to update usage")

		return fmt.Errorf("failed to update usage: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUsage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete usage from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUsage)
		shared.InvalidateCaches(c, s.cache, cacheCountUsage)
	}()

	return nil
}

func (s *usageImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".usage.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getInScope(ctx, id); err != nil {
		return err
	}

	if err = s.repo.SoftDelete(ctx, shared.FilterByID(id, model.FieldID, model.UsageTableName), timezone.Now()); err != nil {
		log.Error().Err(err).Msg("failed to delete usage")

		return fmt.Errorf("failed to delete usage: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUsage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete usage from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUsage)
		shared.InvalidateCaches(c, s.cache, cacheCountUsage)
	}()

	return nil
}

// scopedFilter projects the actor's scope onto room ids, since usage rows carry
// neither branch_id nor contract_id.
func (s *usageImpl) scopedFilter(ctx context.Context, filter gDto.FilterGroup) (gDto.FilterGroup, error) {
	userScope, err := s.resolver.Resolve(ctx, access.ActorFromContext(ctx), access.ResourceUsage)
	if err != nil {
		return gDto.FilterGroup{}, err
	}

	if userScope.All {
		return filter, nil
	}

	roomIDs, err := s.scopeRoomIDs(ctx, userScope)
	if err != nil {
		return gDto.FilterGroup{}, err
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			access.IDFilter(model.UsageTableName, model.FieldRoomID, roomIDs),
			filter,
		},
	}, nil
}

func (s *usageImpl) scopeRoomIDs(ctx context.Context, userScope access.Scope) ([]string, error) {
	if userScope.ContractIDs != nil {
		ids, err := s.contractRepo.ListRoomIDs(ctx, userScope.ContractIDs)
		if err != nil {
			log.Error().Err(err).Msg("failed to list rooms for contract scope")

			return nil, fmt.Errorf("failed to list rooms for contract scope: %w", err)
		}

		return ids, nil
	}

	ids, err := s.roomRepo.ListIDsByBranches(ctx, userScope.BranchIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to list rooms for branch scope")

		return nil, fmt.Errorf("failed to list rooms for branch scope: %w", err)
	}

	return ids, nil
}

func (s *usageImpl) getInScope(ctx context.Context, id string) (model.UtilityUsage, error) {
	userScope, err := s.resolver.Resolve(ctx, access.ActorFromContext(ctx), access.ResourceUsage)
	if err != nil {
		return model.UtilityUsage{}, err
	}

	usage, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.UsageTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get usage")

		return model.UtilityUsage{}, fmt.Errorf("failed to get usage: %w", err)
	}

	if usage.ID == constant.Empty {
		return model.UtilityUsage{}, failure.NotFound("usage") // nolint:wrapcheck
	}

	if !userScope.All {
		roomIDs, err := s.scopeRoomIDs(ctx, userScope)
		if err != nil {
			return model.UtilityUsage{}, err
		}

		if !slices.Contains(roomIDs, usage.RoomID) {
			return model.UtilityUsage{}, failure.NotFound("usage") // nolint:wrapcheck
		}
	}

	return usage, nil
}
