package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kosan/config"
	"kosan/infras/otel"
	"kosan/infras/postgres"
	"kosan/internal/access"
	"kosan/internal/domains/contract/model"
	"kosan/internal/domains/contract/model/dto"
	"kosan/internal/domains/contract/repository"
	roomModel "kosan/internal/domains/room/model"
	roomRepo "kosan/internal/domains/room/repository"
	userModel "kosan/internal/domains/user/model"
	userRepo "kosan/internal/domains/user/repository"
	"kosan/shared"
	"kosan/shared/cache"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/failure"
	gModel "kosan/shared/model"
	"kosan/shared/timezone"
)

const (
	cacheGetContract    = "contract:get"
	cacheGetAllContract = "contract:gets"
	cacheCountContract  = "contract:count"
)

type Contract interface {
	Create(ctx context.Context, req dto.CreateContractRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetContractsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ContractResponse, error)
	Update(ctx context.Context, req dto.UpdateContractRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Contract
	roomRepo     roomRepo.Room
	occupantRepo roomRepo.Occupant
	userRepo     userRepo.User
	resolver     access.Resolver
	db           *postgres.Connection
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Contract,
	roomRepo roomRepo.Room,
	occupantRepo roomRepo.Occupant,
	userRepo userRepo.User,
	resolver access.Resolver,
	db *postgres.Connection,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Contract {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		occupantRepo: occupantRepo,
		userRepo:     userRepo,
		resolver:     resolver,
		db:           db,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create starts a tenancy: the contract row, the room flipping to occupied, and the
// occupant row land in one transaction. A second active contract on the same room is
// rejected.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContractRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contract.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := access.ActorFromContext(ctx)

	userScope, err := s.resolver.Resolve(ctx, actor, access.ResourceContract)
	if err != nil {
		return err
	}

	if userScope.ContractIDs != nil {
		return failure.Forbidden("creating contracts requires branch scope") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for contract")

		return fmt.Errorf("failed to get room for contract: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	if !userScope.AllowsBranch(room.BranchID) {
		return failure.Forbidden("room is outside your scope") // nolint:wrapcheck
	}

	tenantExists, err := s.userRepo.Exist(ctx, shared.FilterByID(req.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !tenantExists {
		return failure.BadRequestFromString("user does not exist") // nolint:wrapcheck
	}

	contract, err := req.ToModel(actor.ID, room.BranchID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse contract request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if contract.EndDate.Before(contract.StartDate) {
		return failure.BadRequestFromString("end date must not be before start date") // nolint:wrapcheck
	}

	if contract.Deposit.IsNegative() {
		return failure.BadRequestFromString("deposit must not be negative") // nolint:wrapcheck
	}

	if contract.Status == model.StatusActive {
		activeExists, err := s.repo.Exist(ctx, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldRoomID,
					Operator: gDto.FilterOperatorEq,
					Value:    req.RoomID,
					Table:    model.TableName,
				},
				gDto.Filter{
					Field:    model.FieldStatus,
					Operator: gDto.FilterOperatorEq,
					Value:    model.StatusActive,
					Table:    model.TableName,
				},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to check for active contract")

			return fmt.Errorf("failed to check for active contract: %w", err)
		}

		if activeExists {
			return failure.Conflict("room already has an active contract") // nolint:wrapcheck
		}
	}

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	if err = s.repo.InsertTx(ctx, tx, contract); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("room already has an active contract") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create contract")

		return fmt.Errorf("failed to create contract: %w", err)
	}

	if contract.Status == model.StatusActive {
		roomFields := map[string]any{
			roomModel.FieldStatus:    roomModel.StatusOccupied,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: actor.ID,
		}

		if err = s.roomRepo.UpdateTx(ctx, tx, roomFields, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to occupy room")

			return fmt.Errorf("failed to occupy room: %w", err)
		}

		occupant := roomModel.RoomOccupant{
			ID:         uuid.NewString(),
			RoomID:     req.RoomID,
			UserID:     req.UserID,
			ContractID: contract.ID,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  actor.ID,
				ModifiedBy: actor.ID,
			},
		}

		if err = s.occupantRepo.InsertTx(ctx, tx, occupant); err != nil {
			log.Error().Err(err).Msg("failed to create room occupant")

			return fmt.Errorf("failed to create room occupant: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit contract creation")

		return fmt.Errorf("failed to commit contract creation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllContract)
		shared.InvalidateCaches(c, s.cache, cacheCountContract)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetContractsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contract.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	userScope, err := s.resolver.Resolve(ctx, access.ActorFromContext(ctx), access.ResourceContract)
	if err != nil {
		return res, err
	}

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			userScope.RowFilter(model.TableName, model.FieldBranchID, model.FieldID),
			filter,
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllContract, req, scoped)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for contracts")

		return res, nil
	}

	total, err := s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contracts")

		return res, fmt.Errorf("failed to count contracts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contracts")

		return res, fmt.Errorf("failed to get contracts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save contracts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contract.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	userScope, err := s.resolver.Resolve(ctx, access.ActorFromContext(ctx), access.ResourceContract)
	if err != nil {
		return res, err
	}

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			userScope.RowFilter(model.TableName, model.FieldBranchID, model.FieldID),
			filter,
		},
	}

	res, err = s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contracts")

		return res, fmt.Errorf("failed to count contracts: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ContractResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contract.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	contract, err := s.getInScope(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(contract)

	return res, nil
}

// Update patches contract status or end date. Moving away from active frees the room
// and removes its occupant rows.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateContractRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contract.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateContractRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor := access.ActorFromContext(ctx)

	contract, err := s.getInScope(ctx, id)
	if err != nil {
		return err
	}

	updatedFields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor.ID,
	}

	if req.EndDate != "" {
		endDate, parseErr := time.Parse(constant.DateOnlyFormat, req.EndDate)
		if parseErr != nil {
			return failure.BadRequestFromString("invalid end date format") // nolint:wrapcheck
		}

		updatedFields[model.FieldEndDate] = endDate
	}

	var newStatus string
	if req.Status != "" {
		newStatus = model.CanonicalStatus(req.Status)
		updatedFields[model.FieldStatus] = newStatus
	}

	releasing := newStatus != "" && newStatus != model.StatusActive && contract.Status == model.StatusActive

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	if err = s.repo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("room already has an active contract") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update contract")

		return fmt.Errorf("failed to update contract: %w", err)
	}

	if releasing {
		roomFields := map[string]any{
			roomModel.FieldStatus:    roomModel.StatusAvailable,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: actor.ID,
		}

		if err = s.roomRepo.UpdateTx(ctx, tx, roomFields, shared.FilterByID(contract.RoomID, roomModel.FieldID, roomModel.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to release room")

			return fmt.Errorf("failed to release room: %w", err)
		}

		occupantFilter := shared.FilterByID(id, roomModel.FieldContractID, roomModel.OccupantTableName)
		if err = s.occupantRepo.DeleteTx(ctx, tx, occupantFilter); err != nil {
			log.Error().Err(err).Msg("failed to remove room occupants")

			return fmt.Errorf("failed to remove room occupants: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit contract update")

		return fmt.Errorf("failed to commit contract update: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetContract, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete contract from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllContract)
		shared.InvalidateCaches(c, s.cache, cacheCountContract)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contract.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getInScope(ctx, id); err != nil {
		return err
	}

	if err = s.repo.SoftDelete(ctx, shared.FilterByID(id, model.FieldID, model.TableName), timezone.Now()); err != nil {
		log.Error().Err(err).Msg("failed to delete contract")

		return fmt.Errorf("failed to delete contract: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetContract, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete contract from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllContract)
		shared.InvalidateCaches(c, s.cache, cacheCountContract)
	}()

	return nil
}

func (s *serviceImpl) getInScope(ctx context.Context, id string) (model.Contract, error) {
	userScope, err := s.resolver.Resolve(ctx, access.ActorFromContext(ctx), access.ResourceContract)
	if err != nil {
		return model.Contract{}, err
	}

	contract, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get contract")

		return model.Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}

	if contract.ID == constant.Empty {
		return model.Contract{}, failure.NotFound("contract") // nolint:wrapcheck
	}

	allowed := userScope.AllowsContract(contract.ID)
	if userScope.ContractIDs == nil {
		allowed = userScope.AllowsBranch(contract.BranchID)
	}

	if !allowed {
		return model.Contract{}, failure.NotFound("contract") // nolint:wrapcheck
	}

	return contract, nil
}
