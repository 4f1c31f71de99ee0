package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kosan/config"
	"kosan/infras/otel"
	"kosan/internal/access"
	"kosan/internal/domains/branch/model"
	"kosan/internal/domains/branch/model/dto"
	"kosan/internal/domains/branch/repository"
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
	cacheGetBranch    = "branch:get"
	cacheGetAllBranch = "branch:gets"
	cacheCountBranch  = "branch:count"
)

type Branch interface {
	Create(ctx context.Context, req dto.CreateBranchRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBranchesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BranchResponse, error)
	Update(ctx context.Context, req dto.UpdateBranchRequest, id string) error
	Delete(ctx context.Context, id string) error
	AssignEmployee(ctx context.Context, branchID string, req dto.AssignEmployeeRequest) error
	AttachCustomer(ctx context.Context, branchID string, req dto.AttachCustomerRequest) error
}

type serviceImpl struct {
	repo           repository.Branch
	assignmentRepo repository.Assignment
	customerRepo   repository.Customer
	userRepo       userRepo.User
	resolver       access.Resolver
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	repo repository.Branch,
	assignmentRepo repository.Assignment,
	customerRepo repository.Customer,
	userRepo userRepo.User,
	resolver access.Resolver,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Branch {
	return &serviceImpl{
		repo:           repo,
		assignmentRepo: assignmentRepo,
		customerRepo:   customerRepo,
		userRepo:       userRepo,
		resolver:       resolver,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBranchRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".branch.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := access.ActorFromContext(ctx)

	// Owners create branches for themselves; admins may create on behalf of an owner.
	ownerID := actor.ID
	if req.OwnerID != "" {
		if actor.Role != constant.RoleAdmin && req.OwnerID != actor.ID {
			return failure.Forbidden("cannot create a branch for another owner") // nolint:wrapcheck
		}

		ownerID = req.OwnerID
	}

	ownerExists, err := s.userRepo.Exist(ctx, shared.FilterByID(ownerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if owner exists")

		return fmt.Errorf("failed to check if owner exists: %w", err)
	}

	if !ownerExists {
		return failure.BadRequestFromString("owner does not exist") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(actor.ID, ownerID)); err != nil {
		log.Error().Err(err).Msg("failed to create branch")

		return fmt.Errorf("failed to create branch: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBranch)
		shared.InvalidateCaches(c, s.cache, cacheCountBranch)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBranchesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".branch.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	userScope, err := s.resolver.Resolve(ctx, access.ActorFromContext(ctx), access.ResourceBranch)
	if err != nil {
		return res, err
	}

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			userScope.BranchFilter(model.TableName, model.FieldID),
			filter,
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBranch, req, scoped)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for branches")

		return res, nil
	}

	total, err := s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count branches")

		return res, fmt.Errorf("failed to count branches: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get branches")

		return res, fmt.Errorf("failed to get branches: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save branches to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".branch.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	userScope, err := s.resolver.Resolve(ctx, access.ActorFromContext(ctx), access.ResourceBranch)
	if err != nil {
		return res, err
	}

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			userScope.BranchFilter(model.TableName, model.FieldID),
			filter,
		},
	}

	res, err = s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count branches")

		return res, fmt.Errorf("failed to count branches: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BranchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".branch.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	branch, err := s.getInScope(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(branch)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBranchRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".branch.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBranchRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor := access.ActorFromContext(ctx)

	if _, err = s.getInScope(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.ID), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update branch")

		return fmt.Errorf("failed to update branch: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBranch, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete branch from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBranch)
		shared.InvalidateCaches(c, s.cache, cacheCountBranch)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".branch.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getInScope(ctx, id); err != nil {
		return err
	}

	if err = s.repo.SoftDelete(ctx, shared.FilterByID(id, model.FieldID, model.TableName), timezone.Now()); err != nil {
		log.Error().Err(err).Msg("failed to delete branch")

		return fmt.Errorf("failed to delete branch: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBranch, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete branch from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBranch)
		shared.InvalidateCaches(c, s.cache, cacheCountBranch)
	}()

	return nil
}

// AssignEmployee attaches an employee to a branch, widening that employee's scope.
func (s *serviceImpl) AssignEmployee(ctx context.Context, branchID string, req dto.AssignEmployeeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".branch.AssignEmployee")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := access.ActorFromContext(ctx)

	if _, err = s.getInScope(ctx, branchID); err != nil {
		return err
	}

	employee, err := s.userRepo.Get(ctx, shared.FilterByID(req.EmployeeID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get employee")

		return fmt.Errorf("failed to get employee: %w", err)
	}

	if employee.ID == constant.Empty {
		return failure.BadRequestFromString("employee does not exist") // nolint:wrapcheck
	}

	if employee.Role != constant.RoleEmployee {
		return failure.BadRequestFromString("user is not an employee") // nolint:wrapcheck
	}

	assignment := model.EmployeeAssignment{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		BranchID:   branchID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor.ID,
			ModifiedBy: actor.ID,
		},
	}

	if err = s.assignmentRepo.Insert(ctx, assignment); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("employee is already assigned to this branch") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to assign employee")

		return fmt.Errorf("failed to assign employee: %w", err)
	}

	return nil
}

// AttachCustomer links a customer to a branch for owner user-listing visibility.
func (s *serviceImpl) AttachCustomer(ctx context.Context, branchID string, req dto.AttachCustomerRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".branch.AttachCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := access.ActorFromContext(ctx)

	if _, err = s.getInScope(ctx, branchID); err != nil {
		return err
	}

	customer, err := s.userRepo.Get(ctx, shared.FilterByID(req.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return failure.BadRequestFromString("user does not exist") // nolint:wrapcheck
	}

	row := model.BranchCustomer{
		ID:       uuid.NewString(),
		BranchID: branchID,
		UserID:   req.UserID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor.ID,
			ModifiedBy: actor.ID,
		},
	}

	if err = s.customerRepo.Insert(ctx, row); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("customer is already attached to this branch") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to attach customer")

		return fmt.Errorf("failed to attach customer: %w", err)
	}

	return nil
}

func (s *serviceImpl) getInScope(ctx context.Context, id string) (model.Branch, error) {
	userScope, err := s.resolver.Resolve(ctx, access.ActorFromContext(ctx), access.ResourceBranch)
	if err != nil {
		return model.Branch{}, err
	}

	branch, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get branch")

		return model.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}

	if branch.ID == constant.Empty || !userScope.AllowsBranch(branch.ID) {
		return model.Branch{}, failure.NotFound("branch") // nolint:wrapcheck
	}

	return branch, nil
}
