package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"kosan/config"
	"kosan/infras/otel"
	"kosan/infras/postgres"
	"kosan/internal/access"
	contractModel "kosan/internal/domains/contract/model"
	contractRepo "kosan/internal/domains/contract/repository"
	"kosan/internal/domains/invoice/model"
	"kosan/internal/domains/invoice/model/dto"
	"kosan/internal/domains/invoice/repository"
	notification "kosan/internal/domains/notification/service"
	"kosan/shared"
	"kosan/shared/cache"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/failure"
	gModel "kosan/shared/model"
	"kosan/shared/timezone"
)

const (
	cacheGetInvoice    = "invoice:get"
	cacheGetAllInvoice = "invoice:gets"
	cacheCountInvoice  = "invoice:count"
)

type Invoice interface {
	Create(ctx context.Context, req dto.CreateInvoiceRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInvoicesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.InvoiceDetailResponse, error)
	Update(ctx context.Context, req dto.UpdateInvoiceRequest, id string) error
	Delete(ctx context.Context, id string) error
	BulkGenerate(ctx context.Context, req dto.BulkGenerateRequest) (dto.BulkGenerateResponse, error)
}

type serviceImpl struct {
	repo         repository.Invoice
	paymentRepo  repository.Payment
	contractRepo contractRepo.Contract
	aggregator   Aggregator
	resolver     access.Resolver
	notifier     notification.Notifier
	db           *postgres.Connection
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Invoice,
	paymentRepo repository.Payment,
	contractRepo contractRepo.Contract,
	aggregator Aggregator,
	resolver access.Resolver,
	notifier notification.Notifier,
	db *postgres.Connection,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Invoice {
	return &serviceImpl{
		repo:         repo,
		paymentRepo:  paymentRepo,
		contractRepo: contractRepo,
		aggregator:   aggregator,
		resolver:     resolver,
		notifier:     notifier,
		db:           db,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInvoiceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := access.ActorFromContext(ctx)

	userScope, err := s.resolver.Resolve(ctx, actor, access.ResourceInvoice)
	if err != nil {
		return err
	}

	// Manual creation is a branch-level write, off limits to contract-scoped actors.
	if userScope.ContractIDs != nil || !userScope.AllowsBranch(req.BranchID) {
		return failure.Forbidden("branch is outside your scope") // nolint:wrapcheck
	}

	contract, err := s.contractRepo.Get(ctx, shared.FilterByID(req.ContractID, contractModel.FieldID, contractModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get contract for invoice")

		return fmt.Errorf("failed to get contract for invoice: %w", err)
	}

	if contract.ID == constant.Empty {
		return failure.BadRequestFromString("contract does not exist") // nolint:wrapcheck
	}

	if contract.BranchID != req.BranchID {
		return failure.BadRequestFromString("contract does not belong to the branch") // nolint:wrapcheck
	}

	if req.Amount.IsNegative() {
		return failure.BadRequestFromString("amount must not be negative") // nolint:wrapcheck
	}

	invoice, err := req.ToModel(actor.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse invoice request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.createWithSideEffects(ctx, invoice, contract.RoomID, actor.ID); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllInvoice)
		shared.InvalidateCaches(c, s.cache, cacheCountInvoice)
	}()

	return nil
}

// createWithSideEffects inserts the invoice and, when it is born paid, the matching
// payment row in one transaction.
func (s *serviceImpl) createWithSideEffects(ctx context.Context, invoice model.Invoice, roomID, user string) error {
	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	if err = s.repo.InsertTx(ctx, tx, invoice); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("an invoice already exists for this contract and month") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create invoice")

		return fmt.Errorf("failed to create invoice: %w", err)
	}

	if invoice.Status == model.StatusPaid {
		if err = s.upsertPaymentTx(ctx, tx, invoice, user); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit invoice creation")

		return fmt.Errorf("failed to commit invoice creation: %w", err)
	}

	if invoice.Status == model.StatusPaid {
		go s.notifier.InvoicePaid(context.WithoutCancel(ctx), invoice, roomID)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	userScope, err := s.resolver.Resolve(ctx, access.ActorFromContext(ctx), access.ResourceInvoice)
	if err != nil {
		return res, err
	}

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			userScope.RowFilter(model.TableName, model.FieldBranchID, model.FieldContractID),
			filter,
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInvoice, req, scoped)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for invoices")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoices to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	userScope, err := s.resolver.Resolve(ctx, access.ActorFromContext(ctx), access.ResourceInvoice)
	if err != nil {
		return res, err
	}

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			userScope.RowFilter(model.TableName, model.FieldBranchID, model.FieldContractID),
			filter,
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountInvoice, req, scoped)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for invoice count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoice count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InvoiceDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	invoice, err := s.getInScope(ctx, id)
	if err != nil {
		return res, err
	}

	contract, err := s.contractRepo.Get(ctx, shared.FilterByID(invoice.ContractID, contractModel.FieldID, contractModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get contract for invoice detail")

		return res, fmt.Errorf("failed to get contract for invoice detail: %w", err)
	}

	res.FromModel(invoice)

	if contract.ID == constant.Empty {
		return res, nil
	}

	// Lines are recomputed from current usage and pricing, not stored. They can
	// disagree with a manually created amount.
	_, lines, err := s.aggregator.ComputeAmount(ctx, contract.RoomID, invoice.BranchID, invoice.BillingMonth)
	if err != nil {
		return res, err
	}

	res.Lines = lines

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateInvoiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateInvoiceRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor := access.ActorFromContext(ctx)

	invoice, err := s.getInScope(ctx, id)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, actor.ID)

	if req.DueDate != "" {
		dueDate, parseErr := time.Parse(constant.DateOnlyFormat, req.DueDate)
		if parseErr != nil {
			return failure.BadRequestFromString("invalid due date format") // nolint:wrapcheck
		}

		// billing_month stays put: due_date is a display and payment field once the
		// invoice exists.
		updatedFields[model.FieldDueDate] = dueDate
		invoice.DueDate = dueDate
	}

	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return failure.BadRequestFromString("amount must not be negative") // nolint:wrapcheck
		}

		invoice.Amount = *req.Amount
	}

	becamePaid := req.Status == model.StatusPaid

	var roomID string
	if becamePaid {
		invoice.Status = model.StatusPaid

		contract, contractErr := s.contractRepo.Get(ctx, shared.FilterByID(invoice.ContractID, contractModel.FieldID, contractModel.TableName))
		if contractErr != nil {
			log.Error().Err(contractErr).Msg("failed to get contract for invoice update")

			return fmt.Errorf("failed to get contract for invoice update: %w", contractErr)
		}

		roomID = contract.RoomID
	}

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update invoice")

		return fmt.Errorf("failed to update invoice: %w", err)
	}

	if becamePaid {
		if err = s.upsertPaymentTx(ctx, tx, invoice, actor.ID); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit invoice update")

		return fmt.Errorf("failed to commit invoice update: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if becamePaid {
			s.notifier.InvoicePaid(c, invoice, roomID)
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetInvoice, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete invoice from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllInvoice)
		shared.InvalidateCaches(c, s.cache, cacheCountInvoice)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getInScope(ctx, id); err != nil {
		return err
	}

	if err = s.repo.SoftDelete(ctx, shared.FilterByID(id, model.FieldID, model.TableName), timezone.Now()); err != nil {
		log.Error().Err(err).Msg("failed to delete invoice")

		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetInvoice, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete invoice from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllInvoice)
		shared.InvalidateCaches(c, s.cache, cacheCountInvoice)
	}()

	return nil
}

// BulkGenerate regenerates the branch's invoices for one month in a single
// transaction. Existing invoices for a (contract, month) slot are overwritten in full
// and reset to pending; their payment history is left untouched.
func (s *serviceImpl) BulkGenerate(ctx context.Context, req dto.BulkGenerateRequest) (res dto.BulkGenerateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.BulkGenerate")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := access.ActorFromContext(ctx)

	userScope, err := s.resolver.Resolve(ctx, actor, access.ResourceInvoice)
	if err != nil {
		return res, err
	}

	if userScope.ContractIDs != nil || !userScope.AllowsBranch(req.BranchID) {
		return res, failure.Forbidden("branch is outside your scope") // nolint:wrapcheck
	}

	dueDate, err := time.Parse(constant.DateOnlyFormat, req.DueDate)
	if err != nil {
		return res, failure.BadRequestFromString("invalid due date format") // nolint:wrapcheck
	}

	candidates, err := s.contractRepo.ListBillableByBranchMonth(ctx, req.BranchID, req.Month)
	if err != nil {
		log.Error().Err(err).Msg("failed to list billable contracts")

		return res, fmt.Errorf("failed to list billable contracts: %w", err)
	}

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	var (
		stored  []model.Invoice
		created int
	)

	roomByContract := make(map[string]string, len(candidates))

	for _, contract := range candidates {
		roomByContract[contract.ID] = contract.RoomID

		amount, _, err := s.aggregator.ComputeAmount(ctx, contract.RoomID, req.BranchID, req.Month)
		if err != nil {
			return res, err
		}

		invoice := model.Invoice{
			ID:           uuid.NewString(),
			ContractID:   contract.ID,
			BranchID:     req.BranchID,
			Amount:       amount,
			BillingMonth: req.Month,
			DueDate:      dueDate,
			Status:       model.StatusPending,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  actor.ID,
				ModifiedBy: actor.ID,
			},
		}

		row, isNew, err := s.repo.UpsertTx(ctx, tx, invoice)
		if err != nil {
			return res, err
		}

		if isNew {
			created++
		}

		stored = append(stored, row)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit bulk invoice generation")

		return res, fmt.Errorf("failed to commit bulk invoice generation: %w", err)
	}

	res.FromModels(stored, created)

	go func() {
		c := context.WithoutCancel(ctx)

		for _, invoice := range stored {
			s.notifier.InvoiceIssued(c, invoice, roomByContract[invoice.ContractID])
		}

		shared.InvalidateCaches(c, s.cache, cacheGetInvoice)
		shared.InvalidateCaches(c, s.cache, cacheGetAllInvoice)
		shared.InvalidateCaches(c, s.cache, cacheCountInvoice)
	}()

	return res, nil
}

// getInScope fetches an invoice and hides its existence from out-of-scope actors.
func (s *serviceImpl) getInScope(ctx context.Context, id string) (model.Invoice, error) {
	userScope, err := s.resolver.Resolve(ctx, access.ActorFromContext(ctx), access.ResourceInvoice)
	if err != nil {
		return model.Invoice{}, err
	}

	invoice, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return model.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		return model.Invoice{}, failure.NotFound("invoice") // nolint:wrapcheck
	}

	allowed := userScope.AllowsContract(invoice.ContractID)
	if userScope.ContractIDs == nil {
		allowed = userScope.AllowsBranch(invoice.BranchID)
	}

	if !allowed {
		return model.Invoice{}, failure.NotFound("invoice") // nolint:wrapcheck
	}

	return invoice, nil
}

func (s *serviceImpl) upsertPaymentTx(ctx context.Context, tx *sqlx.Tx, invoice model.Invoice, user string) error {
	payment := model.Payment{
		ID:          uuid.NewString(),
		ContractID:  invoice.ContractID,
		Amount:      invoice.Amount,
		DueDate:     invoice.DueDate,
		PaymentDate: timezone.Now(),
		Status:      model.StatusPaid,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err := s.paymentRepo.UpsertTx(ctx, tx, payment); err != nil {
		return err
	}

	return nil
}
