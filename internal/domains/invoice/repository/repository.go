package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"kosan/infras/otel"
	"kosan/infras/postgres"
	"kosan/internal/domains/invoice/model"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/logger"
	gRepo "kosan/shared/repository"
)

type Invoice interface {
	Insert(ctx context.Context, model model.Invoice) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Invoice) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Invoice, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Invoice, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	SoftDelete(ctx context.Context, filter gDto.FilterGroup, now any) error
	UpsertTx(ctx context.Context, sqltx *sqlx.Tx, inv model.Invoice) (model.Invoice, bool, error)
}

type invoiceImpl struct {
	gRepo.Repository[model.Invoice]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Invoice {
	return &invoiceImpl{
		Repository: gRepo.NewSoftDeleteRepository[model.Invoice](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpsertTx claims the (contract, billing_month) slot atomically. An existing live
// invoice is overwritten in full — amount, due date, status, created_at — never merged.
// The second return value reports whether a new row was created.
func (repo *invoiceImpl) UpsertTx(ctx context.Context, sqltx *sqlx.Tx, inv model.Invoice) (model.Invoice, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".invoice.UpsertTx")
	defer scope.End()

	query := `INSERT INTO invoices
		(id, contract_id, branch_id, amount, billing_month, due_date, status, deleted_at, created_at, modified_at, created_by, modified_by)
		VALUES
		(:id, :contract_id, :branch_id, :amount, :billing_month, :due_date, :status, :deleted_at, :created_at, :modified_at, :created_by, :modified_by)
		ON CONFLICT (contract_id, billing_month) WHERE deleted_at IS NULL
		DO UPDATE SET
			amount = EXCLUDED.amount,
			due_date = EXCLUDED.due_date,
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at,
			modified_at = EXCLUDED.modified_at,
			modified_by = EXCLUDED.modified_by
		RETURNING *`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows, err := sqlx.NamedQueryContext(ctx, sqltx, query, inv)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Invoice{}, false, fmt.Errorf("failed to upsert invoice (%s): %w", model.EntityName, err)
	}
	defer rows.Close()

	var stored model.Invoice

	if !rows.Next() {
		err := rows.Err()
		if err == nil {
			err = fmt.Errorf("upsert returned no row")
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Invoice{}, false, fmt.Errorf("failed to upsert invoice (%s): %w", model.EntityName, err)
	}

	if err := rows.StructScan(&stored); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Invoice{}, false, fmt.Errorf("failed to scan upserted invoice (%s): %w", model.EntityName, err)
	}

	// On conflict the returned id is the pre-existing row's, not the candidate's.
	created := stored.ID == inv.ID

	return stored, created, nil
}

type Payment interface {
	Insert(ctx context.Context, model model.Payment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Payment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	UpsertTx(ctx context.Context, sqltx *sqlx.Tx, payment model.Payment) error
}

type paymentImpl struct {
	gRepo.Repository[model.Payment]
	db   *postgres.Connection
	otel otel.Otel
}

func NewPayment(db *postgres.Connection, otel otel.Otel) Payment {
	return &paymentImpl{
		Repository: gRepo.NewRepository[model.Payment](model.PaymentEntityName, model.PaymentTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpsertTx keeps a payment row in step with its paid invoice, keyed by
// (contract, due_date).
func (repo *paymentImpl) UpsertTx(ctx context.Context, sqltx *sqlx.Tx, payment model.Payment) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.UpsertTx")
	defer scope.End()

	query := `INSERT INTO payments
		(id, contract_id, amount, due_date, payment_date, status, created_at, modified_at, created_by, modified_by)
		VALUES
		(:id, :contract_id, :amount, :due_date, :payment_date, :status, :created_at, :modified_at, :created_by, :modified_by)
		ON CONFLICT (contract_id, due_date)
		DO UPDATE SET
			amount = EXCLUDED.amount,
			payment_date = EXCLUDED.payment_date,
			status = EXCLUDED.status,
			modified_at = EXCLUDED.modified_at,
			modified_by = EXCLUDED.modified_by`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := sqltx.NamedExecContext(ctx, query, payment); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert payment (%s): %w", model.PaymentEntityName, err)
	}

	return nil
}
