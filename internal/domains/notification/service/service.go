package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"kosan/config"
	"kosan/infras/kafka"
	"kosan/infras/otel"
	invoiceModel "kosan/internal/domains/invoice/model"
	"kosan/shared/constant"
	"kosan/shared/timezone"
)

const (
	EventInvoiceIssued = "invoice.issued"
	EventInvoicePaid   = "invoice.paid"
)

// InvoiceEvent is the payload published to the notification topic when billing state
// changes.
type InvoiceEvent struct {
	Type         string          `json:"type"`
	InvoiceID    string          `json:"invoice_id"`
	ContractID   string          `json:"contract_id"`
	RoomID       string          `json:"room_id"`
	BranchID     string          `json:"branch_id"`
	Amount       decimal.Decimal `json:"amount"`
	BillingMonth string          `json:"billing_month"`
	Status       string          `json:"status"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// Notifier publishes billing events. Publishing is best effort: failures are logged,
// never surfaced to the write path that triggered them. roomID comes from the
// invoice's contract; invoices do not store it themselves.
type Notifier interface {
	InvoiceIssued(ctx context.Context, invoice invoiceModel.Invoice, roomID string)
	InvoicePaid(ctx context.Context, invoice invoiceModel.Invoice, roomID string)
}

type notifierImpl struct {
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func New(kafka kafka.Client, cfg *config.Config, otel otel.Otel) Notifier {
	return &notifierImpl{
		kafka: kafka,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *notifierImpl) InvoiceIssued(ctx context.Context, invoice invoiceModel.Invoice, roomID string) {
	s.publish(ctx, EventInvoiceIssued, invoice, roomID)
}

func (s *notifierImpl) InvoicePaid(ctx context.Context, invoice invoiceModel.Invoice, roomID string) {
	s.publish(ctx, EventInvoicePaid, invoice, roomID)
}

func (s *notifierImpl) publish(ctx context.Context, eventType string, invoice invoiceModel.Invoice, roomID string) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.publish")
	defer scope.End()

	event := InvoiceEvent{
		Type:         eventType,
		InvoiceID:    invoice.ID,
		ContractID:   invoice.ContractID,
		RoomID:       roomID,
		BranchID:     invoice.BranchID,
		Amount:       invoice.Amount,
		BillingMonth: invoice.BillingMonth,
		Status:       invoice.Status,
		OccurredAt:   timezone.Now(),
	}

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Notification, kafka.Message{
		Key:   invoice.ID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Str("invoiceID", invoice.ID).Msg("failed to publish billing event")
		scope.TraceError(err)
	}
}
