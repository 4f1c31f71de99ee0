package service_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kosan/config"
	"kosan/infras/kafka"
	kafkaMocks "kosan/infras/kafka/mocks"
	"kosan/infras/otel/mocks"
	invoiceModel "kosan/internal/domains/invoice/model"
	"kosan/internal/domains/notification/service"
)

func TestNotifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.Notification = "billing-events"

	notifier := service.New(mockKafka, cfg, mocks.NewOtel())

	ctx := context.Background()

	const roomID = "9ab7f0cc-4f24-46e2-a0a3-0f5f3f3fb6d2"

	invoice := invoiceModel.Invoice{
		ID:           "2e41f9a3-94b4-4c6a-a9f5-d6ad0b40f8b4",
		ContractID:   "c07bb386-3a29-4efc-b3bb-ad6455c01f39",
		BranchID:     "69d02a84-5e86-4d56-8c5e-71a7d8f6c9b1",
		Amount:       decimal.NewFromInt(2175000),
		BillingMonth: "2026-08",
		Status:       invoiceModel.StatusPending,
	}

	t.Run("IssuedEventPublished", func(t *testing.T) {
		mockKafka.EXPECT().
			SendMessages(gomock.Any(), "billing-events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				assert.Len(t, messages, 1)
				assert.Equal(t, invoice.ID, messages[0].Key)

				event, ok := messages[0].Value.(service.InvoiceEvent)
				assert.True(t, ok)
				assert.Equal(t, service.EventInvoiceIssued, event.Type)
				assert.Equal(t, roomID, event.RoomID)
				assert.Equal(t, invoice.BillingMonth, event.BillingMonth)

				return nil
			})

		notifier.InvoiceIssued(ctx, invoice, roomID)
	})

	t.Run("PaidEventPublished", func(t *testing.T) {
		mockKafka.EXPECT().
			SendMessages(gomock.Any(), "billing-events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				event, ok := messages[0].Value.(service.InvoiceEvent)
				assert.True(t, ok)
				assert.Equal(t, service.EventInvoicePaid, event.Type)
				assert.Equal(t, roomID, event.RoomID)

				return nil
			})

		notifier.InvoicePaid(ctx, invoice, roomID)
	})

	t.Run("PublishFailureSwallowed", func(t *testing.T) {
		mockKafka.EXPECT().
			SendMessages(gomock.Any(), "billing-events", gomock.Any()).
			Return(errors.New("broker unavailable"))

		notifier.InvoicePaid(ctx, invoice, roomID)
	})
}
