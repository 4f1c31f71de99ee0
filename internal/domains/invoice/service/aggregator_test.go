package service_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kosan/infras/otel/mocks"
	"kosan/internal/domains/invoice/service"
	roomMocks "kosan/internal/domains/room/mocks"
	roomModel "kosan/internal/domains/room/model"
	utilityMocks "kosan/internal/domains/utility/mocks"
	utilityModel "kosan/internal/domains/utility/model"
)

func TestComputeAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockUsageLinesRepo := utilityMocks.NewMockUsageLines(ctrl)
	mockDefaultRepo := utilityMocks.NewMockBranchDefault(ctrl)
	mockOtel := mocks.NewOtel()

	aggregator := service.NewAggregator(mockRoomRepo, mockUsageLinesRepo, mockDefaultRepo, mockOtel)

	ctx := context.Background()

	room := roomModel.Room{
		ID:       "room-1",
		BranchID: "branch-1",
		Price:    decimal.NewFromInt(2000000),
		Status:   "occupied",
	}

	t.Run("RoomPriceOnlyWhenNoUsages", func(t *testing.T) {
		mockRoomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		mockDefaultRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		mockUsageLinesRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		total, lines, err := aggregator.ComputeAmount(ctx, "room-1", "branch-1", "2026-08")

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(2000000).Equal(total))
		assert.Len(t, lines, 1)
		assert.Equal(t, "room price", lines[0].ServiceName)
		assert.True(t, decimal.NewFromInt(1).Equal(lines[0].UsageAmount))
		assert.True(t, room.Price.Equal(lines[0].LineAmount))
	})

	t.Run("UsageLinesPricedFromCatalog", func(t *testing.T) {
		mockRoomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		mockDefaultRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		mockUsageLinesRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]utilityModel.UsageLine{
			{
				ID:          "usage-1",
				RoomID:      "room-1",
				ServiceID:   "service-electricity",
				Month:       "2026-08",
				UsageAmount: decimal.NewFromInt(50),
				ServiceName: "electricity",
				Price:       decimal.NewFromInt(3500),
			},
		}, nil)

		total, lines, err := aggregator.ComputeAmount(ctx, "room-1", "branch-1", "2026-08")

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(2175000).Equal(total))
		assert.Len(t, lines, 2)
		assert.Equal(t, "electricity", lines[1].ServiceName)
		assert.True(t, decimal.NewFromInt(3500).Equal(lines[1].UnitPrice))
		assert.True(t, decimal.NewFromInt(175000).Equal(lines[1].LineAmount))
	})

	t.Run("BranchOverrideBeatsCatalogPrice", func(t *testing.T) {
		mockRoomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		mockDefaultRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]utilityModel.BranchServiceDefault{
			{
				ID:          "default-1",
				BranchID:    "branch-1",
				ServiceID:   "service-electricity",
				CustomPrice: decimal.NewFromInt(4000),
			},
		}, nil)
		mockUsageLinesRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]utilityModel.UsageLine{
			{
				ID:          "usage-1",
				RoomID:      "room-1",
				ServiceID:   "service-electricity",
				Month:       "2026-08",
				UsageAmount: decimal.NewFromInt(50),
				ServiceName: "electricity",
				Price:       decimal.NewFromInt(3500),
			},
			{
				ID:          "usage-2",
				RoomID:      "room-1",
				ServiceID:   "service-water",
				Month:       "2026-08",
				UsageAmount: decimal.NewFromInt(10),
				ServiceName: "water",
				Price:       decimal.NewFromInt(15000),
			},
		}, nil)

		total, lines, err := aggregator.ComputeAmount(ctx, "room-1", "branch-1", "2026-08")

		assert.NoError(t, err)
		// 2,000,000 + 50 x 4,000 (override) + 10 x 15,000 (catalog).
		assert.True(t, decimal.NewFromInt(2350000).Equal(total))
		assert.Len(t, lines, 3)
		assert.True(t, decimal.NewFromInt(4000).Equal(lines[1].UnitPrice))
		assert.True(t, decimal.NewFromInt(15000).Equal(lines[2].UnitPrice))
	})

	t.Run("FractionalUsageKeptExact", func(t *testing.T) {
		mockRoomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		mockDefaultRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		mockUsageLinesRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]utilityModel.UsageLine{
			{
				ID:          "usage-1",
				ServiceID:   "service-water",
				UsageAmount: decimal.RequireFromString("12.5"),
				ServiceName: "water",
				Price:       decimal.NewFromInt(15000),
			},
		}, nil)

		total, _, err := aggregator.ComputeAmount(ctx, "room-1", "branch-1", "2026-08")

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(2187500).Equal(total))
	})

	t.Run("UnknownRoomNotFound", func(t *testing.T) {
		mockRoomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, _, err := aggregator.ComputeAmount(ctx, "room-404", "branch-1", "2026-08")

		assert.Error(t, err)
	})

	t.Run("RoomLookupFailurePropagates", func(t *testing.T) {
		mockRoomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, errors.New("connection refused"))

		_, _, err := aggregator.ComputeAmount(ctx, "room-1", "branch-1", "2026-08")

		assert.Error(t, err)
	})
}
