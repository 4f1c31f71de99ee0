package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kosan/config"
	"kosan/infras/otel/mocks"
	"kosan/internal/access"
	accessMocks "kosan/internal/access/mocks"
	roomMocks "kosan/internal/domains/room/mocks"
	"kosan/internal/domains/room/model"
	"kosan/internal/domains/room/model/dto"
	"kosan/internal/domains/room/service"
	cacheMocks "kosan/shared/cache/mocks"
	"kosan/shared/constant"
	"kosan/shared/failure"
)

func TestCreateRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockTypeRepo := roomMocks.NewMockRoomType(ctrl)
	mockResolver := accessMocks.NewMockResolver(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockTypeRepo, mockResolver, cfg, mockCache, mocks.NewOtel())

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleOwner)

	branchID := "69d02a84-5e86-4d56-8c5e-71a7d8f6c9b1"

	req := dto.CreateRoomRequest{
		BranchID: branchID,
		TypeID:   "5a8e2c17-94b6-4d3f-8a1e-7c0b9d6f2e45",
		Price:    decimal.NewFromInt(1500000),
	}

	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "success",
			req:  req,
			setupMock: func() {
				mockResolver.EXPECT().
					Resolve(gomock.Any(), gomock.Any(), access.ResourceRoom).
					Return(access.Scope{BranchIDs: []string{branchID}}, nil)
				mockTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, model.StatusAvailable, room.Status)
						assert.Equal(t, branchID, room.BranchID)

						return nil
					})
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "typeless room allowed",
			req: func() dto.CreateRoomRequest {
				r := req
				r.TypeID = ""

				return r
			}(),
			setupMock: func() {
				mockResolver.EXPECT().
					Resolve(gomock.Any(), gomock.Any(), access.ResourceRoom).
					Return(access.Scope{BranchIDs: []string{branchID}}, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "unknown room type rejected",
			req:  req,
			setupMock: func() {
				mockResolver.EXPECT().
					Resolve(gomock.Any(), gomock.Any(), access.ResourceRoom).
					Return(access.Scope{BranchIDs: []string{branchID}}, nil)
				mockTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "negative price rejected",
			req: func() dto.CreateRoomRequest {
				r := req
				r.Price = decimal.NewFromInt(-1)

				return r
			}(),
			setupMock: func() {
				mockResolver.EXPECT().
					Resolve(gomock.Any(), gomock.Any(), access.ResourceRoom).
					Return(access.Scope{BranchIDs: []string{branchID}}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "branch outside scope forbidden",
			req:  req,
			setupMock: func() {
				mockResolver.EXPECT().
					Resolve(gomock.Any(), gomock.Any(), access.ResourceRoom).
					Return(access.Scope{BranchIDs: []string{"another-branch"}}, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.setupMock()

			err := svc.Create(ctx, test.req)
			if test.wantErr {
				assert.Error(t, err)

				if test.wantCode != 0 {
					assert.Equal(t, test.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}
