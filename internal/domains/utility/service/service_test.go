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
	utilityMocks "kosan/internal/domains/utility/mocks"
	"kosan/internal/domains/utility/model"
	"kosan/internal/domains/utility/model/dto"
	"kosan/internal/domains/utility/service"
	cacheMocks "kosan/shared/cache/mocks"
	"kosan/shared/constant"
	"kosan/shared/failure"
)

func newServiceUnderTest(ctrl *gomock.Controller) (service.Service, *utilityMocks.MockService, *utilityMocks.MockBranchDefault, *accessMocks.MockResolver, *cacheMocks.MockRedisCache) {
	mockRepo := utilityMocks.NewMockService(ctrl)
	mockDefaultRepo := utilityMocks.NewMockBranchDefault(ctrl)
	mockResolver := accessMocks.NewMockResolver(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockDefaultRepo, mockResolver, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockDefaultRepo, mockResolver, mockCache
}

func serviceActorContext(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestSetBranchDefault(t *testing.T) {
	branchID := "69d02a84-5e86-4d56-8c5e-71a7d8f6c9b1"
	serviceID := "4d1de3a2-7410-48dc-9db3-5b7c6f1a2e84"

	req := dto.SetBranchDefaultRequest{CustomPrice: decimal.NewFromInt(4000)}

	ctx := serviceActorContext("owner-1", constant.RoleOwner)

	t.Run("FirstOverrideInserted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockDefaultRepo, mockResolver, mockCache := newServiceUnderTest(ctrl)

		mockResolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceBranch).
			Return(access.Scope{BranchIDs: []string{branchID}}, nil)
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockDefaultRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.BranchServiceDefault{}, nil)
		mockDefaultRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, def model.BranchServiceDefault) error {
				assert.Equal(t, branchID, def.BranchID)
				assert.Equal(t, serviceID, def.ServiceID)
				assert.True(t, req.CustomPrice.Equal(def.CustomPrice))

				return nil
			})
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.SetBranchDefault(ctx, branchID, serviceID, req)

		assert.NoError(t, err)
		assert.Equal(t, branchID, res.BranchID)
		assert.True(t, req.CustomPrice.Equal(res.CustomPrice))
	})

	t.Run("ExistingOverrideUpdated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockDefaultRepo, mockResolver, mockCache := newServiceUnderTest(ctrl)

		existing := model.BranchServiceDefault{
			ID:          "existing-override",
			BranchID:    branchID,
			ServiceID:   serviceID,
			CustomPrice: decimal.NewFromInt(3500),
		}

		mockResolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceBranch).
			Return(access.Scope{All: true}, nil)
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockDefaultRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
		mockDefaultRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, req.CustomPrice, fields[model.FieldCustomPrice])

				return nil
			})
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.SetBranchDefault(ctx, branchID, serviceID, req)

		assert.NoError(t, err)
		assert.Equal(t, existing.ID, res.ID)
	})

	t.Run("BranchOutsideScopeForbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, mockResolver, _ := newServiceUnderTest(ctrl)

		mockResolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceBranch).
			Return(access.Scope{BranchIDs: []string{"another-branch"}}, nil)

		_, err := svc.SetBranchDefault(ctx, branchID, serviceID, req)

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("UnknownServiceRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _, mockResolver, _ := newServiceUnderTest(ctrl)

		mockResolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceBranch).
			Return(access.Scope{All: true}, nil)
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.SetBranchDefault(ctx, branchID, serviceID, req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("NegativePriceRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, mockResolver, _ := newServiceUnderTest(ctrl)

		mockResolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceBranch).
			Return(access.Scope{All: true}, nil)

		_, err := svc.SetBranchDefault(ctx, branchID, serviceID, dto.SetBranchDefaultRequest{CustomPrice: decimal.NewFromInt(-1)})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestCreateService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, mockCache := newServiceUnderTest(ctrl)

	ctx := serviceActorContext("admin-1", constant.RoleAdmin)

	req := dto.CreateServiceRequest{
		Name:         "electricity",
		Type:         "electricity",
		Unit:         "kwh",
		DefaultPrice: decimal.NewFromInt(3500),
	}

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, svcModel model.Service) error {
				assert.Equal(t, req.Name, svcModel.Name)
				assert.Equal(t, req.Type, svcModel.Type)

				return nil
			})
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Create(ctx, req)

		assert.NoError(t, err)
	})

	t.Run("negative default price rejected", func(t *testing.T) {
		badReq := req
		badReq.DefaultPrice = decimal.NewFromInt(-100)

		err := svc.Create(ctx, badReq)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}
