package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kosan/config"
	"kosan/infras/otel/mocks"
	"kosan/internal/access"
	accessMocks "kosan/internal/access/mocks"
	userMocks "kosan/internal/domains/user/mocks"
	"kosan/internal/domains/user/model"
	"kosan/internal/domains/user/model/dto"
	"kosan/internal/domains/user/service"
	cacheMocks "kosan/shared/cache/mocks"
	"kosan/shared/constant"
	"kosan/shared/failure"
	gModel "kosan/shared/model"
	"kosan/shared/password"
)

func TestCreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockResolver := accessMocks.NewMockResolver(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockResolver, cfg, mockCache, mocks.NewOtel())

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleOwner)

	req := dto.CreateUserRequest{
		Role:     constant.RoleCustomer,
		Username: "tenant1",
		Email:    "tenant1@example.com",
		Password: "super-secret",
	}

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, req.Username, user.Username)
				assert.Equal(t, "test-user-id", user.CreatedBy)
				assert.NoError(t, password.Verify(req.Password, user.Password))

				return nil
			})
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Create(ctx, req)

		assert.NoError(t, err)
	})

	t.Run("duplicate username or email conflicts", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Create(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestGetUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockResolver := accessMocks.NewMockResolver(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockResolver, cfg, mockCache, mocks.NewOtel())

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")

	user := model.User{
		ID:       "b7e2f1a8-9c34-4f6d-8e15-3a0b7c6d9e42",
		Role:     constant.RoleCustomer,
		Username: "tenant1",
		Status:   model.StatusActive,
		Metadata: gModel.Metadata{CreatedBy: "employee-1"},
	}

	t.Run("admin sees any user", func(t *testing.T) {
		mockResolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceUser).
			Return(access.Scope{All: true}, nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		res, err := svc.Get(ctx, user.ID)

		assert.NoError(t, err)
		assert.Equal(t, user.ID, res.ID)
	})

	t.Run("employee sees users they onboarded", func(t *testing.T) {
		mockResolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceUser).
			Return(access.Scope{CreatedBy: "employee-1"}, nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		res, err := svc.Get(ctx, user.ID)

		assert.NoError(t, err)
		assert.Equal(t, user.ID, res.ID)
	})

	t.Run("stranger hidden behind not found", func(t *testing.T) {
		mockResolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceUser).
			Return(access.Scope{UserIDs: []string{"someone-else"}}, nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		_, err := svc.Get(ctx, user.ID)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("unknown user not found", func(t *testing.T) {
		mockResolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceUser).
			Return(access.Scope{All: true}, nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(ctx, "missing-user")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestUpdateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockResolver := accessMocks.NewMockResolver(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockResolver, cfg, mockCache, mocks.NewOtel())

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")

	user := model.User{
		ID:       "b7e2f1a8-9c34-4f6d-8e15-3a0b7c6d9e42",
		Username: "tenant1",
		Status:   model.StatusActive,
	}

	t.Run("success", func(t *testing.T) {
		mockResolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceUser).
			Return(access.Scope{All: true}, nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusInactive, fields[model.FieldStatus])

				return nil
			})
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Update(ctx, dto.UpdateUserRequest{Status: model.StatusInactive}, user.ID)

		assert.NoError(t, err)
	})

	t.Run("empty request rejected", func(t *testing.T) {
		err := svc.Update(ctx, dto.UpdateUserRequest{}, user.ID)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}
