package service_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kosan/config"
	"kosan/infras/jwt"
	jwtMocks "kosan/infras/jwt/mocks"
	"kosan/infras/otel/mocks"
	"kosan/internal/domains/auth/model/dto"
	"kosan/internal/domains/auth/service"
	userModel "kosan/internal/domains/user/model"
	userMocks "kosan/internal/domains/user/mocks"
	"kosan/shared/failure"
	"kosan/shared/password"
)

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	ctx := context.Background()

	hashed, err := password.Hash("correct-password")
	assert.NoError(t, err)

	user := userModel.User{
		ID:       "b7e2f1a8-9c34-4f6d-8e15-3a0b7c6d9e42",
		Username: "owner1",
		Role:     "owner",
		Password: hashed,
		Status:   userModel.StatusActive,
	}

	tokenPair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "success",
			req:  dto.LoginRequest{Username: "owner1", Password: "correct-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				mockJWT.EXPECT().GenerateTokenPair(user.ID, user.Username, user.Role).Return(tokenPair, nil)
			},
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "nobody", Password: "correct-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "owner1", Password: "wrong-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr: true,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Username: "owner1", Password: "correct-password"},
			setupMock: func() {
				deactivated := user
				deactivated.Status = userModel.StatusInactive

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deactivated, nil)
			},
			wantErr: true,
		},
		{
			name: "repository failure reads as bad credentials",
			req:  dto.LoginRequest{Username: "owner1", Password: "correct-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.setupMock()

			res, err := svc.Login(ctx, test.req)
			if test.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tokenPair.AccessToken, res.AccessToken)
			assert.Equal(t, tokenPair.RefreshToken, res.RefreshToken)
		})
	}
}

func TestRefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("valid-refresh-token").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := svc.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("stale-token").
			Return(nil, errors.New("token is expired"))

		_, err := svc.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: "stale-token"})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})
}

func TestChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	ctx := context.Background()

	hashed, err := password.Hash("old-password")
	assert.NoError(t, err)

	user := userModel.User{
		ID:       "b7e2f1a8-9c34-4f6d-8e15-3a0b7c6d9e42",
		Username: "owner1",
		Password: hashed,
		Status:   userModel.StatusActive,
	}

	t.Run("success", func(t *testing.T) {
		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		mockUserRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				stored, ok := fields[userModel.FieldPassword].(string)
				assert.True(t, ok)
				assert.NoError(t, password.Verify("new-password", stored))

				return nil
			})

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{
			CurrentPassword: "old-password",
			NewPassword:     "new-password",
		}, user.ID)

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{
			CurrentPassword: "not-the-password",
			NewPassword:     "new-password",
		}, user.ID)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{
			CurrentPassword: "old-password",
			NewPassword:     "new-password",
		}, "missing-user")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
