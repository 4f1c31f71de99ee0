package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kosan/config"
	"kosan/infras/otel/mocks"
	"kosan/infras/postgres"
	"kosan/internal/access"
	accessMocks "kosan/internal/access/mocks"
	contractMocks "kosan/internal/domains/contract/mocks"
	"kosan/internal/domains/contract/model"
	"kosan/internal/domains/contract/model/dto"
	"kosan/internal/domains/contract/service"
	roomMocks "kosan/internal/domains/room/mocks"
	roomModel "kosan/internal/domains/room/model"
	userMocks "kosan/internal/domains/user/mocks"
	cacheMocks "kosan/shared/cache/mocks"
	"kosan/shared/constant"
	"kosan/shared/failure"
)

type contractServiceFixture struct {
	svc          service.Contract
	repo         *contractMocks.MockContract
	roomRepo     *roomMocks.MockRoom
	occupantRepo *roomMocks.MockOccupant
	userRepo     *userMocks.MockUser
	resolver     *accessMocks.MockResolver
	cache        *cacheMocks.MockRedisCache
	sqlMock      sqlmock.Sqlmock
}

func newContractServiceFixture(t *testing.T, ctrl *gomock.Controller) contractServiceFixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := contractServiceFixture{
		repo:         contractMocks.NewMockContract(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		occupantRepo: roomMocks.NewMockOccupant(ctrl),
		userRepo:     userMocks.NewMockUser(ctrl),
		resolver:     accessMocks.NewMockResolver(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		sqlMock:      sqlMock,
	}

	f.svc = service.New(
		f.repo,
		f.roomRepo,
		f.occupantRepo,
		f.userRepo,
		f.resolver,
		conn,
		cfg,
		f.cache,
		mocks.NewOtel(),
	)

	return f
}

func actorContext(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestCreateContract(t *testing.T) {
	room := roomModel.Room{
		ID:       "8f14c9a7-5d31-4b6e-9f84-2c0d7e6a1b53",
		BranchID: "69d02a84-5e86-4d56-8c5e-71a7d8f6c9b1",
		Price:    decimal.NewFromInt(1500000),
		Status:   roomModel.StatusAvailable,
	}

	req := dto.CreateContractRequest{
		RoomID:    room.ID,
		UserID:    "b7e2f1a8-9c34-4f6d-8e15-3a0b7c6d9e42",
		StartDate: "2026-09-01",
		EndDate:   "2027-08-31",
		Deposit:   decimal.NewFromInt(500000),
		Status:    model.StatusActive,
	}

	ctx := actorContext("test-user-id", constant.RoleOwner)

	t.Run("ActiveContractOccupiesRoom", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newContractServiceFixture(t, ctrl)

		f.resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceContract).
			Return(access.Scope{BranchIDs: []string{room.BranchID}}, nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.sqlMock.ExpectBegin()
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, contract model.Contract) error {
				assert.Equal(t, room.BranchID, contract.BranchID)
				assert.Equal(t, model.StatusActive, contract.Status)

				return nil
			})
		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
				assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])

				return nil
			})
		f.occupantRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.sqlMock.ExpectCommit()
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := f.svc.Create(ctx, req)

		assert.NoError(t, err)
	})

	t.Run("SecondActiveContractConflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newContractServiceFixture(t, ctrl)

		f.resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceContract).
			Return(access.Scope{All: true}, nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Create(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("CustomerCannotCreate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newContractServiceFixture(t, ctrl)

		f.resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceContract).
			Return(access.Scope{ContractIDs: []string{}}, nil)

		err := f.svc.Create(actorContext("customer-1", constant.RoleCustomer), req)

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("RoomOutsideScopeForbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newContractServiceFixture(t, ctrl)

		f.resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceContract).
			Return(access.Scope{BranchIDs: []string{"another-branch"}}, nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)

		err := f.svc.Create(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("EndBeforeStartRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newContractServiceFixture(t, ctrl)

		badReq := req
		badReq.StartDate = "2027-08-31"
		badReq.EndDate = "2026-09-01"

		f.resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceContract).
			Return(access.Scope{All: true}, nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Create(ctx, badReq)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("UnknownTenantRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newContractServiceFixture(t, ctrl)

		f.resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceContract).
			Return(access.Scope{All: true}, nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Create(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestUpdateContract(t *testing.T) {
	contract := model.Contract{
		ID:        "c07bb386-3a29-4efc-b3bb-ad6455c01f39",
		RoomID:    "8f14c9a7-5d31-4b6e-9f84-2c0d7e6a1b53",
		UserID:    "b7e2f1a8-9c34-4f6d-8e15-3a0b7c6d9e42",
		BranchID:  "69d02a84-5e86-4d56-8c5e-71a7d8f6c9b1",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:    model.StatusActive,
	}

	ctx := actorContext("test-user-id", constant.RoleAdmin)

	t.Run("EndingContractReleasesRoom", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newContractServiceFixture(t, ctrl)

		f.resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceContract).
			Return(access.Scope{All: true}, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(contract, nil)
		f.sqlMock.ExpectBegin()
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
				assert.Equal(t, roomModel.StatusAvailable, fields[roomModel.FieldStatus])

				return nil
			})
		f.occupantRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.sqlMock.ExpectCommit()
		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := f.svc.Update(ctx, dto.UpdateContractRequest{Status: model.StatusEnded}, contract.ID)

		assert.NoError(t, err)
	})

	t.Run("StayingActiveLeavesRoomAlone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newContractServiceFixture(t, ctrl)

		f.resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceContract).
			Return(access.Scope{All: true}, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(contract, nil)
		f.sqlMock.ExpectBegin()
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.sqlMock.ExpectCommit()
		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := f.svc.Update(ctx, dto.UpdateContractRequest{EndDate: "2027-12-31"}, contract.ID)

		assert.NoError(t, err)
	})

	t.Run("OutOfScopeContractReadsAsNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newContractServiceFixture(t, ctrl)

		f.resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), access.ResourceContract).
			Return(access.Scope{BranchIDs: []string{"another-branch"}}, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(contract, nil)

		err := f.svc.Update(ctx, dto.UpdateContractRequest{Status: model.StatusEnded}, contract.ID)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
