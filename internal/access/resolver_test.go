package access_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kosan/infras/otel/mocks"
	"kosan/internal/access"
	accessMocks "kosan/internal/access/mocks"
	"kosan/shared/constant"
	"kosan/shared/failure"
)

func TestResolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBranches := accessMocks.NewMockBranchSource(ctrl)
	mockAssignments := accessMocks.NewMockAssignmentSource(ctrl)
	mockContracts := accessMocks.NewMockContractSource(ctrl)
	mockOtel := mocks.NewOtel()

	resolver := access.NewResolver(mockBranches, mockAssignments, mockContracts, mockOtel)

	ctx := context.Background()

	tests := []struct {
		name      string
		actor     access.Actor
		resource  access.Resource
		setupMock func()
		want      access.Scope
		wantErr   bool
	}{
		{
			name:      "AdminGetsUnboundedScope",
			actor:     access.Actor{ID: "admin-1", Role: constant.RoleAdmin},
			resource:  access.ResourceInvoice,
			setupMock: func() {},
			want:      access.Scope{All: true},
		},
		{
			name:     "OwnerGetsOwnedBranches",
			actor:    access.Actor{ID: "owner-1", Role: constant.RoleOwner},
			resource: access.ResourceRoom,
			setupMock: func() {
				mockBranches.EXPECT().
					ListOwnedBranchIDs(gomock.Any(), "owner-1").
					Return([]string{"branch-1", "branch-2"}, nil)
			},
			want: access.Scope{BranchIDs: []string{"branch-1", "branch-2"}},
		},
		{
			name:     "OwnerUserScopeIncludesBranchUsers",
			actor:    access.Actor{ID: "owner-1", Role: constant.RoleOwner},
			resource: access.ResourceUser,
			setupMock: func() {
				mockBranches.EXPECT().
					ListOwnedBranchIDs(gomock.Any(), "owner-1").
					Return([]string{"branch-1"}, nil)
				mockBranches.EXPECT().
					ListBranchUserIDs(gomock.Any(), []string{"branch-1"}).
					Return([]string{"user-1", "user-2"}, nil)
			},
			want: access.Scope{
				BranchIDs: []string{"branch-1"},
				UserIDs:   []string{"user-1", "user-2"},
			},
		},
		{
			name:     "EmployeeGetsAssignedBranches",
			actor:    access.Actor{ID: "employee-1", Role: constant.RoleEmployee},
			resource: access.ResourceContract,
			setupMock: func() {
				mockAssignments.EXPECT().
					ListAssignedBranchIDs(gomock.Any(), "employee-1").
					Return([]string{"branch-3"}, nil)
			},
			want: access.Scope{BranchIDs: []string{"branch-3"}},
		},
		{
			name:     "EmployeeWithoutAssignmentsGetsEmptyScope",
			actor:    access.Actor{ID: "employee-2", Role: constant.RoleEmployee},
			resource: access.ResourceRoom,
			setupMock: func() {
				mockAssignments.EXPECT().
					ListAssignedBranchIDs(gomock.Any(), "employee-2").
					Return(nil, nil)
			},
			want: access.Scope{},
		},
		{
			name:      "EmployeeUserScopeKeysOnCreatedBy",
			actor:     access.Actor{ID: "employee-1", Role: constant.RoleEmployee},
			resource:  access.ResourceUser,
			setupMock: func() {},
			want:      access.Scope{CreatedBy: "employee-1"},
		},
		{
			name:     "CustomerGetsOwnContracts",
			actor:    access.Actor{ID: "customer-1", Role: constant.RoleCustomer},
			resource: access.ResourceInvoice,
			setupMock: func() {
				mockContracts.EXPECT().
					ListUserContractIDs(gomock.Any(), "customer-1").
					Return([]string{"contract-1"}, nil)
			},
			want: access.Scope{ContractIDs: []string{"contract-1"}},
		},
		{
			name:     "CustomerWithoutContractsKeepsContractKeyedScope",
			actor:    access.Actor{ID: "customer-2", Role: constant.RoleCustomer},
			resource: access.ResourceInvoice,
			setupMock: func() {
				mockContracts.EXPECT().
					ListUserContractIDs(gomock.Any(), "customer-2").
					Return(nil, nil)
			},
			want: access.Scope{ContractIDs: []string{}},
		},
		{
			name:     "CustomerUserScopeCoversSelfAndCoOccupants",
			actor:    access.Actor{ID: "customer-1", Role: constant.RoleCustomer},
			resource: access.ResourceUser,
			setupMock: func() {
				mockContracts.EXPECT().
					ListCoOccupantUserIDs(gomock.Any(), "customer-1").
					Return([]string{"customer-3", "customer-1"}, nil)
			},
			want: access.Scope{UserIDs: []string{"customer-1", "customer-3"}},
		},
		{
			name:      "CustomerForbiddenFromBranchResource",
			actor:     access.Actor{ID: "customer-1", Role: constant.RoleCustomer},
			resource:  access.ResourceBranch,
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:      "UnknownRoleForbidden",
			actor:     access.Actor{ID: "user-1", Role: "intruder"},
			resource:  access.ResourceRoom,
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:      "UnknownResourceForbidden",
			actor:     access.Actor{ID: "admin-1", Role: constant.RoleAdmin},
			resource:  access.Resource("garage"),
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:     "SourceFailurePropagates",
			actor:    access.Actor{ID: "owner-1", Role: constant.RoleOwner},
			resource: access.ResourceRoom,
			setupMock: func() {
				mockBranches.EXPECT().
					ListOwnedBranchIDs(gomock.Any(), "owner-1").
					Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.setupMock()

			got, err := resolver.Resolve(ctx, test.actor, test.resource)
			if test.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestResolveForbiddenIsNotNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBranches := accessMocks.NewMockBranchSource(ctrl)
	mockAssignments := accessMocks.NewMockAssignmentSource(ctrl)
	mockContracts := accessMocks.NewMockContractSource(ctrl)

	resolver := access.NewResolver(mockBranches, mockAssignments, mockContracts, mocks.NewOtel())

	_, err := resolver.Resolve(context.Background(), access.Actor{ID: "customer-1", Role: constant.RoleCustomer}, access.ResourceBranch)

	assert.Error(t, err)
	assert.Equal(t, 403, failure.GetCode(err))
}
