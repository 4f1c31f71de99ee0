package access

//go:generate go run go.uber.org/mock/mockgen -source=./resolver.go -destination=./mocks/resolver_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"kosan/infras/otel"
	"kosan/shared/constant"
	"kosan/shared/failure"
)

// allowedRoles gates resolution before any query runs: a role missing from a resource's
// set fails with Forbidden even when the requested row does not exist, so error codes
// never leak existence.
var allowedRoles = map[Resource][]string{
	ResourceBranch:   {constant.RoleAdmin, constant.RoleOwner, constant.RoleEmployee},
	ResourceRoom:     {constant.RoleAdmin, constant.RoleOwner, constant.RoleEmployee},
	ResourceContract: {constant.RoleAdmin, constant.RoleOwner, constant.RoleEmployee, constant.RoleCustomer},
	ResourceInvoice:  {constant.RoleAdmin, constant.RoleOwner, constant.RoleEmployee, constant.RoleCustomer},
	ResourceUsage:    {constant.RoleAdmin, constant.RoleOwner, constant.RoleEmployee, constant.RoleCustomer},
	ResourceUser:     {constant.RoleAdmin, constant.RoleOwner, constant.RoleEmployee, constant.RoleCustomer},
}

// BranchSource lists the branches an owner holds.
type BranchSource interface {
	ListOwnedBranchIDs(ctx context.Context, ownerID string) ([]string, error)
	ListBranchUserIDs(ctx context.Context, branchIDs []string) ([]string, error)
}

// AssignmentSource lists the branches an employee is assigned to.
type AssignmentSource interface {
	ListAssignedBranchIDs(ctx context.Context, employeeID string) ([]string, error)
}

// ContractSource lists the contracts a customer holds and the users sharing a room
// with them.
type ContractSource interface {
	ListUserContractIDs(ctx context.Context, userID string) ([]string, error)
	ListCoOccupantUserIDs(ctx context.Context, userID string) ([]string, error)
}

// Resolver derives the scope predicate for an actor and a resource kind. It issues only
// read-only ownership/assignment queries and has no side effects.
type Resolver interface {
	Resolve(ctx context.Context, actor Actor, resource Resource) (Scope, error)
}

type strategy interface {
	resolve(ctx context.Context, actorID string, resource Resource) (Scope, error)
}

type resolverImpl struct {
	strategies map[string]strategy
	otel       otel.Otel
}

func NewResolver(branches BranchSource, assignments AssignmentSource, contracts ContractSource, otl otel.Otel) Resolver {
	return &resolverImpl{
		strategies: map[string]strategy{
			constant.RoleAdmin:    adminStrategy{},
			constant.RoleOwner:    ownerStrategy{branches: branches},
			constant.RoleEmployee: employeeStrategy{assignments: assignments},
			constant.RoleCustomer: customerStrategy{contracts: contracts},
		},
		otel: otl,
	}
}

func (r *resolverImpl) Resolve(ctx context.Context, actor Actor, resource Resource) (res Scope, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".access.Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	allowed, known := allowedRoles[resource]
	if !known {
		return Scope{}, failure.Forbidden(fmt.Sprintf("unknown resource kind %q", resource)) //nolint:wrapcheck
	}

	if !slices.Contains(allowed, actor.Role) {
		log.Warn().
			Str("actor", actor.ID).
			Str("role", actor.Role).
			Str("resource", string(resource)).
			Msg("role not allowed for resource")

		return Scope{}, failure.ForbiddenError //nolint:wrapcheck
	}

	strat, ok := r.strategies[actor.Role]
	if !ok {
		return Scope{}, failure.ForbiddenError //nolint:wrapcheck
	}

	res, err = strat.resolve(ctx, actor.ID, resource)
	if err != nil {
		return Scope{}, fmt.Errorf("failed to resolve %s scope for %s: %w", resource, actor.ID, err)
	}

	return res, nil
}

type adminStrategy struct{}

func (adminStrategy) resolve(_ context.Context, _ string, _ Resource) (Scope, error) {
	return Scope{All: true}, nil
}

type ownerStrategy struct {
	branches BranchSource
}

func (s ownerStrategy) resolve(ctx context.Context, actorID string, resource Resource) (Scope, error) {
	branchIDs, err := s.branches.ListOwnedBranchIDs(ctx, actorID)
	if err != nil {
		return Scope{}, fmt.Errorf("failed to list owned branches: %w", err)
	}

	if resource != ResourceUser {
		return Scope{BranchIDs: branchIDs}, nil
	}

	userIDs, err := s.branches.ListBranchUserIDs(ctx, branchIDs)
	if err != nil {
		return Scope{}, fmt.Errorf("failed to list branch users: %w", err)
	}

	return Scope{BranchIDs: branchIDs, UserIDs: userIDs}, nil
}

type employeeStrategy struct {
	assignments AssignmentSource
}

func (s employeeStrategy) resolve(ctx context.Context, actorID string, resource Resource) (Scope, error) {
	if resource == ResourceUser {
		// Employees only see users they personally onboarded.
		return Scope{CreatedBy: actorID}, nil
	}

	branchIDs, err := s.assignments.ListAssignedBranchIDs(ctx, actorID)
	if err != nil {
		return Scope{}, fmt.Errorf("failed to list assigned branches: %w", err)
	}

	return Scope{BranchIDs: branchIDs}, nil
}

type customerStrategy struct {
	contracts ContractSource
}

func (s customerStrategy) resolve(ctx context.Context, actorID string, resource Resource) (Scope, error) {
	if resource == ResourceUser {
		coOccupants, err := s.contracts.ListCoOccupantUserIDs(ctx, actorID)
		if err != nil {
			return Scope{}, fmt.Errorf("failed to list co-occupants: %w", err)
		}

		userIDs := []string{actorID}

		for _, id := range coOccupants {
			if !slices.Contains(userIDs, id) {
				userIDs = append(userIDs, id)
			}
		}

		return Scope{UserIDs: userIDs}, nil
	}

	contractIDs, err := s.contracts.ListUserContractIDs(ctx, actorID)
	if err != nil {
		return Scope{}, fmt.Errorf("failed to list user contracts: %w", err)
	}

	// Customers never get branch-level scope. ContractIDs stays non-nil even when
	// empty so RowFilter keys on contracts.
	if contractIDs == nil {
		contractIDs = []string{}
	}

	return Scope{ContractIDs: contractIDs}, nil
}
