package access

import (
	"slices"

	"kosan/shared/dto"
)

// Resource is the kind of row a scope is resolved against.
type Resource string

const (
	ResourceBranch   Resource = "branch"
	ResourceRoom     Resource = "room"
	ResourceContract Resource = "contract"
	ResourceInvoice  Resource = "invoice"
	ResourceUsage    Resource = "usage"
	ResourceUser     Resource = "user"
)

// Actor is the identity context a request resolves to.
type Actor struct {
	ID   string
	Role string
}

// Scope is the predicate describing which rows an actor may touch. Exactly one of the
// narrowing fields is meaningful per role: All for admins, BranchIDs for owners and
// employees, ContractIDs for customers. UserIDs and CreatedBy only apply to user listing.
type Scope struct {
	All         bool
	BranchIDs   []string
	ContractIDs []string
	UserIDs     []string
	CreatedBy   string
}

// matchNothing is the predicate for an actor whose scope resolved to an empty set.
func matchNothing() dto.Filter {
	return dto.Filter{
		Operator: dto.FilterPlainQuery,
		Value:    "1 = 0",
	}
}

func inFilter(table, field, argName string, values []string) dto.FilterGroup {
	if len(values) == 0 {
		return dto.FilterGroup{Filters: []any{matchNothing()}}
	}

	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				ArgName:  argName,
				Field:    field,
				Operator: dto.FilterOperatorIn,
				Value:    values,
				Table:    table,
			},
		},
	}
}

// IDFilter builds the predicate for an explicit, already-materialized id set. Used
// when a scope must be projected through a join first (branch scope onto room-keyed
// rows).
func IDFilter(table, field string, ids []string) dto.FilterGroup {
	return inFilter(table, field, "scope_"+field, ids)
}

// BranchFilter narrows a query on the given table by the scope's branch set.
func (s Scope) BranchFilter(table, field string) dto.FilterGroup {
	if s.All {
		return dto.FilterGroup{}
	}

	return inFilter(table, field, "scope_branch_id", s.BranchIDs)
}

// ContractFilter narrows a query on the given table by the scope's contract set.
func (s Scope) ContractFilter(table, field string) dto.FilterGroup {
	if s.All {
		return dto.FilterGroup{}
	}

	return inFilter(table, field, "scope_contract_id", s.ContractIDs)
}

// RowFilter picks the narrowing the scope carries: contract-keyed for customers,
// branch-keyed otherwise. Used by resources reachable through both chains (invoices,
// usages, contracts).
func (s Scope) RowFilter(table, branchField, contractField string) dto.FilterGroup {
	if s.All {
		return dto.FilterGroup{}
	}

	if s.ContractIDs != nil {
		return inFilter(table, contractField, "scope_contract_id", s.ContractIDs)
	}

	return inFilter(table, branchField, "scope_branch_id", s.BranchIDs)
}

// UserFilter narrows a user listing by provenance: an explicit user-id set, or the
// created_by chain for employees.
func (s Scope) UserFilter(table, idField, createdByField string) dto.FilterGroup {
	if s.All {
		return dto.FilterGroup{}
	}

	if s.CreatedBy != "" {
		return dto.FilterGroup{
			Filters: []any{
				dto.Filter{
					Field:    createdByField,
					Operator: dto.FilterOperatorEq,
					Value:    s.CreatedBy,
					Table:    table,
				},
			},
		}
	}

	return inFilter(table, idField, "scope_user_id", s.UserIDs)
}

// AllowsBranch reports whether the branch is inside scope.
func (s Scope) AllowsBranch(branchID string) bool {
	return s.All || slices.Contains(s.BranchIDs, branchID)
}

// AllowsContract reports whether the contract is inside scope.
func (s Scope) AllowsContract(contractID string) bool {
	return s.All || slices.Contains(s.ContractIDs, contractID)
}

// AllowsUser reports whether the user id is inside a user-listing scope.
func (s Scope) AllowsUser(userID string) bool {
	return s.All || slices.Contains(s.UserIDs, userID)
}
