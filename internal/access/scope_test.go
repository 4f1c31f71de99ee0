package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kosan/internal/access"
	"kosan/shared/dto"
)

func TestScopeFilters(t *testing.T) {
	t.Run("UnboundedScopeAddsNoPredicate", func(t *testing.T) {
		scope := access.Scope{All: true}

		assert.Empty(t, scope.BranchFilter("rooms", "branch_id").Filters)
		assert.Empty(t, scope.RowFilter("invoices", "branch_id", "contract_id").Filters)
		assert.Empty(t, scope.UserFilter("users", "id", "created_by").Filters)
	})

	t.Run("BranchFilterNarrowsByBranchSet", func(t *testing.T) {
		scope := access.Scope{BranchIDs: []string{"branch-1", "branch-2"}}

		group := scope.BranchFilter("rooms", "branch_id")

		assert.Len(t, group.Filters, 1)

		filter, ok := group.Filters[0].(dto.Filter)
		assert.True(t, ok)
		assert.Equal(t, "branch_id", filter.Field)
		assert.Equal(t, dto.FilterOperatorIn, filter.Operator)
		assert.Equal(t, []string{"branch-1", "branch-2"}, filter.Value)
		assert.Equal(t, "rooms", filter.Table)
	})

	t.Run("EmptyBranchSetMatchesNothing", func(t *testing.T) {
		scope := access.Scope{}

		group := scope.BranchFilter("rooms", "branch_id")

		assert.Len(t, group.Filters, 1)

		filter, ok := group.Filters[0].(dto.Filter)
		assert.True(t, ok)
		assert.Equal(t, dto.FilterPlainQuery, filter.Operator)
		assert.Equal(t, "1 = 0", filter.Value)
	})

	t.Run("RowFilterPrefersContractScope", func(t *testing.T) {
		scope := access.Scope{ContractIDs: []string{"contract-1"}}

		group := scope.RowFilter("invoices", "branch_id", "contract_id")

		assert.Len(t, group.Filters, 1)

		filter, ok := group.Filters[0].(dto.Filter)
		assert.True(t, ok)
		assert.Equal(t, "contract_id", filter.Field)
		assert.Equal(t, []string{"contract-1"}, filter.Value)
	})

	t.Run("ContractlessCustomerMatchesNothing", func(t *testing.T) {
		scope := access.Scope{ContractIDs: []string{}}

		group := scope.RowFilter("invoices", "branch_id", "contract_id")

		assert.Len(t, group.Filters, 1)

		filter, ok := group.Filters[0].(dto.Filter)
		assert.True(t, ok)
		assert.Equal(t, dto.FilterPlainQuery, filter.Operator)
	})

	t.Run("UserFilterUsesCreatedByChain", func(t *testing.T) {
		scope := access.Scope{CreatedBy: "employee-1"}

		group := scope.UserFilter("users", "id", "created_by")

		assert.Len(t, group.Filters, 1)

		filter, ok := group.Filters[0].(dto.Filter)
		assert.True(t, ok)
		assert.Equal(t, "created_by", filter.Field)
		assert.Equal(t, dto.FilterOperatorEq, filter.Operator)
		assert.Equal(t, "employee-1", filter.Value)
	})

	t.Run("IDFilterProjectsMaterializedSet", func(t *testing.T) {
		group := access.IDFilter("utility_usages", "room_id", []string{"room-1"})

		assert.Len(t, group.Filters, 1)

		filter, ok := group.Filters[0].(dto.Filter)
		assert.True(t, ok)
		assert.Equal(t, "room_id", filter.Field)
		assert.Equal(t, []string{"room-1"}, filter.Value)
	})
}

func TestScopeAllows(t *testing.T) {
	scope := access.Scope{BranchIDs: []string{"branch-1"}, ContractIDs: []string{"contract-1"}, UserIDs: []string{"user-1"}}

	assert.True(t, scope.AllowsBranch("branch-1"))
	assert.False(t, scope.AllowsBranch("branch-2"))
	assert.True(t, scope.AllowsContract("contract-1"))
	assert.False(t, scope.AllowsContract("contract-2"))
	assert.True(t, scope.AllowsUser("user-1"))
	assert.False(t, scope.AllowsUser("user-2"))

	all := access.Scope{All: true}

	assert.True(t, all.AllowsBranch("anything"))
	assert.True(t, all.AllowsContract("anything"))
	assert.True(t, all.AllowsUser("anything"))
}
