package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kosan/permissions"
	"kosan/shared/constant"
)

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	assert.NotNil(t, data)

	tests := []struct {
		name   string
		path   string
		method string
		roles  []string
		denied []string
		skip   bool
	}{
		{
			name:   "login is public",
			path:   "/v1/auth/login",
			method: "POST",
			skip:   true,
		},
		{
			name:   "user listing admits every role including customers",
			path:   "/v1/users/",
			method: "GET",
			roles:  []string{constant.RoleAdmin, constant.RoleOwner, constant.RoleEmployee, constant.RoleCustomer},
		},
		{
			name:   "user creation excludes customers",
			path:   "/v1/users/",
			method: "POST",
			denied: []string{constant.RoleCustomer},
		},
		{
			name:   "bulk invoice generation excludes customers",
			path:   "/v1/invoices/bulk",
			method: "POST",
			denied: []string{constant.RoleCustomer},
		},
		{
			name:   "invoice detail readable by customers",
			path:   "/v1/invoices/{id}/details",
			method: "GET",
			roles:  []string{constant.RoleAdmin, constant.RoleOwner, constant.RoleEmployee, constant.RoleCustomer},
		},
		{
			name:   "unknown route yields empty permission",
			path:   "/v1/nope",
			method: "GET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perm := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, perm.Skip)

			for _, role := range tt.roles {
				assert.Contains(t, perm.Permissions, role)
			}

			for _, role := range tt.denied {
				assert.NotContains(t, perm.Permissions, role)
			}
		})
	}
}
