package permissions_test

import (
	"roombook/permissions"
	"roombook/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)

	public := []struct{ path, method string }{
		{"/health", "GET"},
		{"/v1/auth/login", "POST"},
		{"/v1/rooms/", "GET"},
		{"/v1/rooms/{code}", "GET"},
		{"/v1/bookings/", "POST"},
		{"/v1/bookings/{id}", "PATCH"},
		{"/v1/bookings/{id}/customers", "POST"},
		{"/v1/bookings/{id}/extensions", "POST"},
		{"/v1/customers/{id}", "GET"},
		{"/v1/extensions/{id}", "PATCH"},
	}

	for _, route := range public {
		assert.True(t, data.FindPermissions(route.path, route.method).Skip, "%s %s should be public", route.method, route.path)
	}

	admin := []struct{ path, method string }{
		{"/v1/rooms/", "POST"},
		{"/v1/rooms/{code}", "PATCH"},
		{"/v1/rooms/{code}", "DELETE"},
		{"/v1/rooms/{code}/image", "PUT"},
		{"/v1/bookings/{id}", "DELETE"},
	}

	for _, route := range admin {
		permission := data.FindPermissions(route.path, route.method)

		assert.False(t, permission.Skip, "%s %s should be protected", route.method, route.path)
		assert.True(t, permission.Allows(constant.RoleAdmin))
		assert.False(t, permission.Allows(constant.RoleUser), "%s %s is admin only", route.method, route.path)
	}

	changePassword := data.FindPermissions("/v1/auth/change-password", "POST")
	assert.False(t, changePassword.Skip)
	assert.True(t, changePassword.Allows(constant.RoleUser))
}

func TestFindPermissions(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[
		{"path":"/v1/rooms/","method":"GET","skip":true},
		{"path":"/v1/rooms/{code}","method":"DELETE","roles":["admin"]}
	]}`))
	require.NoError(t, err)

	t.Run("trailing slash ignored", func(t *testing.T) {
		assert.True(t, data.FindPermissions("/v1/rooms", "GET").Skip)
		assert.True(t, data.FindPermissions("/v1/rooms/", "get").Skip)
	})

	t.Run("unknown route requires auth", func(t *testing.T) {
		permission := data.FindPermissions("/v1/unknown", "GET")

		assert.False(t, permission.Skip)
		assert.True(t, permission.Allows(constant.RoleUser))
	})

	t.Run("roles", func(t *testing.T) {
		permission := data.FindPermissions("/v1/rooms/{code}", "DELETE")

		assert.True(t, permission.Allows(constant.RoleAdmin))
		assert.False(t, permission.Allows(""))
	})
}

func TestParse(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints":`))
	assert.Error(t, err)

	_, err = permissions.Parse([]byte(`{"endpoints":[
		{"path":"/v1/rooms","method":"GET"},
		{"path":"/v1/rooms/","method":"GET"}
	]}`))
	assert.ErrorContains(t, err, "unique")
}
