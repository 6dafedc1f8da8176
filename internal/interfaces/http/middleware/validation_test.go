package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	require.NotNil(t, v)
}

func TestPermissionTag(t *testing.T) {
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type payload struct {
		Permission string `json:"permission" binding:"permission"`
	}

	valid := []string{
		"proposals:read",
		"proposals:read:ALL",
		"customers:update:TEAM",
		"proposals:delete:OWN",
		"*:*:*",
	}
	for _, p := range valid {
		assert.NoError(t, v.Struct(payload{Permission: p}), p)
	}

	invalid := []string{
		"",
		"proposals",
		"proposals:",
		":read:ALL",
		"proposals:read:GLOBAL",
		"proposals:read:ALL:extra",
	}
	for _, p := range invalid {
		assert.Error(t, v.Struct(payload{Permission: p}), p)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type payload struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name" binding:"required,min=2"`
	}

	err := v.Struct(payload{Email: "not-an-email", Name: ""})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-123")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)

	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "name")
}
