package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passwordPayload struct {
	Password string `validate:"required,password"`
}

func TestPasswordRule(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all character classes", "Str0ng!pass", true},
		{"too short", "S7r!ng", false},
		{"missing uppercase", "str0ng!pass", false},
		{"missing lowercase", "STR0NG!PASS", false},
		{"missing digit", "Strong!pass", false},
		{"missing special", "Str0ngpass", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&passwordPayload{Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateReturnsBadRequest(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&passwordPayload{Password: "weak"})
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
