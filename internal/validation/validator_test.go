package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"displayName,omitempty" validate:"omitempty,max=50"`
}

type settingsRequest struct {
	ThemeMode        string `json:"themeMode" validate:"omitempty,oneof=light dark system"`
	NotificationTime string `json:"notificationTime" validate:"omitempty,timeofday"`
	CoverColor       string `json:"coverColor" validate:"omitempty,hexcolor"`
}

func TestValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		input  any
		fields map[string]string
	}{
		{
			name:  "valid sign up",
			input: signUpRequest{Email: "a@example.com", Password: "secret1"},
		},
		{
			name:  "missing fields use json names",
			input: signUpRequest{},
			fields: map[string]string{
				"email":    "is required",
				"password": "is required",
			},
		},
		{
			name:  "bad email and short password",
			input: signUpRequest{Email: "nope", Password: "123"},
			fields: map[string]string{
				"email":    "must be a valid email address",
				"password": "must be at least 6 characters",
			},
		},
		{
			name:  "valid settings",
			input: settingsRequest{ThemeMode: "dark", NotificationTime: "23:59", CoverColor: "#6366F1"},
		},
		{
			name:  "invalid settings",
			input: settingsRequest{ThemeMode: "neon", NotificationTime: "24:00", CoverColor: "blue"},
			fields: map[string]string{
				"themeMode":        "must be one of: light dark system",
				"notificationTime": "must be a time in HH:MM format",
				"coverColor":       "must be a hex color",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Fields: map[string]string{"password": "is required", "email": "is required"}}
	assert.Equal(t, "validation failed: email is required, password is required", err.Error())
}
