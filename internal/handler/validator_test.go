package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type validatedRequest struct {
	UserID string `validate:"required,uuid"`
	Stat   string `validate:"statcode"`
	Name   string `validate:"max=10"`
}

func TestValidateStruct(t *testing.T) {
	InitValidator()

	tests := []struct {
		name    string
		req     validatedRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req:  validatedRequest{UserID: "7a9db6a5-8c11-4f0d-9361-0f1c627f6d8a", Stat: "STR"},
		},
		{
			name:    "missing user id",
			req:     validatedRequest{Stat: "STR"},
			wantErr: true,
		},
		{
			name:    "invalid stat code",
			req:     validatedRequest{UserID: "7a9db6a5-8c11-4f0d-9361-0f1c627f6d8a", Stat: "AGI"},
			wantErr: true,
		},
		{
			name: "lowercase stat code accepted",
			req:  validatedRequest{UserID: "7a9db6a5-8c11-4f0d-9361-0f1c627f6d8a", Stat: "str"},
		},
		{
			name: "empty stat code passes without required",
			req:  validatedRequest{UserID: "7a9db6a5-8c11-4f0d-9361-0f1c627f6d8a"},
		},
		{
			name:    "name too long",
			req:     validatedRequest{UserID: "7a9db6a5-8c11-4f0d-9361-0f1c627f6d8a", Name: "a very long name"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GetValidator().ValidateStruct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	InitValidator()

	err := GetValidator().ValidateStruct(validatedRequest{Stat: "AGI", Name: "far too long a name"})
	assert.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["userid"])
	assert.Equal(t, "Invalid attribute code", fields["stat"])
	assert.Equal(t, "Must be at most 10 characters", fields["name"])
}

func TestFormatValidationErrorNonValidator(t *testing.T) {
	fields := FormatValidationError(assert.AnError)
	assert.Equal(t, "Invalid request format", fields["error"])
}
