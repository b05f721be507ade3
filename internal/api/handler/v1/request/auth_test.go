package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignupRequest() SignupRequest {
	return SignupRequest{
		Email:    "maria@example.com",
		Password: "secret123",
		Name:     "Maria",
		CNPJ:     "11222333000144",
		WhatsApp: "+5511999998888",
	}
}

func TestSignupRequestValidate(t *testing.T) {
	req := validSignupRequest()
	assert.NoError(t, req.Validate())
}

func TestSignupRequestPasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"letters and digits pass", "abcdef12", nil},
		{"digits only", "12345678", errInvalidPassword},
		{"letters only", "abcdefgh", errInvalidPassword},
		{"too short", "abc123", errInvalidPassword},
		{"symbols allowed alongside letter and digit", "p@ssw0rd!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignupRequest()
			req.Password = tt.password

			err := req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSignupRequestRejectsBadFields(t *testing.T) {
	req := validSignupRequest()
	req.Email = "not-an-email"
	assert.Error(t, req.Validate())

	req = validSignupRequest()
	req.CNPJ = "123"
	assert.Error(t, req.Validate())

	req = validSignupRequest()
	req.Name = ""
	assert.Error(t, req.Validate())
}
