package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "marketcatalyst/internal/errors"
)

func newTestJWTService() *JWTService {
	return NewJWTService("test-issuer", "test-audience", "test-secret")
}

func TestJWTService_Generate_Roles(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     []string
	}{
		{
			name:     "regular user gets DataConsumer only",
			username: "alice",
			want:     []string{RoleDataConsumer},
		},
		{
			name:     "privileged user also gets Admin",
			username: "tkerstiens",
			want:     []string{RoleDataConsumer, RoleAdmin},
		},
	}

	svc := newTestJWTService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, claims, err := svc.Generate(42, tt.username)

			require.NoError(t, err)
			assert.NotEmpty(t, signed)
			assert.Equal(t, tt.want, claims.Roles)
		})
	}
}

func TestJWTService_Generate_ClaimShape(t *testing.T) {
	svc := newTestJWTService()

	before := time.Now().UTC()
	signed, claims, err := svc.Generate(7, "alice")
	require.NoError(t, err)

	parsed, err := svc.Parse(signed)
	require.NoError(t, err)

	assert.Equal(t, "7", parsed.Subject)
	assert.Equal(t, "test-issuer", parsed.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"test-audience"}, parsed.Audience)
	assert.NotEmpty(t, parsed.ID)
	assert.Equal(t, claims.ID, parsed.ID)

	// Expiry is one day after issuance.
	lifetime := parsed.ExpiresAt.Sub(parsed.IssuedAt.Time)
	assert.Equal(t, TokenExpiry, lifetime)
	assert.WithinDuration(t, before.Add(TokenExpiry), parsed.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_Generate_NotConfigured(t *testing.T) {
	tests := []struct {
		name string
		svc  *JWTService
	}{
		{name: "missing secret", svc: NewJWTService("iss", "aud", "")},
		{name: "missing issuer", svc: NewJWTService("", "aud", "secret")},
		{name: "missing audience", svc: NewJWTService("iss", "", "secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.svc.Generate(1, "alice")
			assert.ErrorIs(t, err, apperrors.ErrJWTNotConfigured)
		})
	}
}

func TestJWTService_Parse_WrongSecret(t *testing.T) {
	signed, _, err := newTestJWTService().Generate(1, "alice")
	require.NoError(t, err)

	other := NewJWTService("test-issuer", "test-audience", "another-secret")
	_, err = other.Parse(signed)
	assert.Error(t, err)
}

func TestJWTService_Parse_Expired(t *testing.T) {
	svc := newTestJWTService()

	past := time.Now().UTC().Add(-time.Hour)
	claims := &Claims{
		Roles: []string{RoleDataConsumer},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "test-issuer",
			Audience:  jwt.ClaimStrings{"test-audience"},
			IssuedAt:  jwt.NewNumericDate(past.Add(-TokenExpiry)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Parse(signed)
	assert.Error(t, err)
}

func TestJWTService_Parse_WrongIssuerOrAudience(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		audience string
	}{
		{name: "wrong issuer", issuer: "someone-else", audience: "test-audience"},
		{name: "wrong audience", issuer: "test-issuer", audience: "someone-else"},
	}

	svc := newTestJWTService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, _, err := NewJWTService(tt.issuer, tt.audience, "test-secret").Generate(1, "alice")
			require.NoError(t, err)

			_, err = svc.Parse(signed)
			assert.Error(t, err)
		})
	}
}

func TestHasRole(t *testing.T) {
	claims := &Claims{Roles: []string{RoleDataConsumer, RoleAdmin}}

	assert.True(t, HasRole(claims, RoleDataConsumer))
	assert.True(t, HasRole(claims, RoleAdmin))
	assert.False(t, HasRole(claims, "Auditor"))
	assert.False(t, HasRole(&Claims{}, RoleDataConsumer))
}
