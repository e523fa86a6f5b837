package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "marketcatalyst/internal/errors"
)

// TokenExpiry is the lifetime of an issued bearer token.
const TokenExpiry = 24 * time.Hour

const (
	// RoleDataConsumer is attached to every issued token.
	RoleDataConsumer = "DataConsumer"
	// RoleAdmin is attached only to the privileged account.
	RoleAdmin = "Admin"
)

// adminUsername is the single account that receives the Admin role.
const adminUsername = "tkerstiens"

// Claims is the claim set carried by issued tokens.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether role is present in the claim set.
func HasRole(c *Claims, role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// JWTService signs and verifies bearer tokens with a symmetric secret.
type JWTService struct {
	issuer   string
	audience string
	secret   []byte
}

// NewJWTService creates a JWT service from the configured settings.
func NewJWTService(issuer, audience, secret string) *JWTService {
	return &JWTService{
		issuer:   issuer,
		audience: audience,
		secret:   []byte(secret),
	}
}

// Generate builds and signs a token for the user, returning the signed
// string together with the claims it carries. Every token has the
// DataConsumer role; the privileged username additionally receives Admin.
// Expiry is issuance time + TokenExpiry in UTC.
func (s *JWTService) Generate(userID uint, username string) (string, *Claims, error) {
	if len(s.secret) == 0 || s.issuer == "" || s.audience == "" {
		return "", nil, apperrors.ErrJWTNotConfigured
	}

	roles := []string{RoleDataConsumer}
	if username == adminUsername {
		roles = append(roles, RoleAdmin)
	}

	now := time.Now().UTC()
	expires := now.Add(TokenExpiry)
	claims := &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Parse verifies signature, lifetime, issuer and audience and returns the
// claims.
func (s *JWTService) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, errors.New("invalid token issuer")
	}
	if !claims.VerifyAudience(s.audience, true) {
		return nil, errors.New("invalid token audience")
	}
	return claims, nil
}
