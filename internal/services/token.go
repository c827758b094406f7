package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
)

// Claims is the identity and consent snapshot carried by a session token.
// Consent is encoded as null, true or false.
type Claims struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Consent *bool  `json:"consent"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HS256 session tokens. Tokens are not stored;
// expiry is the only way a token stops working.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), lifetime: lifetime, now: time.Now}
}

// Issue signs a token for u.
func (s *TokenService) Issue(u *models.User) (string, Claims, error) {
	now := s.now()
	claims := Claims{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Consent: u.Consent,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify checks signature, algorithm and expiry. Every failure is reported as
// errs.ErrInvalidToken so callers cannot leak which check failed.
func (s *TokenService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Join(errs.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}

// ExtractBearer returns the token from an "Authorization: Bearer <token>"
// header value. A missing header or any other scheme yields ("", false).
func ExtractBearer(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
