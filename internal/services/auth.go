// Package services holds the request-level orchestration between the token
// service, the primary store and the demo fallback store.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
	"github.com/AnshRaj112/natpac-travel-backend/internal/store"
	"github.com/AnshRaj112/natpac-travel-backend/pkg/utils"
)

// LoginResult is a minted session plus a marker telling the client the
// credentials were checked against demo data.
type LoginResult struct {
	Token        string
	Claims       Claims
	FallbackMode bool
}

type AuthService struct {
	primary  store.Store
	fallback store.Store
	tokens   *TokenService
	log      *zap.Logger
}

// NewAuthService wires the primary store and the fallback used by Login only.
func NewAuthService(primary, fallback store.Store, tokens *TokenService, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{primary: primary, fallback: fallback, tokens: tokens, log: log}
}

// Register creates a user with consent unset and returns a session for it.
// There is no fallback: an unreachable store surfaces as errs.ErrUnavailable.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*LoginResult, error) {
	email = utils.NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, utils.Missing("email", "Email, password, and name are required")
	}
	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}

	// The unique index is the last word on duplicates; this check answers the
	// common case without a write.
	switch _, err := s.primary.FindUserByEmail(ctx, email); {
	case err == nil:
		return nil, errs.ErrDuplicateEmail
	case !errors.Is(err, errs.ErrNotFound):
		return nil, unavailable("register", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.primary.CreateUser(ctx, u); err != nil {
		if errors.Is(err, errs.ErrDuplicateEmail) {
			return nil, errs.ErrDuplicateEmail
		}
		return nil, unavailable("register", err)
	}

	token, claims, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Claims: claims}, nil
}

// Login checks credentials against the primary store. When the store is
// unreachable it switches to the fallback store, where only the demo password
// is accepted, and flags the result.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, utils.Missing("email", "Email and password are required")
	}

	u, err := s.primary.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		ok, verr := utils.VerifyPassword(password, u.Password)
		if verr != nil || !ok {
			return nil, errs.ErrInvalidCredentials
		}
		return s.session(u, false)
	case errors.Is(err, errs.ErrNotFound):
		return nil, errs.ErrInvalidCredentials
	case store.ShouldUseFallback(err) && s.fallback != nil:
		s.log.Warn("primary store unavailable, using fallback authentication", zap.Error(err))
		return s.fallbackLogin(ctx, email, password)
	default:
		return nil, unavailable("login", err)
	}
}

func (s *AuthService) fallbackLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.fallback.FindUserByEmail(ctx, email)
	if err != nil || password != store.DemoPassword {
		return nil, errs.ErrInvalidCredentials
	}
	return s.session(u, true)
}

func (s *AuthService) session(u *models.User, fallback bool) (*LoginResult, error) {
	token, claims, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Claims: claims, FallbackMode: fallback}, nil
}

// CurrentUser loads the caller's stored record. Sessions minted in demo mode
// are resolved against the fallback store.
func (s *AuthService) CurrentUser(ctx context.Context, claims *Claims) (*models.User, error) {
	if claims == nil || claims.ID == "" {
		return nil, errs.ErrUnauthorized
	}
	u, err := s.primary.FindUserByID(ctx, claims.ID)
	if err == nil {
		return u, nil
	}
	if s.fallback != nil && (errors.Is(err, errs.ErrNotFound) || store.ShouldUseFallback(err)) {
		if fu, ferr := s.fallback.FindUserByID(ctx, claims.ID); ferr == nil {
			return fu, nil
		}
	}
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrNotFound
	}
	return nil, unavailable("current user", err)
}

// UpdateConsent records the caller's decision. Writing the current value is a
// no-op and a later change of mind is allowed.
func (s *AuthService) UpdateConsent(ctx context.Context, claims *Claims, consent bool) error {
	if claims == nil || claims.ID == "" {
		return errs.ErrUnauthorized
	}
	if err := s.primary.SetConsent(ctx, claims.ID, consent); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrNotFound
		}
		return unavailable("update consent", err)
	}
	s.log.Info("consent updated", zap.String("user_id", claims.ID), zap.Bool("consent", consent))
	return nil
}

// unavailable tags infrastructure failures so handlers answer 503; anything
// else is passed through wrapped.
func unavailable(op string, err error) error {
	if store.ShouldUseFallback(err) && !errors.Is(err, errs.ErrUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, errs.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
