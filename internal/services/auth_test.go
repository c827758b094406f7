package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/internal/store"
	"github.com/AnshRaj112/natpac-travel-backend/pkg/utils"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	tokens := newTokens()
	svc := NewAuthService(store.NewMemoryStore(), store.NewFallbackStore(), tokens, nil)

	reg, err := svc.Register(ctx, "a@x.com", "secret123", "Alice")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", reg.Claims.Email)
	require.Equal(t, "Alice", reg.Claims.Name)
	require.Nil(t, reg.Claims.Consent)

	_, err = svc.Register(ctx, "a@x.com", "different", "Alice Again")
	require.ErrorIs(t, err, errs.ErrDuplicateEmail)

	login, err := svc.Login(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	require.False(t, login.FallbackMode)

	claims, err := tokens.Verify(login.Token)
	require.NoError(t, err)
	require.Equal(t, reg.Claims.ID, claims.ID)
}

func TestAuthService_RegisterMissingFields(t *testing.T) {
	svc := NewAuthService(store.NewMemoryStore(), nil, newTokens(), nil)
	for _, in := range [][3]string{{"", "p", "n"}, {"e@x.com", "", "n"}, {"e@x.com", "p", "  "}} {
		_, err := svc.Register(context.Background(), in[0], in[1], in[2])
		require.ErrorIs(t, err, errs.ErrMissingField)
	}
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(store.NewMemoryStore(), store.NewFallbackStore(), newTokens(), nil)
	_, err := svc.Register(ctx, "a@x.com", "secret123", "Alice")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "a@x.com", "nope")
	_, unknownEmail := svc.Login(ctx, "ghost@x.com", "secret123")
	require.ErrorIs(t, wrongPassword, errs.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, errs.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_FallbackLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(downStore{}, store.NewFallbackStore(), newTokens(), nil)

	res, err := svc.Login(ctx, "demo@example.com", store.DemoPassword)
	require.NoError(t, err)
	require.True(t, res.FallbackMode)
	require.Equal(t, "demo-user-1", res.Claims.ID)
	require.True(t, *res.Claims.Consent)

	_, err = svc.Login(ctx, "demo@example.com", "secret123")
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "someone@x.com", store.DemoPassword)
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestAuthService_NoFallbackForWrites(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(downStore{}, store.NewFallbackStore(), newTokens(), nil)

	_, err := svc.Register(ctx, "demo2@example.com", "secret123", "Demo Two")
	require.ErrorIs(t, err, errs.ErrUnavailable)

	err = svc.UpdateConsent(ctx, &Claims{ID: "demo-user-1"}, true)
	require.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestAuthService_UpdateConsent(t *testing.T) {
	ctx := context.Background()
	primary := store.NewMemoryStore()
	svc := NewAuthService(primary, nil, newTokens(), nil)

	reg, err := svc.Register(ctx, "a@x.com", "secret123", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateConsent(ctx, &reg.Claims, true))
	require.NoError(t, svc.UpdateConsent(ctx, &reg.Claims, true))

	login, err := svc.Login(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	require.True(t, *login.Claims.Consent)

	// Changing one's mind later is permitted.
	require.NoError(t, svc.UpdateConsent(ctx, &reg.Claims, false))
	u, err := primary.FindUserByID(ctx, reg.Claims.ID)
	require.NoError(t, err)
	require.False(t, *u.Consent)

	require.ErrorIs(t, svc.UpdateConsent(ctx, &Claims{ID: "gone"}, true), errs.ErrNotFound)
	require.ErrorIs(t, svc.UpdateConsent(ctx, nil, true), errs.ErrUnauthorized)
}

func TestAuthService_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(store.NewMemoryStore(), nil, newTokens(), nil)

	reg, err := svc.Register(ctx, "  Bob@Example.COM ", "secret123", "Bob")
	require.NoError(t, err)
	require.Equal(t, "Bob@Example.COM", reg.Claims.Email)

	_, err = svc.Login(ctx, "Bob@Example.COM", "secret123")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "bob@example.com", "secret123")
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)

	// A differently cased address is a different account.
	_, err = svc.Register(ctx, "bob@example.com", "secret123", "Other Bob")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "not-an-email", "secret123", "Bob")
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestAuthService_RegisterDuplicateWithoutUniqueIndex(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second registration conflicts", func(mt *mtest.T) {
		ctx := context.Background()
		svc := NewAuthService(store.NewMongoStoreFromDB(mt.DB), nil, newTokens(), nil)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "natpac.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)
		reg, err := svc.Register(ctx, "a@x.com", "secret123", "Alice")
		require.NoError(mt, err)

		oid, err := primitive.ObjectIDFromHex(reg.Claims.ID)
		require.NoError(mt, err)

		// Without the index an insert would succeed again.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "natpac.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: oid},
				{Key: "name", Value: "Alice"},
				{Key: "email", Value: "a@x.com"},
				{Key: "password", Value: "hash"},
			}),
			mtest.CreateSuccessResponse(),
		)
		_, err = svc.Register(ctx, "a@x.com", "another1", "Alice Again")
		require.ErrorIs(mt, err, errs.ErrDuplicateEmail)
	})
}

func TestAuthService_RegisterPasswordTooLong(t *testing.T) {
	svc := NewAuthService(store.NewMemoryStore(), nil, newTokens(), nil)

	_, err := svc.Register(context.Background(), "a@x.com", strings.Repeat("p", 73), "Alice")
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "password", ve.Field)
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(store.NewMemoryStore(), store.NewFallbackStore(), newTokens(), nil)

	reg, err := svc.Register(ctx, "a@x.com", "secret123", "Alice")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateConsent(ctx, &reg.Claims, true))

	// The stored record reflects consent given after the token was minted.
	u, err := svc.CurrentUser(ctx, &reg.Claims)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", u.Email)
	require.True(t, *u.Consent)

	demo, err := svc.CurrentUser(ctx, &Claims{ID: "demo-user-1"})
	require.NoError(t, err)
	require.Equal(t, "demo@example.com", demo.Email)

	_, err = svc.CurrentUser(ctx, &Claims{ID: "gone"})
	require.ErrorIs(t, err, errs.ErrNotFound)
	_, err = svc.CurrentUser(ctx, nil)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	down := NewAuthService(downStore{}, nil, newTokens(), nil)
	_, err = down.CurrentUser(ctx, &reg.Claims)
	require.ErrorIs(t, err, errs.ErrUnavailable)
}
