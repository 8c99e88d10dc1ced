package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bhumilabs/bhumi/internal/auth"
	"github.com/bhumilabs/bhumi/internal/cache"
	"github.com/bhumilabs/bhumi/internal/config"
	"github.com/bhumilabs/bhumi/internal/store"
	"github.com/bhumilabs/bhumi/pkg/models"
)

func newService(t *testing.T, autoRegister bool) (*auth.Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	svc := auth.NewService(st, cache.NewMemoryCache(), config.AuthConfig{
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
		AutoRegister: autoRegister,
	})
	return svc, st
}

func seedUser(t *testing.T, st *store.MemoryStore, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, st.CreateUser(context.Background(), &models.UserProfile{
		Email:        email,
		Name:         "Seeded",
		PasswordHash: string(hash),
	}))
}

// --- Signup ---

func TestSignup(t *testing.T) {
	svc, _ := newService(t, false)

	token, user, err := svc.Signup(context.Background(), "New@Example.com", "secret123", "Meena")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "Meena", user.Name)
	assert.NotEmpty(t, user.MemberSince)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

// uniqueEmailStore rejects duplicate emails the way the remote backends do.
type uniqueEmailStore struct {
	*store.MemoryStore
	seen map[string]bool
}

func (s *uniqueEmailStore) CreateUser(ctx context.Context, user *models.UserProfile) error {
	if s.seen[user.Email] {
		return store.ErrDuplicateKey
	}
	s.seen[user.Email] = true
	return s.MemoryStore.CreateUser(ctx, user)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	st := &uniqueEmailStore{MemoryStore: store.NewMemoryStore(), seen: map[string]bool{}}
	svc := auth.NewService(st, cache.NewMemoryCache(), config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})

	_, _, err := svc.Signup(context.Background(), "taken@example.com", "pw", "First")
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), "taken@example.com", "pw2", "Other")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestSignup_MemoryBackendOverwrites(t *testing.T) {
	svc, st := newService(t, true)
	seedUser(t, st, "taken@example.com", "old-pw")

	token, user, err := svc.Signup(context.Background(), "taken@example.com", "new-pw", "Replacement")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Replacement", user.Name)

	stored, err := st.GetUserByEmail(context.Background(), "taken@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new-pw")))
}

// --- Login ---

func TestLogin(t *testing.T) {
	svc, st := newService(t, false)
	seedUser(t, st, "farmer@example.com", "secret123")

	token, user, err := svc.Login(context.Background(), "farmer@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Seeded", user.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, st := newService(t, false)
	seedUser(t, st, "farmer@example.com", "secret123")

	_, _, err := svc.Login(context.Background(), "farmer@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newService(t, false)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_AutoRegisterFabricatesProfile(t *testing.T) {
	svc, st := newService(t, true)

	token, user, err := svc.Login(context.Background(), "anyone@example.com", "anything")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Arjun Farmer", user.Name)
	assert.Equal(t, "Odisha, India", user.Location)
	assert.Equal(t, "Rice", user.MainCrop)

	// Profile persists for subsequent calls
	stored, err := st.GetUserByEmail(context.Background(), "anyone@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Arjun Farmer", stored.Name)
}

func TestLogin_AutoRegisterReturnsExistingProfile(t *testing.T) {
	svc, st := newService(t, true)
	require.NoError(t, st.CreateUser(context.Background(), &models.UserProfile{
		Email: "known@example.com",
		Name:  "Custom Name",
	}))

	_, user, err := svc.Login(context.Background(), "known@example.com", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "Custom Name", user.Name)
}

// --- Token lifecycle ---

func TestVerifyToken(t *testing.T) {
	svc, st := newService(t, false)
	seedUser(t, st, "farmer@example.com", "secret123")

	token, _, err := svc.Login(context.Background(), "farmer@example.com", "secret123")
	require.NoError(t, err)

	claims, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "farmer@example.com", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc, _ := newService(t, false)

	_, err := svc.VerifyToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	svc, _ := newService(t, false)

	forged, err := auth.SignToken("other-secret", "farmer@example.com", time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), forged)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	svc, _ := newService(t, false)

	expired, err := auth.SignToken("test-secret", "farmer@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, st := newService(t, false)
	seedUser(t, st, "farmer@example.com", "secret123")

	token, _, err := svc.Login(context.Background(), "farmer@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	_, err = svc.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_OtherSessionsSurvive(t *testing.T) {
	svc, st := newService(t, false)
	seedUser(t, st, "farmer@example.com", "secret123")
	ctx := context.Background()

	token1, _, err := svc.Login(ctx, "farmer@example.com", "secret123")
	require.NoError(t, err)
	token2, _, err := svc.Login(ctx, "farmer@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token1))

	_, err = svc.VerifyToken(ctx, token1)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.VerifyToken(ctx, token2)
	assert.NoError(t, err)
}

func TestLogout_InvalidToken(t *testing.T) {
	svc, _ := newService(t, false)

	err := svc.Logout(context.Background(), "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

// --- Profile ---

func TestCurrentUser(t *testing.T) {
	svc, st := newService(t, false)
	seedUser(t, st, "farmer@example.com", "secret123")

	user, err := svc.CurrentUser(context.Background(), "Farmer@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "Seeded", user.Name)
}

func TestCurrentUser_NotFound(t *testing.T) {
	svc, _ := newService(t, false)

	_, err := svc.CurrentUser(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, st := newService(t, false)
	seedUser(t, st, "farmer@example.com", "secret123")

	updated, err := svc.UpdateProfile(context.Background(), &models.UserProfile{
		Email:    "farmer@example.com",
		Name:     "Renamed",
		MainCrop: "Millet",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Millet", updated.MainCrop)

	// Password hash untouched by profile edits
	stored, err := st.GetUserByEmail(context.Background(), "farmer@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestUpdateProfile_NotFound(t *testing.T) {
	svc, _ := newService(t, false)

	_, err := svc.UpdateProfile(context.Background(), &models.UserProfile{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
