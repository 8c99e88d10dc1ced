// Package auth implements account and session management: signup, login,
// token verification, and logout via a revocation denylist.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bhumilabs/bhumi/internal/cache"
	"github.com/bhumilabs/bhumi/internal/config"
	"github.com/bhumilabs/bhumi/internal/store"
	"github.com/bhumilabs/bhumi/pkg/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Service owns account records and session tokens.
type Service struct {
	store store.Store
	cache cache.Cache
	cfg   config.AuthConfig
}

// NewService creates a new auth Service.
func NewService(st store.Store, c cache.Cache, cfg config.AuthConfig) *Service {
	return &Service{store: st, cache: c, cfg: cfg}
}

// Signup registers a new account and returns a session token.
func (s *Service) Signup(ctx context.Context, email, password, name string) (string, *models.UserProfile, error) {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.UserProfile{
		Email:        email,
		Name:         name,
		MemberSince:  fmt.Sprintf("%d", time.Now().Year()),
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}

	token, err := SignToken(s.cfg.JWTSecret, email, s.cfg.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// Login verifies credentials and returns a session token. With AutoRegister
// enabled an unknown email gets a demo account fabricated on the spot and no
// password check is performed.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.UserProfile, error) {
	email = normalizeEmail(email)

	user, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound) && s.cfg.AutoRegister:
		user = demoProfile(email)
		if err := s.store.CreateUser(ctx, user); err != nil && !errors.Is(err, store.ErrDuplicateKey) {
			return "", nil, err
		}
	case errors.Is(err, store.ErrNotFound):
		return "", nil, ErrInvalidCredentials
	case err != nil:
		return "", nil, err
	}

	if !s.cfg.AutoRegister {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return "", nil, ErrInvalidCredentials
		}
	}

	token, err := SignToken(s.cfg.JWTSecret, email, s.cfg.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// VerifyToken validates a session token and rejects revoked ones.
func (s *Service) VerifyToken(ctx context.Context, tokenStr string) (*TokenClaims, error) {
	claims, err := ParseToken(s.cfg.JWTSecret, tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenID != "" {
		revoked, err := s.cache.IsTokenRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// Logout revokes the given session token until its natural expiry.
func (s *Service) Logout(ctx context.Context, tokenStr string) error {
	claims, err := ParseToken(s.cfg.JWTSecret, tokenStr)
	if err != nil {
		return err
	}
	if claims.TokenID == "" {
		return nil
	}
	return s.cache.RevokeToken(ctx, claims.TokenID, time.Until(claims.ExpiresAt))
}

// CurrentUser loads the profile behind a session.
func (s *Service) CurrentUser(ctx context.Context, email string) (*models.UserProfile, error) {
	return s.store.GetUserByEmail(ctx, normalizeEmail(email))
}

// UpdateProfile persists profile edits. Credentials are never touched here.
func (s *Service) UpdateProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	profile.Email = normalizeEmail(profile.Email)
	if err := s.store.UpdateUser(ctx, profile); err != nil {
		return nil, err
	}
	return s.store.GetUserByEmail(ctx, profile.Email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// demoProfile fabricates the default demo account used by auto-registration.
func demoProfile(email string) *models.UserProfile {
	return &models.UserProfile{
		Email:            email,
		Name:             "Arjun Farmer",
		Location:         "Odisha, India",
		Phone:            "+91 98765 43210",
		FarmSize:         "5",
		SoilType:         "Clay",
		MainCrop:         "Rice",
		IrrigationSource: "Canal",
		MemberSince:      "2024",
	}
}
