package store

import (
	"context"
	"sync"
	"time"

	"github.com/bhumilabs/bhumi/pkg/models"
)

// MemoryStore is a process-local Store for demo deployments and tests.
// Profiles vanish on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]models.UserProfile
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]models.UserProfile)}
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// CreateUser stores a profile. Unlike the remote backends, an existing record
// under the same email is replaced rather than rejected, so demo deployments
// can re-register freely.
func (s *MemoryStore) CreateUser(_ context.Context, user *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.Email] = *user
	return nil
}

func (s *MemoryStore) UpdateUser(_ context.Context, user *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.users[user.Email]
	if !ok {
		return ErrNotFound
	}
	user.PasswordHash = current.PasswordHash
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	s.users[user.Email] = *user
	return nil
}

// Reset drops every profile. Used between tests.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]models.UserProfile)
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}

// Compile-time interface checks.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MongoStore)(nil)
)
