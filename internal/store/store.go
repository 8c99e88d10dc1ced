package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhumilabs/bhumi/internal/config"
	"github.com/bhumilabs/bhumi/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All profile persistence goes through
// here; callers never see backend-specific errors, only the sentinels above.
type Store interface {
	Ping(ctx context.Context) error

	GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	CreateUser(ctx context.Context, user *models.UserProfile) error
	UpdateUser(ctx context.Context, user *models.UserProfile) error

	Close(ctx context.Context) error
}

// New builds the Store selected by STORE_BACKEND. Postgres runs pending
// migrations before returning.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendPostgres:
		if err := RunMigrations(cfg.Postgres.URL); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		pool, err := Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(pool), nil
	case config.BackendMongo:
		return NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
