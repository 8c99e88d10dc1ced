package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhumilabs/bhumi/pkg/models"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const userColumns = `email, name, location, phone, farm_size, soil_type, main_crop, irrigation_source, member_since, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*models.UserProfile, error) {
	var u models.UserProfile
	err := row.Scan(&u.Email, &u.Name, &u.Location, &u.Phone, &u.FarmSize, &u.SoilType,
		&u.MainCrop, &u.IrrigationSource, &u.MemberSince, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.UserProfile) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		user.Email, user.Name, user.Location, user.Phone, user.FarmSize, user.SoilType,
		user.MainCrop, user.IrrigationSource, user.MemberSince, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, user *models.UserProfile) error {
	user.UpdatedAt = time.Now().UTC()

	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET
		   name = $2, location = $3, phone = $4, farm_size = $5, soil_type = $6,
		   main_crop = $7, irrigation_source = $8, member_since = $9, updated_at = $10
		 WHERE email = $1`,
		user.Email, user.Name, user.Location, user.Phone, user.FarmSize, user.SoilType,
		user.MainCrop, user.IrrigationSource, user.MemberSince, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
