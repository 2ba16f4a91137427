package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qbankhq/qbank-backend/internal/model"
)

// UserRepository handles teacher profile data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByAuthID retrieves a profile by the external identity provider's id.
func (r *UserRepository) GetByAuthID(ctx context.Context, authID string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, auth_id, email, name, institute, subject, place, created_at
		 FROM users WHERE auth_id = $1`, authID,
	).Scan(&u.ID, &u.AuthID, &u.Email, &u.Name, &u.Institute, &u.Subject, &u.Place, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new profile and fills in its generated id and timestamp.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (auth_id, email, name, institute, subject, place)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		u.AuthID, u.Email, u.Name, u.Institute, u.Subject, u.Place,
	).Scan(&u.ID, &u.CreatedAt)
}

// Update persists the full current state of a profile.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $2, name = $3, institute = $4, subject = $5, place = $6
		 WHERE id = $1`,
		u.ID, u.Email, u.Name, u.Institute, u.Subject, u.Place,
	)
	return err
}
