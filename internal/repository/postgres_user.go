package repository

import (
	"context"
	"time"

	"github.com/bjarke-xyz/app-tracker/internal/domain"
	"github.com/georgysavva/scany/v2/pgxscan"
)

type postgresUserRepository struct {
	conn Connection
}

func NewPostgresUser(conn Connection) domain.UserRepository {
	return &postgresUserRepository{conn: conn}
}

type userDto struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Create implements domain.UserRepository.
func (p *postgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := p.conn.Exec(ctx, query, user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

// GetByUsername implements domain.UserRepository.
func (p *postgresUserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var dto userDto
	err := pgxscan.Get(ctx, p.conn, &dto, "SELECT * FROM users WHERE username = $1", username)
	if err != nil {
		if pgxscan.NotFound(err) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return domain.User{
		ID:           dto.ID,
		Username:     dto.Username,
		PasswordHash: dto.PasswordHash,
		CreatedAt:    dto.CreatedAt,
	}, nil
}
