package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fomo-events/backend/internal/models"
	"github.com/fomo-events/backend/pkg/database"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const pgUniqueViolation = "23505"

// Repository handles user and organization-account persistence.
type Repository struct {
	db database.DB
}

// NewRepository creates an auth repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

// GetByEmail returns a user by exact email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT id, email, password_hash, name, is_org, created_at FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, q, email))
}

func (r *Repository) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.IsOrg, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// RegisterParams holds the account to create. Org is set for organization accounts.
type RegisterParams struct {
	Email        string
	PasswordHash string
	Name         string
	Org          *OrgParams
}

// OrgParams holds the organization profile created alongside an org account.
type OrgParams struct {
	Description string
	ImgURL      string
}

// Register inserts the user and, for organization accounts, its organization in one transaction.
func (r *Repository) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	const insertUser = `INSERT INTO users (email, password_hash, name, is_org)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	const insertOrg = `INSERT INTO orgs (name, description, img_url, user_id)
		VALUES ($1, $2, $3, $4)`

	u := models.User{Email: p.Email, Password: p.PasswordHash, Name: p.Name, IsOrg: p.Org != nil}
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertUser, u.Email, u.Password, u.Name, u.IsOrg).Scan(&u.ID, &u.CreatedAt); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		if p.Org == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, insertOrg, u.Name, p.Org.Description, p.Org.ImgURL, u.ID); err != nil {
			return fmt.Errorf("insert org: %w", err)
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}
