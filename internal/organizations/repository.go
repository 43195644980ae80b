package organizations

import (
	"context"
	"fmt"

	"github.com/fomo-events/backend/internal/models"
	"github.com/fomo-events/backend/pkg/database"
)

// Repository handles organization persistence.
type Repository struct {
	db database.DB
}

// NewRepository creates an organizations repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

// List returns every organization with its owner's email, ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.OrganizationWithEmail, error) {
	const q = `SELECT o.id, o.name, o.description, o.img_url, o.user_id, o.created_at, u.email
		FROM orgs o
		INNER JOIN users u ON u.id = o.user_id
		ORDER BY o.name ASC, o.id ASC`
	return r.queryWithEmail(ctx, "list orgs", q)
}

// ListByName returns organizations with exactly this name in stored order.
func (r *Repository) ListByName(ctx context.Context, name string) ([]models.OrganizationWithEmail, error) {
	const q = `SELECT o.id, o.name, o.description, o.img_url, o.user_id, o.created_at, u.email
		FROM orgs o
		INNER JOIN users u ON u.id = o.user_id
		WHERE o.name = $1
		ORDER BY o.id ASC`
	return r.queryWithEmail(ctx, "list orgs by name", q, name)
}

func (r *Repository) queryWithEmail(ctx context.Context, op, q string, args ...any) ([]models.OrganizationWithEmail, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := []models.OrganizationWithEmail{}
	for rows.Next() {
		var o models.OrganizationWithEmail
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.ImgURL, &o.UserID, &o.CreatedAt, &o.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// ExistsForUser reports whether the user owns an organization.
func (r *Repository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM orgs WHERE user_id = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, q, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("org exists: %w", err)
	}
	return exists, nil
}
