package parties

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fomo-events/backend/internal/models"
	"github.com/fomo-events/backend/pkg/database"
)

// Repository handles party persistence.
type Repository struct {
	db database.DB
}

// NewRepository creates a parties repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

const partyColumns = `p.id, p.title, p.date, to_char(p.start_time, 'HH24:MI'), p.duration, p.location,
		p.description, p.img_url, p.host_id, p.created_at`

const partyWithHostColumns = partyColumns + `,
		o.id, o.name, o.description, o.img_url, o.user_id, o.created_at`

// Create inserts a party and fills in its ID and creation time.
func (r *Repository) Create(ctx context.Context, p *models.Party) error {
	const q = `INSERT INTO parties (title, date, start_time, duration, location, description, img_url, host_id)
		VALUES ($1, $2, $3::time, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, q, p.Title, p.Date, p.StartTime, p.Duration, p.Location, p.Description, p.ImgURL, p.HostID).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

// Upcoming returns parties on or after today, soonest first, with their hosts.
// A limit <= 0 returns all of them.
func (r *Repository) Upcoming(ctx context.Context, today time.Time, limit int) ([]models.PartyWithHost, error) {
	const q = `SELECT ` + partyWithHostColumns + `
		FROM parties p
		INNER JOIN orgs o ON o.user_id = p.host_id
		WHERE p.date >= $1
		ORDER BY p.date ASC, p.id ASC
		LIMIT $2`
	var lim any
	if limit > 0 {
		lim = limit
	}
	return r.queryWithHost(ctx, "upcoming parties", q, today, lim)
}

// Past returns parties before today, most recent first, with their hosts.
func (r *Repository) Past(ctx context.Context, today time.Time) ([]models.PartyWithHost, error) {
	const q = `SELECT ` + partyWithHostColumns + `
		FROM parties p
		INNER JOIN orgs o ON o.user_id = p.host_id
		WHERE p.date < $1
		ORDER BY p.date DESC, p.id DESC`
	return r.queryWithHost(ctx, "past parties", q, today)
}

// ListByTitle returns parties with exactly this title in stored order.
func (r *Repository) ListByTitle(ctx context.Context, title string) ([]models.PartyWithHost, error) {
	const q = `SELECT ` + partyWithHostColumns + `
		FROM parties p
		INNER JOIN orgs o ON o.user_id = p.host_id
		WHERE p.title = $1
		ORDER BY p.id ASC`
	return r.queryWithHost(ctx, "parties by title", q, title)
}

// ListByHost returns the parties of one host, latest date first.
func (r *Repository) ListByHost(ctx context.Context, hostID int64) ([]models.Party, error) {
	const q = `SELECT ` + partyColumns + `
		FROM parties p
		WHERE p.host_id = $1
		ORDER BY p.date DESC, p.id DESC`
	rows, err := r.db.Query(ctx, q, hostID)
	if err != nil {
		return nil, fmt.Errorf("parties by host: %w", err)
	}
	defer rows.Close()
	list := []models.Party{}
	for rows.Next() {
		var p models.Party
		if err := scanParty(rows, &p); err != nil {
			return nil, fmt.Errorf("parties by host: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("parties by host: %w", err)
	}
	return list, nil
}

func scanParty(rows pgx.Rows, p *models.Party, extra ...any) error {
	dest := []any{&p.ID, &p.Title, &p.Date, &p.StartTime, &p.Duration, &p.Location,
		&p.Description, &p.ImgURL, &p.HostID, &p.CreatedAt}
	return rows.Scan(append(dest, extra...)...)
}

func (r *Repository) queryWithHost(ctx context.Context, op, q string, args ...any) ([]models.PartyWithHost, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := []models.PartyWithHost{}
	for rows.Next() {
		var ph models.PartyWithHost
		h := &ph.Host
		if err := scanParty(rows, &ph.Party, &h.ID, &h.Name, &h.Description, &h.ImgURL, &h.UserID, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
