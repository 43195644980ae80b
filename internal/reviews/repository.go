package reviews

import (
	"context"
	"fmt"

	"github.com/fomo-events/backend/internal/models"
	"github.com/fomo-events/backend/pkg/database"
)

// NoData is shown in place of an average when a party has no ratings.
const NoData = "N/A"

// Repository handles review persistence and rating aggregation.
type Repository struct {
	db database.DB
}

// NewRepository creates a reviews repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a review and fills in its ID and creation time.
func (r *Repository) Create(ctx context.Context, rv *models.Review) error {
	const q = `INSERT INTO reviews (music, drinks, vibes, comment, reviewer_id, party_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, q, rv.Music, rv.Drinks, rv.Vibes, rv.Comment, rv.ReviewerID, rv.PartyID).
		Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListByParty returns a party's reviews with reviewer names in insertion order.
func (r *Repository) ListByParty(ctx context.Context, partyID int64) ([]models.ReviewWithReviewer, error) {
	const q = `SELECT rv.id, rv.music, rv.drinks, rv.vibes, rv.comment, rv.reviewer_id, rv.party_id, rv.created_at, u.name
		FROM reviews rv
		INNER JOIN users u ON u.id = rv.reviewer_id
		WHERE rv.party_id = $1
		ORDER BY rv.id ASC`
	rows, err := r.db.Query(ctx, q, partyID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	list := []models.ReviewWithReviewer{}
	for rows.Next() {
		var rv models.ReviewWithReviewer
		if err := rows.Scan(&rv.ID, &rv.Music, &rv.Drinks, &rv.Vibes, &rv.Comment, &rv.ReviewerID, &rv.PartyID, &rv.CreatedAt, &rv.ReviewerName); err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}
		list = append(list, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return list, nil
}

// AverageRatings returns the mean music, drinks and vibes ratings of one party.
func (r *Repository) AverageRatings(ctx context.Context, partyID int64) (models.RatingAverages, error) {
	const q = `SELECT COUNT(*), AVG(music)::float8, AVG(drinks)::float8, AVG(vibes)::float8
		FROM reviews
		WHERE party_id = $1`
	var (
		count                int64
		music, drinks, vibes *float64
	)
	if err := r.db.QueryRow(ctx, q, partyID).Scan(&count, &music, &drinks, &vibes); err != nil {
		return models.RatingAverages{}, fmt.Errorf("average ratings: %w", err)
	}
	return FormatAverages(count, music, drinks, vibes), nil
}

// FormatAverages renders averages to two decimals, using NoData for missing values.
func FormatAverages(count int64, music, drinks, vibes *float64) models.RatingAverages {
	return models.RatingAverages{
		Music:  formatAverage(count, music),
		Drinks: formatAverage(count, drinks),
		Vibes:  formatAverage(count, vibes),
		Count:  count,
	}
}

func formatAverage(count int64, v *float64) string {
	if count == 0 || v == nil {
		return NoData
	}
	return fmt.Sprintf("%.2f", *v)
}
