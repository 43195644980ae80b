package models

import "time"

// Review holds one user's ratings of a party. Ratings are nullable in storage.
type Review struct {
	ID         int64     `json:"id"`
	Music      *int      `json:"music"`
	Drinks     *int      `json:"drinks"`
	Vibes      *int      `json:"vibes"`
	Comment    string    `json:"comment"`
	ReviewerID int64     `json:"reviewer_id"`
	PartyID    int64     `json:"party_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewWithReviewer is a review with the reviewer's display name.
type ReviewWithReviewer struct {
	Review
	ReviewerName string `json:"reviewer_name"`
}

// RatingAverages holds per-party mean ratings formatted to two decimals.
// With no reviews every value is "N/A" and Count is 0.
type RatingAverages struct {
	Music  string `json:"music"`
	Drinks string `json:"drinks"`
	Vibes  string `json:"vibes"`
	Count  int64  `json:"count"`
}
