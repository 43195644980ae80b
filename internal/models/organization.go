package models

import "time"

// Organization is the hosting profile of a User with IsOrg set. UserID is unique.
type Organization struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImgURL      string    `json:"img_url"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrganizationWithEmail pairs an organization with its owner's email.
type OrganizationWithEmail struct {
	Organization
	Email string `json:"email"`
}
