package models

// Attendance links a user to a party they attend.
type Attendance struct {
	ID         int64 `json:"id"`
	AttendeeID int64 `json:"attendee_id"`
	PartyID    int64 `json:"party_id"`
}
