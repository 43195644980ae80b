package models

import "time"

// Party is an event hosted by an organization. HostID references orgs.user_id.
type Party struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"-"`
	StartTime   string    `json:"start_time"` // "15:04"
	Duration    float64   `json:"duration"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	ImgURL      string    `json:"img_url"`
	HostID      int64     `json:"host_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// PartyWithHost pairs a party with its hosting organization.
type PartyWithHost struct {
	Party Party        `json:"party"`
	Host  Organization `json:"host"`
}

const (
	DateLayout        = "2006-01-02"
	DateDisplayLayout = "02 Jan, 2006"
	TimeLayout        = "15:04"
	TimeDisplayLayout = "03.04 PM"
)

// PartyView is a party as listed to clients, with its display formats.
type PartyView struct {
	Party
	Date        string `json:"date"`
	DateDisplay string `json:"date_display"`
	TimeDisplay string `json:"time_display"`
}

// View returns the client-facing form of p.
func (p Party) View() PartyView {
	v := PartyView{
		Party:       p,
		Date:        p.Date.Format(DateLayout),
		DateDisplay: p.Date.Format(DateDisplayLayout),
		TimeDisplay: p.StartTime,
	}
	if t, err := time.Parse(TimeLayout, p.StartTime); err == nil {
		v.TimeDisplay = t.Format(TimeDisplayLayout)
	}
	return v
}

// PartyWithHostView is a listed party paired with its host.
type PartyWithHostView struct {
	Party PartyView    `json:"party"`
	Host  Organization `json:"host"`
}

// View returns the client-facing form of p.
func (p PartyWithHost) View() PartyWithHostView {
	return PartyWithHostView{Party: p.Party.View(), Host: p.Host}
}
