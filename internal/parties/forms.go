package parties

import "github.com/fomo-events/backend/internal/models"

var hostForm = models.Form{Form: "host_party", Fields: []models.FormField{
	{Name: "title", Label: "Event Name", Type: "text", Required: true},
	{Name: "date", Label: "Date", Type: "date", Required: true},
	{Name: "time", Label: "Start time", Type: "time", Required: true},
	{Name: "duration", Label: "Duration (in hours)", Type: "number", Required: true},
	{Name: "location", Label: "Location", Type: "text", Required: true},
	{Name: "img_url", Label: "Publicity Image (URL)", Type: "url", Required: true},
	{Name: "description", Label: "Event Description", Type: "textarea", Required: true},
}}

var ratingChoices = []string{"1", "2", "3", "4", "5"}

var reviewForm = models.Form{Form: "review", Fields: []models.FormField{
	{Name: "music", Label: "Music", Type: "select", Required: true, Choices: ratingChoices},
	{Name: "drinks", Label: "Drinks", Type: "select", Required: true, Choices: ratingChoices},
	{Name: "vibes", Label: "Vibes", Type: "select", Required: true, Choices: ratingChoices},
	{Name: "comment", Label: "Comment", Type: "textarea", Required: false},
}}
