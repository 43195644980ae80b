package auth

import "github.com/fomo-events/backend/internal/models"

const (
	UserTypeUser = "user"
	UserTypeOrg  = "org"
)

var (
	userRegisterForm = models.Form{Form: "register_user", Fields: []models.FormField{
		{Name: "name", Label: "Name", Type: "text", Required: true},
		{Name: "email", Label: "Email", Type: "email", Required: true},
		{Name: "password", Label: "Password", Type: "password", Required: true},
	}}
	orgRegisterForm = models.Form{Form: "register_org", Fields: []models.FormField{
		{Name: "name", Label: "Organization Name", Type: "text", Required: true},
		{Name: "img_url", Label: "Display Photo (URL)", Type: "url", Required: true},
		{Name: "description", Label: "Description of Organization", Type: "textarea", Required: true},
		{Name: "email", Label: "Organization Email", Type: "email", Required: true},
		{Name: "password", Label: "Password", Type: "password", Required: true},
	}}
	loginForm = models.Form{Form: "login", Fields: []models.FormField{
		{Name: "email", Label: "Email", Type: "email", Required: true},
		{Name: "password", Label: "Password", Type: "password", Required: true},
	}}
)
