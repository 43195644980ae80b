package models

// FormField is one input of a form the client renders.
type FormField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"` // "text", "email", "password", "url", "date", "time", "number", "select", "textarea"
	Required bool     `json:"required"`
	Choices  []string `json:"choices,omitempty"` // allowed values for "select"
}

// Form describes the inputs a POST endpoint expects.
type Form struct {
	Form   string      `json:"form"`
	Fields []FormField `json:"fields"`
}
