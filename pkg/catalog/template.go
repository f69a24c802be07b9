package catalog

import (
	"github.com/dmitrymomot/notifykit/pkg/validator"
)

// Categories accepted for templates.
const (
	CategoryGeneral        = "general"
	CategoryAdministrative = "administrative"
	CategoryAcademic       = "academic"
	CategoryEvent          = "event"
	CategorySystem         = "system"
)

var categories = []string{
	CategoryGeneral,
	CategoryAdministrative,
	CategoryAcademic,
	CategoryEvent,
	CategorySystem,
}

// Categories returns the accepted category names.
func Categories() []string {
	return append([]string(nil), categories...)
}

// Template is a reusable subject/body pair.
type Template struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Subject  string `json:"subject" yaml:"subject"`
	Message  string `json:"message" yaml:"message"`
	IsHTML   bool   `json:"isHtml" yaml:"is_html"`
	Category string `json:"category" yaml:"category"`
	IsPublic bool   `json:"isPublic" yaml:"is_public"`
}

// Validate checks the user-editable fields. The id is not checked because the
// remote store assigns it on create.
func (t Template) Validate() error {
	return validator.Apply(
		validator.Required("name", t.Name),
		validator.MaxLen("name", t.Name, 120),
		validator.Required("subject", t.Subject),
		validator.MaxLen("subject", t.Subject, 255),
		validator.Required("message", t.Message),
		validator.MaxLen("message", t.Message, 100_000),
		validator.InList("category", t.Category, categories),
	)
}

// withDefaults fills an empty category.
func (t Template) withDefaults() Template {
	if t.Category == "" {
		t.Category = CategoryGeneral
	}
	return t
}
