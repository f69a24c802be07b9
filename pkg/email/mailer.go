package email

import (
	"context"
	"errors"

	"github.com/dmitrymomot/notifykit/pkg/validator"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`             // Email address of the recipient
	Subject  string `json:"subject"`             // Subject of the email
	BodyHTML string `json:"body_html"`           // HTML body of the email
	BodyText string `json:"body_text,omitempty"` // Optional plain-text alternative
	Tag      string `json:"tag,omitempty"`       // Template id, used for grouping
}

// Validate checks that the message can be delivered.
func (p SendEmailParams) Validate() error {
	if err := validator.Apply(
		validator.Required("send_to", p.SendTo),
		validator.ValidEmail("send_to", p.SendTo),
		validator.Required("subject", p.Subject),
		validator.MaxLen("subject", p.Subject, 2000),
		validator.Required("body_html", p.BodyHTML),
		validator.MaxLen("tag", p.Tag, 1000),
	); err != nil {
		return errors.Join(ErrInvalidParams, err)
	}
	return nil
}
