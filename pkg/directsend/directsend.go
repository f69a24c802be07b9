// Package directsend delivers wizard notifications straight to email
// providers instead of the notification service. Only email recipients can
// be resolved locally; groups and users need the service.
package directsend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/email"
	"github.com/dmitrymomot/notifykit/pkg/email/templates"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/notifyapi"
	"github.com/dmitrymomot/notifykit/pkg/recipient"
	"github.com/dmitrymomot/notifykit/pkg/sanitizer"
)

var (
	ErrUnresolvableRecipient = errors.New("directsend: only email recipients can be delivered directly")
	ErrPartialDelivery       = errors.New("directsend: some emails were not delivered")
)

// Dispatcher sends one email per recipient through an email.EmailSender.
type Dispatcher struct {
	sender email.EmailSender
	layout templates.LayoutProps
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLayout sets the product name and support address shown in the email frame.
func WithLayout(p templates.LayoutProps) Option {
	return func(d *Dispatcher) {
		d.layout = p
	}
}

// WithLogger sets the logger for the Dispatcher.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a Dispatcher.
func New(sender email.EmailSender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send renders the message once and mails it to every email recipient.
// Nothing is sent when a group or user recipient is present. Individual
// failures do not stop the remaining deliveries; they are joined and returned.
func (d *Dispatcher) Send(ctx context.Context, req notifyapi.SendRequest) error {
	var to []string
	for _, r := range req.Recipients {
		if r.Type != recipient.TypeEmail {
			return fmt.Errorf("%w: %s %q", ErrUnresolvableRecipient, r.Type, r.Label)
		}
		to = append(to, r.Value)
	}

	body, err := d.render(ctx, req)
	if err != nil {
		return err
	}

	tag := ""
	if req.TemplateID != nil {
		tag = *req.TemplateID
	}
	text := ""
	if !req.HTML {
		text = req.Message
	}

	start := time.Now()
	var errs []error
	for _, addr := range to {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		err := d.sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   addr,
			Subject:  req.Subject,
			BodyHTML: body,
			BodyText: text,
			Tag:      tag,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sanitizer.MaskEmail(addr), err))
		}
	}

	d.logger.LogAttrs(ctx, slog.LevelInfo, "direct delivery finished",
		logger.Component("directsend"),
		logger.RecipientCount(len(to)),
		slog.Int("failed", len(errs)),
		logger.TemplateID(tag),
		logger.Duration(time.Since(start)),
	)

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrPartialDelivery}, errs...)...)
	}
	return nil
}

func (d *Dispatcher) render(ctx context.Context, req notifyapi.SendRequest) (string, error) {
	content := req.Message
	if !req.HTML {
		content = sanitizer.TextToHTML(content)
	}

	props := d.layout
	props.Title = req.Subject
	html, err := templates.RenderPage(ctx, props, content)
	if err != nil {
		return "", fmt.Errorf("directsend: render: %w", err)
	}
	return html, nil
}
