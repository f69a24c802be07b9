package wizard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/pkg/catalog"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/recipient"
)

// TemplateFinder resolves template ids. *catalog.Catalog implements it.
type TemplateFinder interface {
	FindByID(ctx context.Context, id string) (catalog.Template, error)
}

// Wizard holds the state of one notification being composed.
type Wizard struct {
	steps      *machine
	recipients *recipient.Collector

	subject   string
	message   string
	isHTML    bool
	appliedID *string

	templates   TemplateFinder
	dispatcher  Dispatcher
	credentials CredentialChecker
	stats       StatsRecorder

	sessionID string
	now       func() time.Time
	logger    *slog.Logger
	sending   atomic.Bool
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithCatalog sets where ApplyTemplate looks templates up. The default
// resolves the built-in templates only.
func WithCatalog(f TemplateFinder) Option {
	return func(w *Wizard) {
		if f != nil {
			w.templates = f
		}
	}
}

// WithDispatcher sets where Send delivers the notification.
func WithDispatcher(d Dispatcher) Option {
	return func(w *Wizard) {
		w.dispatcher = d
	}
}

// WithCredentials makes Send require a stored bearer credential.
func WithCredentials(c CredentialChecker) Option {
	return func(w *Wizard) {
		w.credentials = c
	}
}

// WithStats records successful sends.
func WithStats(s StatsRecorder) Option {
	return func(w *Wizard) {
		w.stats = s
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// WithSessionID sets the id attached to every log record.
func WithSessionID(id string) Option {
	return func(w *Wizard) {
		if id != "" {
			w.sessionID = id
		}
	}
}

// WithLogger sets the logger for the Wizard.
func WithLogger(l *slog.Logger) Option {
	return func(w *Wizard) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Wizard positioned on the template step.
func New(opts ...Option) *Wizard {
	w := &Wizard{
		steps:      newStepMachine(),
		recipients: recipient.NewCollector(),
		templates:  catalog.New(catalog.Builtin(), nil),
		sessionID:  uuid.NewString(),
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With(logger.Component("wizard"), logger.SessionID(w.sessionID))
	return w
}

// SessionID identifies this wizard in logs.
func (w *Wizard) SessionID() string {
	return w.sessionID
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.steps.current
}

// State returns a copy of the current state.
func (w *Wizard) State() State {
	s := State{
		Step:       w.steps.current,
		Recipients: w.recipients.Recipients(),
		Subject:    w.subject,
		Message:    w.message,
		IsHTML:     w.isHTML,
	}
	if w.appliedID != nil {
		id := *w.appliedID
		s.AppliedTemplateID = &id
	}
	return s
}

// Summary returns the derived counts and preview for the review step.
func (w *Wizard) Summary() Summary {
	return summarize(w.State())
}

// CanAdvance reports whether Next would succeed.
func (w *Wizard) CanAdvance() bool {
	return w.steps.canFire(EventNext, w.State())
}

// Next moves forward one step when the current step's requirements are met.
func (w *Wizard) Next() error {
	return w.fire(EventNext)
}

// Prev moves back one step.
func (w *Wizard) Prev() error {
	return w.fire(EventPrev)
}

// GoTo jumps to step n without validation.
func (w *Wizard) GoTo(n Step) error {
	if !n.Valid() {
		return ErrStepOutOfRange
	}
	return w.fire(gotoEvent(n))
}

func (w *Wizard) fire(event Event) error {
	from := w.steps.current
	if err := w.steps.fire(event, w.State()); err != nil {
		w.logger.LogAttrs(context.Background(), slog.LevelDebug, "step transition refused",
			logger.Step(int(from)),
			slog.String("event", string(event)),
			logger.Error(err),
		)
		return err
	}
	w.logger.LogAttrs(context.Background(), slog.LevelDebug, "step changed",
		slog.Int("from", int(from)),
		logger.Step(int(w.steps.current)),
		slog.String("event", string(event)),
	)
	return nil
}

// Recipients gives access to the recipient list.
func (w *Wizard) Recipients() *recipient.Collector {
	return w.recipients
}

// SetSubject replaces the subject.
func (w *Wizard) SetSubject(s string) {
	w.subject = s
}

// SetMessage replaces the message body.
func (w *Wizard) SetMessage(s string) {
	w.message = s
}

// SetHTML selects whether the message is HTML.
func (w *Wizard) SetHTML(b bool) {
	w.isHTML = b
}

// ApplyTemplate copies a template's subject, message and format into the
// wizard, overwriting edits. An empty or unknown id clears those fields
// instead. Lookup failures other than not-found leave the state unchanged.
func (w *Wizard) ApplyTemplate(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		w.clearContent()
		return nil
	}

	t, err := w.templates.FindByID(ctx, id)
	if errors.Is(err, catalog.ErrTemplateNotFound) {
		w.logger.LogAttrs(ctx, slog.LevelInfo, "template not found, content cleared", logger.TemplateID(id))
		w.clearContent()
		return nil
	}
	if err != nil {
		w.logger.LogAttrs(ctx, slog.LevelError, "template lookup failed", logger.TemplateID(id), logger.Error(err))
		return errors.Join(ErrTemplateLookup, err)
	}

	w.subject = t.Subject
	w.message = t.Message
	w.isHTML = t.IsHTML
	w.appliedID = &id

	w.logger.LogAttrs(ctx, slog.LevelDebug, "template applied", logger.TemplateID(id))
	return nil
}

func (w *Wizard) clearContent() {
	w.subject = ""
	w.message = ""
	w.isHTML = false
	w.appliedID = nil
}

// ResetAfterSend empties the wizard and returns to the first step.
func (w *Wizard) ResetAfterSend() {
	w.recipients.ClearAll()
	w.recipients.SetInput("")
	w.clearContent()
	_ = w.steps.fire(EventReset, State{})
}
