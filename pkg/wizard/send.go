package wizard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/notifyapi"
	"github.com/dmitrymomot/notifykit/pkg/recipient"
	"github.com/dmitrymomot/notifykit/pkg/stats"
)

// Dispatcher delivers a notification. *notifyapi.Client implements it.
type Dispatcher interface {
	Send(ctx context.Context, req notifyapi.SendRequest) error
}

// CredentialChecker reports whether a bearer credential is stored.
// *credentials.Source implements it.
type CredentialChecker interface {
	Lookup(ctx context.Context) (string, error)
}

// StatsRecorder persists send counters. *stats.Tracker implements it.
type StatsRecorder interface {
	Record(ctx context.Context, n int, at time.Time) (stats.Stats, error)
}

// Outcome describes a successful send.
type Outcome struct {
	EmailCount int
	GroupCount int
	UserCount  int
	Total      int
	SentAt     time.Time
}

// Send dispatches the composed notification once. On success the counters
// are updated and the wizard is reset; on failure nothing changes.
func (w *Wizard) Send(ctx context.Context) (Outcome, error) {
	if !w.sending.CompareAndSwap(false, true) {
		return Outcome{}, ErrSendInProgress
	}
	defer w.sending.Store(false)
	ctx = logger.ContextWithSessionID(ctx, w.sessionID)

	s := w.State()
	if len(s.Recipients) == 0 {
		return Outcome{}, ErrNoRecipients
	}
	if strings.TrimSpace(s.Subject) == "" || strings.TrimSpace(s.Message) == "" {
		return Outcome{}, ErrMissingContent
	}
	if w.dispatcher == nil {
		return Outcome{}, ErrNoDispatcher
	}

	emails, groups, users := recipient.Counts(s.Recipients)
	req := notifyapi.NewSendRequest(s.Subject, s.Message, s.IsHTML, s.AppliedTemplateID, s.Recipients)

	if w.credentials != nil {
		if _, err := w.credentials.Lookup(ctx); err != nil {
			w.logger.LogAttrs(ctx, slog.LevelWarn, "send blocked: no credential", logger.Error(err))
			return Outcome{}, errors.Join(ErrSessionExpired, err)
		}
	}

	start := w.now()
	if err := w.dispatcher.Send(ctx, req); err != nil {
		sendErr := toSendError(err)
		w.logger.LogAttrs(ctx, slog.LevelError, "notification send failed",
			logger.RecipientCount(len(s.Recipients)),
			logger.Error(err),
		)
		return Outcome{}, sendErr
	}

	sentAt := w.now()
	if w.stats != nil {
		if _, err := w.stats.Record(ctx, len(s.Recipients), sentAt); err != nil {
			w.logger.LogAttrs(ctx, slog.LevelWarn, "failed to record send stats", logger.Error(err))
		}
	}

	w.logger.LogAttrs(ctx, slog.LevelInfo, "notification sent",
		logger.RecipientCount(len(s.Recipients)),
		slog.Int("emails", emails),
		slog.Int("groups", groups),
		logger.Duration(sentAt.Sub(start)),
	)

	w.ResetAfterSend()

	return Outcome{
		EmailCount: emails,
		GroupCount: groups,
		UserCount:  users,
		Total:      len(s.Recipients),
		SentAt:     sentAt,
	}, nil
}

func toSendError(err error) *SendError {
	if apiErr, ok := notifyapi.AsAPIError(err); ok {
		return &SendError{Message: apiErr.Message, Err: err}
	}
	var se *SendError
	if errors.As(err, &se) {
		return se
	}
	return &SendError{Message: err.Error(), Err: err}
}
