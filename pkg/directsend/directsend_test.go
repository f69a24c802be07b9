package directsend_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/directsend"
	"github.com/dmitrymomot/notifykit/pkg/email"
	"github.com/dmitrymomot/notifykit/pkg/email/templates"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/notifyapi"
	"github.com/dmitrymomot/notifykit/pkg/recipient"
)

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func emails(values ...string) []recipient.Recipient {
	out := make([]recipient.Recipient, 0, len(values))
	for _, v := range values {
		out = append(out, recipient.Recipient{Type: recipient.TypeEmail, Value: v, Label: v})
	}
	return out
}

func TestDispatcher_Send(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("plain text is wrapped and escaped", func(t *testing.T) {
		t.Parallel()
		sender := &MockEmailSender{}
		var bodies []string
		sender.On("SendEmail", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			p := args.Get(1).(email.SendEmailParams)
			bodies = append(bodies, p.BodyHTML)
			assert.Equal(t, "Aviso", p.Subject)
			assert.Equal(t, "welcome", p.Tag)
			assert.Equal(t, "Linha 1\n<b>2</b>", p.BodyText)
		}).Return(nil).Twice()

		id := "welcome"
		d := directsend.New(sender,
			directsend.WithLogger(logger.Discard()),
			directsend.WithLayout(templates.LayoutProps{ProductName: "Portal Educacional"}),
		)
		err := d.Send(ctx, notifyapi.NewSendRequest("Aviso", "Linha 1\n<b>2</b>", false, &id, emails("a@b.com", "c@d.com")))
		require.NoError(t, err)
		sender.AssertExpectations(t)

		require.Len(t, bodies, 2)
		assert.Contains(t, bodies[0], "Linha 1<br>")
		assert.Contains(t, bodies[0], "&lt;b&gt;2&lt;/b&gt;")
		assert.Contains(t, bodies[0], "Portal Educacional")
	})

	t.Run("html is kept", func(t *testing.T) {
		t.Parallel()
		sender := &MockEmailSender{}
		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return strings.Contains(p.BodyHTML, "<p>Olá <b>turma</b></p>") && p.SendTo == "a@b.com" && p.BodyText == ""
		})).Return(nil).Once()

		d := directsend.New(sender, directsend.WithLogger(logger.Discard()))
		err := d.Send(ctx, notifyapi.NewSendRequest("s", "<p>Olá <b>turma</b></p>", true, nil, emails("a@b.com")))
		require.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("groups are rejected before sending", func(t *testing.T) {
		t.Parallel()
		sender := &MockEmailSender{}
		rcpts := append(emails("a@b.com"), recipient.Recipient{Type: recipient.TypeRole, Value: "teachers", Label: "Professores"})

		d := directsend.New(sender, directsend.WithLogger(logger.Discard()))
		err := d.Send(ctx, notifyapi.NewSendRequest("s", "m", false, nil, rcpts))
		assert.ErrorIs(t, err, directsend.ErrUnresolvableRecipient)
		sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("partial failure keeps going", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("mailbox full")
		sender := &MockEmailSender{}
		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool { return p.SendTo == "bad@b.com" })).Return(boom).Once()
		sender.On("SendEmail", mock.Anything, mock.Anything).Return(nil).Twice()

		d := directsend.New(sender, directsend.WithLogger(logger.Discard()))
		err := d.Send(ctx, notifyapi.NewSendRequest("s", "m", false, nil, emails("a@b.com", "bad@b.com", "c@b.com")))
		assert.ErrorIs(t, err, directsend.ErrPartialDelivery)
		assert.ErrorIs(t, err, boom)
		assert.NotContains(t, err.Error(), "bad@b.com")
		sender.AssertExpectations(t)
	})

	t.Run("dev sender end to end", func(t *testing.T) {
		t.Parallel()
		dev := email.NewDevSender(t.TempDir())
		d := directsend.New(dev, directsend.WithLogger(logger.Discard()))
		require.NoError(t, d.Send(ctx, notifyapi.NewSendRequest("Oi", "tudo bem?", false, nil, emails("a@b.com"))))
	})
}
