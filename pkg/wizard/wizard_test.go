package wizard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/catalog"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/recipient"
	"github.com/dmitrymomot/notifykit/pkg/wizard"
)

type MockFinder struct {
	mock.Mock
}

func (m *MockFinder) FindByID(ctx context.Context, id string) (catalog.Template, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Template), args.Error(1)
}

func newWizard(opts ...wizard.Option) *wizard.Wizard {
	return wizard.New(append([]wizard.Option{wizard.WithLogger(logger.Discard())}, opts...)...)
}

func builtinCatalog() *catalog.Catalog {
	return catalog.New(catalog.Builtin(), nil)
}

func TestWizard_Navigation(t *testing.T) {
	t.Parallel()
	w := newWizard()
	assert.Equal(t, wizard.StepTemplate, w.Step())

	err := w.Prev()
	assert.True(t, wizard.IsNoTransition(err))
	assert.Equal(t, wizard.StepTemplate, w.Step())

	require.NoError(t, w.Next())
	assert.Equal(t, wizard.StepRecipients, w.Step())

	// no recipients yet
	assert.False(t, w.CanAdvance())
	err = w.Next()
	var rejected *wizard.TransitionRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, wizard.StepRecipients, rejected.Step)
	assert.Equal(t, wizard.EventNext, rejected.Event)
	assert.Equal(t, wizard.StepRecipients, w.Step())

	require.NoError(t, w.Recipients().AddSingle("ana@escola.edu.br"))
	assert.True(t, w.CanAdvance())
	require.NoError(t, w.Next())
	assert.Equal(t, wizard.StepContent, w.Step())

	assert.True(t, wizard.IsTransitionRejected(w.Next()))

	w.SetSubject("Reunião")
	w.SetMessage("Sexta às 10h")
	require.NoError(t, w.Next())
	assert.Equal(t, wizard.StepReview, w.Step())

	err = w.Next()
	assert.True(t, wizard.IsNoTransition(err))
	assert.Equal(t, wizard.StepReview, w.Step())

	require.NoError(t, w.Prev())
	assert.Equal(t, wizard.StepContent, w.Step())
}

func TestWizard_GoTo(t *testing.T) {
	t.Parallel()
	w := newWizard()

	// jumps skip validation
	require.NoError(t, w.GoTo(wizard.StepReview))
	assert.Equal(t, wizard.StepReview, w.Step())
	require.NoError(t, w.GoTo(wizard.StepReview))
	require.NoError(t, w.GoTo(wizard.StepTemplate))
	assert.Equal(t, wizard.StepTemplate, w.Step())

	assert.ErrorIs(t, w.GoTo(0), wizard.ErrStepOutOfRange)
	assert.ErrorIs(t, w.GoTo(5), wizard.ErrStepOutOfRange)
	assert.Equal(t, wizard.StepTemplate, w.Step())
}

func TestWizard_ApplyTemplate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("welcome overwrites edits", func(t *testing.T) {
		t.Parallel()
		w := newWizard(wizard.WithCatalog(builtinCatalog()))
		welcome, err := catalog.Builtin().Find(ctx, catalog.WelcomeID)
		require.NoError(t, err)

		require.NoError(t, w.ApplyTemplate(ctx, catalog.WelcomeID))
		s := w.State()
		assert.Equal(t, "Bem-vindo(a) ao Portal Educacional!", s.Subject)
		assert.Equal(t, welcome.Message, s.Message)
		require.NotNil(t, s.AppliedTemplateID)
		assert.Equal(t, catalog.WelcomeID, *s.AppliedTemplateID)

		w.SetSubject("Custom")
		assert.Equal(t, "Custom", w.State().Subject)

		require.NoError(t, w.ApplyTemplate(ctx, catalog.WelcomeID))
		assert.Equal(t, "Bem-vindo(a) ao Portal Educacional!", w.State().Subject)
	})

	t.Run("html template sets flag", func(t *testing.T) {
		t.Parallel()
		w := newWizard(wizard.WithCatalog(builtinCatalog()))
		require.NoError(t, w.ApplyTemplate(ctx, "maintenance"))
		assert.True(t, w.State().IsHTML)

		require.NoError(t, w.ApplyTemplate(ctx, catalog.WelcomeID))
		assert.False(t, w.State().IsHTML)
	})

	t.Run("empty or unknown id resets content", func(t *testing.T) {
		t.Parallel()
		for _, id := range []string{"", "  ", "does-not-exist"} {
			w := newWizard(wizard.WithCatalog(builtinCatalog()))
			require.NoError(t, w.ApplyTemplate(ctx, "maintenance"))
			w.SetSubject("edited")

			require.NoError(t, w.ApplyTemplate(ctx, id))
			s := w.State()
			assert.Empty(t, s.Subject, id)
			assert.Empty(t, s.Message, id)
			assert.False(t, s.IsHTML, id)
			assert.Nil(t, s.AppliedTemplateID, id)
		}
	})

	t.Run("default catalog resolves built-ins", func(t *testing.T) {
		t.Parallel()
		w := wizard.New(wizard.WithLogger(logger.Discard()), wizard.WithCatalog(nil))
		w.SetHTML(true)

		require.NoError(t, w.ApplyTemplate(ctx, catalog.WelcomeID))
		s := w.State()
		assert.Equal(t, "Bem-vindo(a) ao Portal Educacional!", s.Subject)
		assert.False(t, s.IsHTML)
		require.NotNil(t, s.AppliedTemplateID)
		assert.Equal(t, catalog.WelcomeID, *s.AppliedTemplateID)

		w.SetSubject("Custom")
		require.NoError(t, w.ApplyTemplate(ctx, catalog.WelcomeID))
		assert.Equal(t, "Bem-vindo(a) ao Portal Educacional!", w.State().Subject)
	})

	t.Run("lookup failure keeps state", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection reset")
		finder := &MockFinder{}
		finder.On("FindByID", mock.Anything, "custom").Return(catalog.Template{}, boom).Once()

		w := newWizard(wizard.WithCatalog(finder))
		w.SetSubject("draft")
		w.SetMessage("body")

		err := w.ApplyTemplate(ctx, "custom")
		assert.ErrorIs(t, err, wizard.ErrTemplateLookup)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "draft", w.State().Subject)
		assert.Equal(t, "body", w.State().Message)
		finder.AssertExpectations(t)
	})
}

func TestWizard_ResetAfterSend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	w := newWizard(wizard.WithCatalog(builtinCatalog()))

	require.NoError(t, w.ApplyTemplate(ctx, "announcement"))
	require.NoError(t, w.Recipients().AddSingle("a@b.com"))
	require.NoError(t, w.Recipients().AddGroup("teachers", ""))
	w.Recipients().SetInput("half typed")
	require.NoError(t, w.GoTo(wizard.StepReview))

	w.ResetAfterSend()

	s := w.State()
	assert.Empty(t, s.Recipients)
	assert.Equal(t, wizard.StepTemplate, s.Step)
	assert.Nil(t, s.AppliedTemplateID)
	assert.Empty(t, s.Subject)
	assert.Empty(t, s.Message)
	assert.False(t, s.IsHTML)
	assert.Empty(t, w.Recipients().Input())
}

func TestWizard_StateIsACopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	w := newWizard(wizard.WithCatalog(builtinCatalog()))
	require.NoError(t, w.ApplyTemplate(ctx, catalog.WelcomeID))
	require.NoError(t, w.Recipients().AddSingle("a@b.com"))

	s := w.State()
	s.Recipients[0].Value = "changed@b.com"
	*s.AppliedTemplateID = "changed"

	again := w.State()
	assert.Equal(t, "a@b.com", again.Recipients[0].Value)
	assert.Equal(t, catalog.WelcomeID, *again.AppliedTemplateID)
}

func TestWizard_Summary(t *testing.T) {
	t.Parallel()
	w := newWizard()
	require.NoError(t, w.Recipients().AddSingle("a@b.com"))
	_, err := w.Recipients().AddBulk("c@d.com e@f.com")
	require.NoError(t, err)
	require.NoError(t, w.Recipients().AddGroup("students", "Alunos"))
	w.SetSubject("Prova")
	w.SetMessage("<p>Prova <b>amanhã</b></p>")
	w.SetHTML(true)

	sum := w.Summary()
	assert.Equal(t, 3, sum.EmailCount)
	assert.Equal(t, 1, sum.GroupCount)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, "Prova amanhã", sum.Preview)
	assert.Equal(t, `Send "Prova" to 3 email(s) and 1 group(s)?`, sum.Confirmation())
}

func TestWizard_RecipientScenarios(t *testing.T) {
	t.Parallel()

	t.Run("duplicate single add", func(t *testing.T) {
		t.Parallel()
		w := newWizard()
		require.NoError(t, w.Recipients().AddSingle("a@b.com"))
		assert.Equal(t, []recipient.Recipient{{Type: recipient.TypeEmail, Value: "a@b.com", Label: "a@b.com"}}, w.State().Recipients)

		assert.ErrorIs(t, w.Recipients().AddSingle("a@b.com"), recipient.ErrDuplicate)
		assert.Len(t, w.State().Recipients, 1)
	})

	t.Run("csv import", func(t *testing.T) {
		t.Parallel()
		w := newWizard()
		n, err := w.Recipients().AddFromFile([]byte("name,email\nJoe,joe@x.com\nAnn,ann@y.com"), "list.csv")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		s := w.State()
		require.Len(t, s.Recipients, 2)
		assert.Equal(t, "joe@x.com", s.Recipients[0].Value)
		assert.Equal(t, "ann@y.com", s.Recipients[1].Value)
	})

	t.Run("bulk twice", func(t *testing.T) {
		t.Parallel()
		text := "x@y.com, z@w.org; x@y.com"
		once := newWizard()
		_, err := once.Recipients().AddBulk(text)
		require.NoError(t, err)

		twice := newWizard()
		_, err = twice.Recipients().AddBulk(text)
		require.NoError(t, err)
		_, err = twice.Recipients().AddBulk(text)
		assert.ErrorIs(t, err, recipient.ErrNoMatch)

		assert.Equal(t, once.State().Recipients, twice.State().Recipients)
	})
}
