// ABOUTME: End-to-end tests of ResolveAndRespond with stub collaborators
// ABOUTME: Walks multi-turn conversations by threading the returned tag
package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/harper/vegra/internal/classifier"
	"github.com/harper/vegra/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestAssistant(cls Classifier, l Launcher) *Assistant {
	return NewAssistant(testCatalog(), cls, l, Options{
		DispatcherOptions: DispatcherOptions{
			Choose: func(int) int { return 0 },
			Now:    func() time.Time { return fixedNow },
		},
	})
}

func TestAssistant_OpenAppScenario(t *testing.T) {
	l := &mockLauncher{}
	l.On("OpenApp", "блокнот").Return(true).Once()
	a := newTestAssistant(&stubClassifier{tag: models.TagFarewell}, l)

	got := a.ResolveAndRespond(context.Background(), "открой блокнот", "")

	assert.Equal(t, models.TurnResult{Text: "Открываю блокнот.", Tag: models.TagOpenApp}, got)
	l.AssertExpectations(t)
}

func TestAssistant_OpenAppIgnoresClassifier(t *testing.T) {
	for _, key := range models.AppKeys(models.DefaultApps) {
		l := &mockLauncher{}
		l.On("OpenApp", mock.Anything).Return(true)
		cls := &stubClassifier{tag: models.TagFarewell}
		a := newTestAssistant(cls, l)

		got := a.ResolveAndRespond(context.Background(), "открой "+key, "")

		assert.Equal(t, models.TagOpenApp, got.Tag, "key %q", key)
		assert.Zero(t, cls.calls)
	}
}

func TestAssistant_SearchScenario(t *testing.T) {
	l := &mockLauncher{}
	l.On("SearchInBrowser", "рецепт борща").Return(true).Once()
	a := newTestAssistant(&stubClassifier{}, l)

	got := a.ResolveAndRespond(context.Background(), "найди рецепт борща", "")

	assert.Equal(t, models.TagSearch, got.Tag)
	assert.Equal(t, "Ищу: рецепт борща", got.Text)
	l.AssertExpectations(t)
}

func TestAssistant_SearchTriggersNeverLeakIntoQuery(t *testing.T) {
	rules := DefaultRules()
	for _, trigger := range rules.SearchTriggers {
		l := &mockLauncher{}
		l.On("SearchInBrowser", "котики").Return(true).Once()
		a := newTestAssistant(&stubClassifier{}, l)

		got := a.ResolveAndRespond(context.Background(), fmt.Sprintf("%s котики", trigger), "")

		assert.Equal(t, models.TagSearch, got.Tag, "trigger %q", trigger)
		l.AssertExpectations(t)
	}
}

func TestAssistant_FollowUpConversation(t *testing.T) {
	l := &mockLauncher{}
	l.On("SearchInBrowser", "ноутбук").Return(true).Once()
	l.On("SearchInBrowser", "смартфон").Return(true).Once()
	cls := &stubClassifier{tag: "приветствие"}
	a := newTestAssistant(cls, l)
	ctx := context.Background()

	first := a.ResolveAndRespond(ctx, "найди ноутбук", "")
	second := a.ResolveAndRespond(ctx, "а теперь смартфон", first.Tag)
	third := a.ResolveAndRespond(ctx, "да", second.Tag)

	assert.Equal(t, models.TagSearch, second.Tag)
	assert.Equal(t, "Ищу: смартфон", second.Text)
	assert.Equal(t, models.Tag("приветствие"), third.Tag)
	assert.Equal(t, 1, cls.calls)
	l.AssertExpectations(t)
}

func TestAssistant_FarewellExits(t *testing.T) {
	a := newTestAssistant(&stubClassifier{tag: models.TagFarewell}, &mockLauncher{})

	got := a.ResolveAndRespond(context.Background(), "пока", "")

	assert.True(t, got.Exit)
	assert.Equal(t, models.TagFarewell, got.Tag)
}

func TestAssistant_EmptyUtteranceKeepsPreviousTag(t *testing.T) {
	cls := &stubClassifier{}
	a := newTestAssistant(cls, &mockLauncher{})

	got := a.ResolveAndRespond(context.Background(), "   ", models.TagSearch)

	assert.Equal(t, msgNotHeard, got.Text)
	assert.Equal(t, models.TagSearch, got.Tag)
	assert.Zero(t, cls.calls)
}

func TestAssistant_ClassifierErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not trained", fmt.Errorf("load: %w", classifier.ErrNotTrained), NotTrainedText},
		{"other", errors.New("boom"), msgUnknownIntent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAssistant(&stubClassifier{err: tt.err}, &mockLauncher{})

			got := a.ResolveAndRespond(context.Background(), "привет", models.TagSearch)

			assert.Equal(t, tt.want, got.Text)
			assert.False(t, got.HasTag())
			assert.False(t, got.Exit)
		})
	}
}

func TestAssistant_ClassifierTagOutsideCatalog(t *testing.T) {
	a := newTestAssistant(&stubClassifier{tag: "погода"}, &mockLauncher{})

	got := a.ResolveAndRespond(context.Background(), "какая погода", "")

	assert.Equal(t, msgUnknownIntent, got.Text)
	assert.False(t, got.HasTag())
}
