package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/heartmarshall/wordcards/internal/domain"
	"github.com/heartmarshall/wordcards/internal/service/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockTranslator struct {
	TranslateAllFunc func(ctx context.Context, words []string) []translate.Result
	calls            [][]string
}

func (m *mockTranslator) TranslateAll(ctx context.Context, words []string) []translate.Result {
	m.calls = append(m.calls, words)
	return m.TranslateAllFunc(ctx, words)
}

type mockNoteStore struct {
	DeckNamesFunc func(ctx context.Context) ([]string, error)
	AddNoteFunc   func(ctx context.Context, note domain.Note) (*int64, error)
	AddNotesFunc  func(ctx context.Context, notes []domain.Note) ([]*int64, error)

	calls int
}

func (m *mockNoteStore) DeckNames(ctx context.Context) ([]string, error) {
	m.calls++
	return m.DeckNamesFunc(ctx)
}

func (m *mockNoteStore) AddNote(ctx context.Context, note domain.Note) (*int64, error) {
	m.calls++
	return m.AddNoteFunc(ctx, note)
}

func (m *mockNoteStore) AddNotes(ctx context.Context, notes []domain.Note) ([]*int64, error) {
	m.calls++
	return m.AddNotesFunc(ctx, notes)
}

type mockPrompter struct {
	prompts int
}

func (m *mockPrompter) PromptSelectDeck() { m.prompts++ }

func newTestSession(tr *mockTranslator, notes *mockNoteStore, p *mockPrompter) *Session {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), tr, notes, p, "")
}

func ptr[T any](v T) *T { return &v }

// echoTranslator builds one card per word, failing words listed in fail.
func echoTranslator(fail ...string) *mockTranslator {
	return &mockTranslator{
		TranslateAllFunc: func(_ context.Context, words []string) []translate.Result {
			results := make([]translate.Result, len(words))
			for i, w := range words {
				results[i].Word = w
				for _, f := range fail {
					if f == w {
						results[i].Err = domain.ErrMalformedEntry
					}
				}
				if results[i].Err == nil {
					results[i].Card = &domain.Card{ID: int64(i + 1), Front: w, Back: w + "-back"}
				}
			}
			return results
		},
	}
}

// ---------------------------------------------------------------------------
// Mount
// ---------------------------------------------------------------------------

func TestSession_Mount(t *testing.T) {
	t.Parallel()

	notes := &mockNoteStore{
		DeckNamesFunc: func(context.Context) ([]string, error) {
			return []string{"Default", "English"}, nil
		},
	}
	s := newTestSession(echoTranslator(), notes, &mockPrompter{})

	require.NoError(t, s.Mount(context.Background()))
	assert.Equal(t, []string{"Default", "English"}, s.State().Decks)
}

func TestSession_Mount_Error(t *testing.T) {
	t.Parallel()

	notes := &mockNoteStore{
		DeckNamesFunc: func(context.Context) ([]string, error) {
			return nil, domain.ErrUpstream
		},
	}
	s := newTestSession(echoTranslator(), notes, &mockPrompter{})

	err := s.Mount(context.Background())
	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.Empty(t, s.State().Decks)
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestSession_Submit_FiltersBlankTokens(t *testing.T) {
	t.Parallel()

	tr := echoTranslator()
	s := newTestSession(tr, &mockNoteStore{}, &mockPrompter{})

	failures, err := s.Submit(context.Background(), "run,,\n walk \n\n")
	require.NoError(t, err)
	assert.Empty(t, failures)

	require.Len(t, tr.calls, 1)
	assert.Equal(t, []string{"run", "walk"}, tr.calls[0])

	st := s.State()
	assert.False(t, st.IsLoading)
	require.Len(t, st.Cards, 2)
	assert.Equal(t, "run", st.Cards[0].Front)
	assert.Equal(t, "walk", st.Cards[1].Front)
}

func TestSession_Submit_LoadingDuringLookup(t *testing.T) {
	t.Parallel()

	var s *Session
	var loadingSeen bool
	tr := &mockTranslator{
		TranslateAllFunc: func(_ context.Context, words []string) []translate.Result {
			loadingSeen = s.State().IsLoading
			return nil
		},
	}
	s = newTestSession(tr, &mockNoteStore{}, &mockPrompter{})

	_, err := s.Submit(context.Background(), "run")
	require.NoError(t, err)
	assert.True(t, loadingSeen)
	assert.False(t, s.State().IsLoading)
}

func TestSession_Submit_ReturnsFailuresInOrder(t *testing.T) {
	t.Parallel()

	s := newTestSession(echoTranslator("xx", "zz"), &mockNoteStore{}, &mockPrompter{})

	failures, err := s.Submit(context.Background(), "zz,run,xx")
	require.NoError(t, err)
	require.Len(t, failures, 2)
	assert.Equal(t, "zz", failures[0].Word)
	assert.Equal(t, "xx", failures[1].Word)
	assert.ErrorIs(t, failures[0].Err, domain.ErrMalformedEntry)

	cards := s.State().Cards
	require.Len(t, cards, 1)
	assert.Equal(t, "run", cards[0].Front)
}

func TestSession_Submit_ReplacesCards(t *testing.T) {
	t.Parallel()

	s := newTestSession(echoTranslator(), &mockNoteStore{}, &mockPrompter{})

	_, err := s.Submit(context.Background(), "a,b,c")
	require.NoError(t, err)
	_, err = s.Submit(context.Background(), "d")
	require.NoError(t, err)

	cards := s.State().Cards
	require.Len(t, cards, 1)
	assert.Equal(t, "d", cards[0].Front)
}

// ---------------------------------------------------------------------------
// RemoveCard / SelectDeck
// ---------------------------------------------------------------------------

func TestSession_RemoveCard(t *testing.T) {
	t.Parallel()

	s := newTestSession(echoTranslator(), &mockNoteStore{}, &mockPrompter{})
	_, err := s.Submit(context.Background(), "a,b,c")
	require.NoError(t, err)

	require.NoError(t, s.RemoveCard(2))
	cards := s.State().Cards
	require.Len(t, cards, 2)
	assert.Equal(t, "a", cards[0].Front)
	assert.Equal(t, "c", cards[1].Front)

	require.NoError(t, s.RemoveCard(99))
	assert.Len(t, s.State().Cards, 2)
}

// ---------------------------------------------------------------------------
// AddCard / AddAllCards
// ---------------------------------------------------------------------------

func TestSession_AddCard_NoDeckPromptsWithoutNetwork(t *testing.T) {
	t.Parallel()

	notes := &mockNoteStore{}
	prompter := &mockPrompter{}
	s := newTestSession(echoTranslator(), notes, prompter)
	_, err := s.Submit(context.Background(), "run")
	require.NoError(t, err)

	id, err := s.AddCard(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrNoDeckSelected)
	assert.Nil(t, id)

	ids, err := s.AddAllCards(context.Background())
	require.ErrorIs(t, err, domain.ErrNoDeckSelected)
	assert.Nil(t, ids)

	assert.Equal(t, 2, prompter.prompts)
	assert.Zero(t, notes.calls)
}

func TestSession_NilPrompterNoDeck(t *testing.T) {
	t.Parallel()

	notes := &mockNoteStore{}
	s := New(slog.New(slog.NewTextHandler(io.Discard, nil)), echoTranslator(), notes, nil, "")
	_, err := s.Submit(context.Background(), "run")
	require.NoError(t, err)

	require.NotPanics(t, func() {
		_, err = s.AddCard(context.Background(), 1)
	})
	require.ErrorIs(t, err, domain.ErrNoDeckSelected)

	require.NotPanics(t, func() {
		_, err = s.AddAllCards(context.Background())
	})
	require.ErrorIs(t, err, domain.ErrNoDeckSelected)
	assert.Zero(t, notes.calls)
}

func TestSession_AddCard(t *testing.T) {
	t.Parallel()

	var got domain.Note
	notes := &mockNoteStore{
		AddNoteFunc: func(_ context.Context, note domain.Note) (*int64, error) {
			got = note
			return ptr(int64(1496198395707)), nil
		},
	}
	s := newTestSession(echoTranslator(), notes, &mockPrompter{})
	_, err := s.Submit(context.Background(), "run,walk")
	require.NoError(t, err)
	require.NoError(t, s.SelectDeck("English"))

	id, err := s.AddCard(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(1496198395707), *id)

	assert.Equal(t, domain.Note{
		DeckName:  "English",
		ModelName: domain.DefaultModelName,
		Fields:    domain.NoteFields{Front: "walk", Back: "walk-back"},
	}, got)
	assert.Len(t, s.State().Cards, 2, "adding a card keeps it on screen")
}

func TestSession_AddCard_UnknownCard(t *testing.T) {
	t.Parallel()

	notes := &mockNoteStore{}
	s := newTestSession(echoTranslator(), notes, &mockPrompter{})
	require.NoError(t, s.SelectDeck("English"))

	_, err := s.AddCard(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, notes.calls)
}

func TestSession_AddCard_StoreError(t *testing.T) {
	t.Parallel()

	notes := &mockNoteStore{
		AddNoteFunc: func(context.Context, domain.Note) (*int64, error) {
			return nil, errors.New("cannot create note because it is a duplicate")
		},
	}
	s := newTestSession(echoTranslator(), notes, &mockPrompter{})
	_, err := s.Submit(context.Background(), "run")
	require.NoError(t, err)
	require.NoError(t, s.SelectDeck("English"))

	_, err = s.AddCard(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestSession_AddAllCards(t *testing.T) {
	t.Parallel()

	var got []domain.Note
	notes := &mockNoteStore{
		AddNotesFunc: func(_ context.Context, n []domain.Note) ([]*int64, error) {
			got = n
			return []*int64{ptr(int64(10)), nil}, nil
		},
	}
	s := New(slog.New(slog.NewTextHandler(io.Discard, nil)), echoTranslator(), notes, &mockPrompter{}, "Basic (and reversed card)")
	_, err := s.Submit(context.Background(), "run,walk")
	require.NoError(t, err)
	require.NoError(t, s.SelectDeck("English"))

	ids, err := s.AddAllCards(context.Background())
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Nil(t, ids[1])

	require.Len(t, got, 2)
	assert.Equal(t, "run", got[0].Fields.Front)
	assert.Equal(t, "walk", got[1].Fields.Front)
	assert.Equal(t, "Basic (and reversed card)", got[0].ModelName)
	assert.Equal(t, "English", got[1].DeckName)
}

func TestSession_AddAllCards_NoCards(t *testing.T) {
	t.Parallel()

	notes := &mockNoteStore{}
	s := newTestSession(echoTranslator(), notes, &mockPrompter{})
	require.NoError(t, s.SelectDeck("English"))

	ids, err := s.AddAllCards(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ids)
	assert.Zero(t, notes.calls)
}
