package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordcards/internal/domain"
	"github.com/heartmarshall/wordcards/internal/service/translate"
)

type translator interface {
	TranslateAll(ctx context.Context, words []string) []translate.Result
}

type noteStore interface {
	DeckNames(ctx context.Context) ([]string, error)
	AddNote(ctx context.Context, note domain.Note) (*int64, error)
	AddNotes(ctx context.Context, notes []domain.Note) ([]*int64, error)
}

// Prompter asks the user to pick a deck.
type Prompter interface {
	PromptSelectDeck()
}

type silentPrompter struct{}

func (silentPrompter) PromptSelectDeck() {}

// Session drives the card builder: it looks words up, keeps the resulting
// cards and pushes them to a deck.
type Session struct {
	log        *slog.Logger
	store      *Store
	translator translator
	notes      noteStore
	prompter   Prompter
	modelName  string
}

// New creates a Session. An empty modelName uses domain.DefaultModelName; a
// nil prompter stays silent and the add operations only return
// domain.ErrNoDeckSelected.
func New(logger *slog.Logger, tr translator, notes noteStore, prompter Prompter, modelName string) *Session {
	if modelName == "" {
		modelName = domain.DefaultModelName
	}
	if prompter == nil {
		prompter = silentPrompter{}
	}
	return &Session{
		log:        logger.With("service", "session"),
		store:      NewStore(),
		translator: tr,
		notes:      notes,
		prompter:   prompter,
		modelName:  modelName,
	}
}

// State returns a snapshot of the session state.
func (s *Session) State() State {
	return s.store.State()
}

// Mount loads the deck list.
func (s *Session) Mount(ctx context.Context) error {
	decks, err := s.notes.DeckNames(ctx)
	if err != nil {
		return fmt.Errorf("session: load decks: %w", err)
	}
	return s.store.Dispatch(SetDecks{Decks: decks})
}

// Submit looks up every word in input and replaces the displayed cards with
// the ones that succeeded. The failed words are returned in input order.
func (s *Session) Submit(ctx context.Context, input string) ([]translate.Result, error) {
	words := domain.ParseWords(input)

	if err := s.store.Dispatch(SetLoading{Loading: true}); err != nil {
		return nil, err
	}
	results := s.translator.TranslateAll(ctx, words)
	if err := s.store.Dispatch(SetLoading{Loading: false}); err != nil {
		return nil, err
	}
	if err := s.store.Dispatch(SetCards{Cards: translate.Cards(results)}); err != nil {
		return nil, err
	}

	failures := translate.Failures(results)
	if len(failures) > 0 {
		s.log.WarnContext(ctx, "some words failed", slog.Int("words", len(words)), slog.Int("failed", len(failures)))
	}
	return failures, nil
}

// SelectDeck picks the target deck.
func (s *Session) SelectDeck(name string) error {
	return s.store.Dispatch(SelectDeck{Deck: name})
}

// RemoveCard drops a displayed card.
func (s *Session) RemoveCard(id int64) error {
	return s.store.Dispatch(RemoveCard{ID: id})
}

// AddCard adds one displayed card to the selected deck and returns the note id
// (nil when the store rejected it).
func (s *Session) AddCard(ctx context.Context, id int64) (*int64, error) {
	st := s.store.State()
	if st.SelectedDeck == "" {
		s.prompter.PromptSelectDeck()
		return nil, domain.ErrNoDeckSelected
	}

	card, ok := domain.FindCard(st.Cards, id)
	if !ok {
		return nil, fmt.Errorf("session: card %d: %w", id, domain.ErrNotFound)
	}

	noteID, err := s.notes.AddNote(ctx, domain.NewNote(st.SelectedDeck, s.modelName, card))
	if err != nil {
		return nil, fmt.Errorf("session: add card %d: %w", id, err)
	}

	s.log.InfoContext(ctx, "card added", slog.Int64("card_id", id), slog.String("deck", st.SelectedDeck))
	return noteID, nil
}

// AddAllCards adds every displayed card to the selected deck in one call.
// The returned ids are parallel to the displayed cards.
func (s *Session) AddAllCards(ctx context.Context) ([]*int64, error) {
	st := s.store.State()
	if st.SelectedDeck == "" {
		s.prompter.PromptSelectDeck()
		return nil, domain.ErrNoDeckSelected
	}
	if len(st.Cards) == 0 {
		return nil, nil
	}

	ids, err := s.notes.AddNotes(ctx, domain.NewNotes(st.SelectedDeck, s.modelName, st.Cards))
	if err != nil {
		return nil, fmt.Errorf("session: add cards: %w", err)
	}

	s.log.InfoContext(ctx, "cards added", slog.Int("count", len(st.Cards)), slog.String("deck", st.SelectedDeck))
	return ids, nil
}
