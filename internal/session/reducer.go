package session

import (
	"errors"
	"slices"

	"github.com/heartmarshall/wordcards/internal/domain"
)

// ErrInvalidAction is returned by Reduce for an action it does not know.
var ErrInvalidAction = errors.New("invalid action")

// State is everything the card builder screen shows.
type State struct {
	IsLoading    bool
	Decks        []string
	SelectedDeck string
	Cards        []domain.Card
}

// Action is one of SetLoading, SetDecks, SelectDeck, SetCards or RemoveCard.
type Action interface {
	action()
}

// SetLoading marks a lookup batch as running or finished.
type SetLoading struct{ Loading bool }

// SetDecks replaces the list of known decks.
type SetDecks struct{ Decks []string }

// SelectDeck picks the deck new notes go to.
type SelectDeck struct{ Deck string }

// SetCards replaces the displayed cards.
type SetCards struct{ Cards []domain.Card }

// RemoveCard drops every displayed card with the given id.
type RemoveCard struct{ ID int64 }

func (SetLoading) action() {}
func (SetDecks) action()   {}
func (SelectDeck) action() {}
func (SetCards) action()   {}
func (RemoveCard) action() {}

// Reduce returns the state after applying a. It never mutates s.
func Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case SetLoading:
		s.IsLoading = a.Loading
	case SetDecks:
		s.Decks = slices.Clone(a.Decks)
	case SelectDeck:
		s.SelectedDeck = a.Deck
	case SetCards:
		s.Cards = slices.Clone(a.Cards)
	case RemoveCard:
		s.Cards = domain.RemoveCard(s.Cards, a.ID)
	default:
		return s, ErrInvalidAction
	}
	return s, nil
}
