package domain

// DefaultModelName is the Anki note type used when none is configured.
const DefaultModelName = "Basic"

// Card is a flashcard derived from a single dictionary lookup.
// Front and Back are HTML fragments. Cards live only for the duration of a session.
type Card struct {
	ID    int64  `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Note is the record AnkiConnect expects when adding a card to a deck.
type Note struct {
	DeckName  string     `json:"deckName"`
	ModelName string     `json:"modelName"`
	Fields    NoteFields `json:"fields"`
}

// NoteFields holds the two fields of the Basic note type.
type NoteFields struct {
	Front string `json:"Front"`
	Back  string `json:"Back"`
}

// NewNote builds a Note for the given deck from a card.
// An empty model name falls back to DefaultModelName.
func NewNote(deck, model string, card Card) Note {
	if model == "" {
		model = DefaultModelName
	}
	return Note{
		DeckName:  deck,
		ModelName: model,
		Fields: NoteFields{
			Front: card.Front,
			Back:  card.Back,
		},
	}
}

// NewNotes builds one Note per card, preserving order.
func NewNotes(deck, model string, cards []Card) []Note {
	notes := make([]Note, len(cards))
	for i, c := range cards {
		notes[i] = NewNote(deck, model, c)
	}
	return notes
}

// RemoveCard returns a copy of cards without the card with the given id.
// The input slice is not modified.
func RemoveCard(cards []Card, id int64) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// FindCard returns the card with the given id.
func FindCard(cards []Card, id int64) (Card, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}
