package render

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/heartmarshall/wordcards/internal/domain"
)

var lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>`)

// Renderer writes cards to a terminal.
type Renderer struct {
	theme  Theme
	policy *bluemonday.Policy
}

// NewRenderer creates a Renderer with the given palette.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{
		theme:  theme,
		policy: bluemonday.StrictPolicy(),
	}
}

// PlainText converts a card HTML fragment to terminal text: line breaks become
// newlines and every other tag is dropped.
func (r *Renderer) PlainText(fragment string) string {
	withNewlines := lineBreakRe.ReplaceAllString(fragment, "\n")
	return html.UnescapeString(r.policy.Sanitize(withNewlines))
}

// WriteCard writes one card.
func (r *Renderer) WriteCard(w io.Writer, card domain.Card) error {
	front := r.PlainText(card.Front)
	back := r.PlainText(card.Back)

	var b strings.Builder
	b.WriteString(r.theme.paint(r.theme.Muted, fmt.Sprintf("#%d", card.ID)))
	b.WriteString("\n")
	for i, line := range strings.Split(front, "\n") {
		color := r.theme.Front
		if i == 0 {
			color = r.theme.Accent
		}
		b.WriteString(r.theme.paint(color, line))
		b.WriteString("\n")
	}
	b.WriteString(r.theme.paint(r.theme.Muted, strings.Repeat("─", 24)))
	b.WriteString("\n")
	b.WriteString(r.theme.paint(r.theme.Back, back))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCards writes cards separated by blank lines.
func (r *Renderer) WriteCards(w io.Writer, cards []domain.Card) error {
	for i, c := range cards {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.WriteCard(w, c); err != nil {
			return err
		}
	}
	return nil
}
