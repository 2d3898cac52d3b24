package translate

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/wordcards/internal/domain"
	"github.com/heartmarshall/wordcards/internal/provider"
)

const (
	// BackSeparator joins the meanings on the back of a card (U+FF1B FULLWIDTH SEMICOLON).
	BackSeparator = "；"

	paragraphBreak = "<br><br>"
	lineBreak      = "<br>"

	// maxSectionSentences limits examples taken from each new_sentence group.
	maxSectionSentences = 2
)

// Face is the front/back pair extracted from a dictionary message.
type Face struct {
	Front string
	Back  string
	// Meanings are the back entries before joining, in order.
	Meanings []string
}

// BuildCard extracts card faces from a dictionary message.
//
// Branch precedence:
//   - new_sentence with more than one group: groups after the first supply
//     examples to the front and meanings to the back;
//   - a single new_sentence group and no bidec: the group supplies examples only;
//   - otherwise bidec definitions supply examples and meanings.
//
// When bidec is absent, or the single-group case applies, symbol meanings are
// appended to the back after everything else.
func BuildCard(msg provider.Message) (Face, error) {
	if msg.BaseInfo == nil {
		return Face{}, fmt.Errorf("baesInfo missing: %w", domain.ErrMalformedEntry)
	}
	if msg.BaseInfo.WordName == nil || *msg.BaseInfo.WordName == "" {
		return Face{}, fmt.Errorf("baesInfo.word_name missing: %w", domain.ErrMalformedEntry)
	}

	var front strings.Builder
	front.WriteString(*msg.BaseInfo.WordName)

	symbols := msg.BaseInfo.Symbols
	if len(symbols) > 0 {
		front.WriteString(" [" + symbols[0].PhEn + "]")
	}

	var back []string

	hasSentences := msg.NewSentence != nil
	hasMultipleSections := hasSentences && len(msg.NewSentence) > 1
	hasSingleSentenceAndNoBidec := hasSentences && len(msg.NewSentence) == 1 && msg.Bidec == nil

	switch {
	case hasMultipleSections || hasSingleSentenceAndNoBidec:
		sections := msg.NewSentence
		if hasMultipleSections {
			sections = sections[1:]
		}
		for _, section := range sections {
			front.WriteString(paragraphBreak)
			front.WriteString(joinSentences(section.Sentences, maxSectionSentences))
			if hasMultipleSections {
				back = append(back, section.Meaning)
			}
		}
	case msg.Bidec != nil:
		for _, part := range msg.Bidec.Parts {
			for _, mean := range part.Means {
				if len(mean.Sentences) > 0 {
					front.WriteString(paragraphBreak)
					front.WriteString(joinSentences(mean.Sentences, len(mean.Sentences)))
				}
				back = append(back, mean.WordMean)
			}
		}
	}

	if hasSingleSentenceAndNoBidec || msg.Bidec == nil {
		for _, symbol := range symbols {
			for _, part := range symbol.Parts {
				back = append(back, part.Means...)
			}
		}
	}

	return Face{
		Front:    front.String(),
		Back:     strings.Join(back, BackSeparator),
		Meanings: back,
	}, nil
}

// joinSentences joins the English text of at most limit sentences.
func joinSentences(sentences []provider.Sentence, limit int) string {
	if len(sentences) > limit {
		sentences = sentences[:limit]
	}
	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.En
	}
	return strings.Join(texts, lineBreak)
}
