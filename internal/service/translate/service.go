package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wordcards/internal/domain"
	"github.com/heartmarshall/wordcards/internal/provider"
)

const defaultMaxConcurrent = 8

type dictionaryProvider interface {
	FetchTranslation(ctx context.Context, word string) (*provider.TranslationResult, error)
}

// Service turns words into cards using a dictionary provider.
type Service struct {
	log           *slog.Logger
	dict          dictionaryProvider
	maxConcurrent int
	lastID        atomic.Int64
}

// NewService creates a translate Service. maxConcurrent bounds the number of
// lookups in flight during TranslateAll; values below 1 use the default.
func NewService(logger *slog.Logger, dict dictionaryProvider, maxConcurrent int) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &Service{
		log:           logger.With("service", "translate"),
		dict:          dict,
		maxConcurrent: maxConcurrent,
	}
}

// Translate looks up a single word and builds its card.
func (s *Service) Translate(ctx context.Context, word string) (domain.Card, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return domain.Card{}, domain.NewValidationError("word", "required")
	}

	result, err := s.dict.FetchTranslation(ctx, word)
	if err != nil {
		return domain.Card{}, fmt.Errorf("fetch %q: %w", word, err)
	}
	if result == nil {
		return domain.Card{}, fmt.Errorf("fetch %q: empty response: %w", word, domain.ErrMalformedEntry)
	}

	face, err := BuildCard(result.Message)
	if err != nil {
		s.log.WarnContext(ctx, "dictionary entry rejected",
			slog.String("word", word),
			slog.Int("status", result.Status),
			slog.String("error", err.Error()),
		)
		return domain.Card{}, fmt.Errorf("build card %q: %w", word, err)
	}

	card := domain.Card{
		ID:    s.lastID.Add(1),
		Front: face.Front,
		Back:  face.Back,
	}

	s.log.DebugContext(ctx, "card built",
		slog.String("word", word),
		slog.Int64("card_id", card.ID),
		slog.Int("meanings", len(face.Meanings)),
	)

	return card, nil
}

// Result is the outcome of one word in a batch.
type Result struct {
	Word string
	Card *domain.Card
	Err  error
}

// TranslateAll looks up all words concurrently. Results are returned in input
// order, one per word; a failed word does not affect the others.
func (s *Service) TranslateAll(ctx context.Context, words []string) []Result {
	results := make([]Result, len(words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, word := range words {
		results[i].Word = word
		g.Go(func() error {
			card, err := s.Translate(gctx, word)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Card = &card
			return nil
		})
	}

	// Workers never return errors; failures are recorded per word.
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.log.InfoContext(ctx, "batch translated",
		slog.Int("words", len(words)),
		slog.Int("failed", failed),
	)

	return results
}

// Cards returns the successful cards of a batch in order.
func Cards(results []Result) []domain.Card {
	cards := make([]domain.Card, 0, len(results))
	for _, r := range results {
		if r.Card != nil {
			cards = append(cards, *r.Card)
		}
	}
	return cards
}

// Failures returns the failed results of a batch in order.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
