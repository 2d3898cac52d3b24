package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/wordcards/internal/domain"
)

const (
	// Version is the AnkiConnect API version sent with every action.
	Version = 6

	DefaultURL = "http://127.0.0.1:8765"
)

// Action names supported by the client.
const (
	ActionDeckNames       = "deckNames"
	ActionDeckNamesAndIDs = "deckNamesAndIds"
	ActionFindCards       = "findCards"
	ActionCardsInfo       = "cardsInfo"
	ActionAddNote         = "addNote"
	ActionAddNotes        = "addNotes"
)

// StatusError is returned when AnkiConnect answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Status)
}

func (e *StatusError) Unwrap() error { return domain.ErrUpstream }

// ActionError is returned when AnkiConnect reports a failed action.
type ActionError struct {
	Action  string
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// Client issues actions against a single AnkiConnect endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. An empty endpoint uses DefaultURL.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "anki"),
	}
}

// Do posts one action and decodes its result into out (which may be nil).
func (c *Client) Do(ctx context.Context, action string, params, out any) error {
	payload, err := json.Marshal(request{Action: action, Version: Version, Params: params})
	if err != nil {
		return fmt.Errorf("anki: %s: encode request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("anki: %s: create request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.DebugContext(ctx, "anki request", slog.String("action", action))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "anki request failed", slog.String("action", action), slog.String("error", err.Error()))
		return fmt.Errorf("anki: %s: %w: %w", action, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("anki: %s: %w", action, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("anki: %s: read body: %w", action, err)
	}

	var envelope response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("anki: %s: decode response: %w", action, err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("anki: %s: %w", action, &ActionError{Action: action, Message: *envelope.Error})
	}

	if out == nil || len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("anki: %s: decode result: %w", action, err)
	}
	return nil
}

// DeckNames lists all deck names.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	var decks []string
	if err := c.Do(ctx, ActionDeckNames, nil, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

// DeckNamesAndIDs maps deck names to deck ids.
func (c *Client) DeckNamesAndIDs(ctx context.Context) (map[string]int64, error) {
	decks := map[string]int64{}
	if err := c.Do(ctx, ActionDeckNamesAndIDs, nil, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

// FindCards returns the ids of all cards in a deck.
func (c *Client) FindCards(ctx context.Context, deck string) ([]int64, error) {
	var ids []int64
	params := map[string]string{"query": DeckQuery(deck)}
	if err := c.Do(ctx, ActionFindCards, params, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// CardsInfo returns AnkiConnect's description of each card, undecoded.
func (c *Client) CardsInfo(ctx context.Context, ids []int64) ([]json.RawMessage, error) {
	var info []json.RawMessage
	params := map[string][]int64{"cards": ids}
	if err := c.Do(ctx, ActionCardsInfo, params, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// AddNote adds a note and returns its id, or nil when Anki rejected it
// (for example as a duplicate).
func (c *Client) AddNote(ctx context.Context, note domain.Note) (*int64, error) {
	var id *int64
	params := map[string]domain.Note{"note": note}
	if err := c.Do(ctx, ActionAddNote, params, &id); err != nil {
		return nil, err
	}
	return id, nil
}

// AddNotes adds notes in one call. The result is parallel to notes; rejected
// notes have a nil id.
func (c *Client) AddNotes(ctx context.Context, notes []domain.Note) ([]*int64, error) {
	var ids []*int64
	params := map[string][]domain.Note{"notes": notes}
	if err := c.Do(ctx, ActionAddNotes, params, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Ping checks that AnkiConnect answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.DeckNames(ctx)
	return err
}

// DeckQuery builds a search query matching every card in a deck.
// Names containing spaces or quotes are quoted.
func DeckQuery(deck string) string {
	if strings.ContainsAny(deck, " \t\"") {
		return `deck:"` + strings.ReplaceAll(deck, `"`, `\"`) + `"`
	}
	return "deck:" + deck
}

func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode)))
}
