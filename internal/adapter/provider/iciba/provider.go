package iciba

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/wordcards/internal/domain"
	"github.com/heartmarshall/wordcards/internal/provider"
)

const (
	// APIPath is the query endpoint; it is also the first component of the signed content.
	APIPath = "/dictionary/word/query/web"

	DefaultBaseURL = "https://dict.iciba.com"
	DefaultClient  = "6"
	DefaultKey     = "1000006"
)

// Credentials identify the web client to the dictionary API.
type Credentials struct {
	Client string
	Key    string
	Secret string
}

// Provider fetches word entries from the iciba web dictionary.
type Provider struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	now        func() time.Time
	log        *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API host (for testing).
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.httpClient = c }
}

// WithClock replaces the clock used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// NewProvider creates a Provider with the default API host.
func NewProvider(creds Credentials, logger *slog.Logger, opts ...Option) *Provider {
	if creds.Client == "" {
		creds.Client = DefaultClient
	}
	if creds.Key == "" {
		creds.Key = DefaultKey
	}

	p := &Provider{
		baseURL:    DefaultBaseURL,
		creds:      creds,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
		log:        logger.With("adapter", "iciba"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchTranslation fetches the raw dictionary payload for a word.
// The payload is returned as decoded, including responses with status 0.
func (p *Provider) FetchTranslation(ctx context.Context, word string) (*provider.TranslationResult, error) {
	timestamp := p.now().UnixMilli()
	reqURL := p.baseURL + APIPath + "?" + p.query(word, timestamp).Encode()

	p.log.DebugContext(ctx, "iciba request", slog.String("word", word), slog.Int64("timestamp", timestamp))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("iciba: create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "iciba request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("iciba: request failed: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("iciba: unexpected status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("iciba: read body: %w", err)
	}

	var result provider.TranslationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("iciba: decode json: %w: %w", domain.ErrMalformedEntry, err)
	}

	p.log.DebugContext(ctx, "iciba response",
		slog.String("word", word),
		slog.Int("status", result.Status),
		slog.Int("sentence_sets", len(result.Message.NewSentence)),
		slog.Bool("bidec", result.Message.Bidec != nil),
	)

	return &result, nil
}

func (p *Provider) query(word string, timestamp int64) url.Values {
	ts := strconv.FormatInt(timestamp, 10)
	q := url.Values{}
	q.Set("client", p.creds.Client)
	q.Set("key", p.creds.Key)
	q.Set("timestamp", ts)
	q.Set("word", word)
	q.Set("signature", Sign(p.creds, ts, word))
	return q
}

// Sign computes the request signature: hex MD5 over the API path, client id,
// key, millisecond timestamp, lowercased word and shared secret.
func Sign(creds Credentials, timestamp, word string) string {
	content := APIPath + creds.Client + creds.Key + timestamp + strings.ToLower(word) + creds.Secret
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}
