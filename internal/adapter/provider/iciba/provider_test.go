package iciba

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/heartmarshall/wordcards/internal/domain"
	"github.com/heartmarshall/wordcards/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	testCreds = Credentials{Client: "6", Key: "1000006", Secret: "test-secret"}
	fixedTime = time.UnixMilli(1700000000123)
)

func fixedClock() time.Time { return fixedTime }

func TestSign(t *testing.T) {
	t.Parallel()

	sum := md5.Sum([]byte("/dictionary/word/query/web" + "6" + "1000006" + "1700000000123" + "run" + "test-secret"))
	want := hex.EncodeToString(sum[:])

	assert.Equal(t, want, Sign(testCreds, "1700000000123", "run"))
	assert.Equal(t, want, Sign(testCreds, "1700000000123", "RUN"), "word must be lowercased before signing")
	assert.Len(t, want, 32)
}

func TestProvider_FetchTranslation_Success(t *testing.T) {
	t.Parallel()

	body := `{
		"status": 1,
		"message": {
			"baesInfo": {
				"word_name": "run",
				"symbols": [{"ph_en": "rʌn", "parts": [{"part": "v.", "means": ["跑", "奔"]}]}]
			},
			"bidec": {
				"parts": [{"means": [{"word_mean": "to move fast", "sentences": [{"en": "I run."}]}]}]
			}
		}
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, APIPath, r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "6", q.Get("client"))
		assert.Equal(t, "1000006", q.Get("key"))
		assert.Equal(t, "1700000000123", q.Get("timestamp"))
		assert.Equal(t, "Run", q.Get("word"))
		assert.Equal(t, Sign(testCreds, "1700000000123", "Run"), q.Get("signature"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := NewProvider(testCreds, newTestLogger(), WithBaseURL(srv.URL), WithClock(fixedClock))
	result, err := p.FetchTranslation(context.Background(), "Run")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, provider.StatusOK, result.Status)
	require.NotNil(t, result.Message.BaseInfo)
	require.NotNil(t, result.Message.BaseInfo.WordName)
	assert.Equal(t, "run", *result.Message.BaseInfo.WordName)
	require.Len(t, result.Message.BaseInfo.Symbols, 1)
	assert.Equal(t, "rʌn", result.Message.BaseInfo.Symbols[0].PhEn)
	assert.Nil(t, result.Message.NewSentence)
	require.NotNil(t, result.Message.Bidec)
	assert.Equal(t, "to move fast", result.Message.Bidec.Parts[0].Means[0].WordMean)
}

func TestProvider_FetchTranslation_WordIsQueryEscaped(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "give up&more", r.URL.Query().Get("word"))
		w.Write([]byte(`{"status":1,"message":{"baesInfo":{"word_name":"give up"}}}`))
	}))
	defer srv.Close()

	p := NewProvider(testCreds, newTestLogger(), WithBaseURL(srv.URL), WithClock(fixedClock))
	_, err := p.FetchTranslation(context.Background(), "give up&more")
	require.NoError(t, err)
}

func TestProvider_FetchTranslation_FailedStatusPassesThrough(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":0,"message":{}}`))
	}))
	defer srv.Close()

	p := NewProvider(testCreds, newTestLogger(), WithBaseURL(srv.URL))
	result, err := p.FetchTranslation(context.Background(), "qwzx")
	require.NoError(t, err)
	assert.Equal(t, provider.StatusFailed, result.Status)
	assert.Nil(t, result.Message.BaseInfo)
}

func TestProvider_FetchTranslation_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewProvider(testCreds, newTestLogger(), WithBaseURL(srv.URL))
	_, err := p.FetchTranslation(context.Background(), "run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.Contains(t, err.Error(), "502")
}

func TestProvider_FetchTranslation_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	p := NewProvider(testCreds, newTestLogger(), WithBaseURL(srv.URL))
	_, err := p.FetchTranslation(context.Background(), "run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedEntry))
}

func TestProvider_FetchTranslation_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewProvider(testCreds, newTestLogger(), WithBaseURL(url))
	_, err := p.FetchTranslation(context.Background(), "run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}

func TestProvider_FetchTranslation_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":1,"message":{}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProvider(testCreds, newTestLogger(), WithBaseURL(srv.URL))
	_, err := p.FetchTranslation(ctx, "run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewProvider_Defaults(t *testing.T) {
	t.Parallel()

	p := NewProvider(Credentials{Secret: "s"}, newTestLogger())
	assert.Equal(t, DefaultBaseURL, p.baseURL)
	assert.Equal(t, DefaultClient, p.creds.Client)
	assert.Equal(t, DefaultKey, p.creds.Key)

	p = NewProvider(Credentials{Secret: "s"}, newTestLogger(), WithBaseURL("http://localhost:1234/"))
	assert.Equal(t, "http://localhost:1234", p.baseURL)
}
