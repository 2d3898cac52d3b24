package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/heartmarshall/wordcards/internal/domain"
	"github.com/heartmarshall/wordcards/internal/service/translate"
)

const (
	maxBatchWords = 200
	maxBatchBody  = 1 << 20
)

// translateService defines the minimal interface needed by TranslateHandler.
type translateService interface {
	Translate(ctx context.Context, word string) (domain.Card, error)
	TranslateAll(ctx context.Context, words []string) []translate.Result
}

// TranslateHandler serves the translate endpoints.
type TranslateHandler struct {
	svc translateService
	log *slog.Logger
}

// NewTranslateHandler creates a TranslateHandler.
func NewTranslateHandler(svc translateService, logger *slog.Logger) *TranslateHandler {
	return &TranslateHandler{svc: svc, log: logger.With("handler", "translate")}
}

type batchRequest struct {
	Words []string `json:"words"`
	Text  string   `json:"text"`
}

type batchResult struct {
	Word  string       `json:"word"`
	Card  *domain.Card `json:"card,omitempty"`
	Error string       `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchResult `json:"results"`
}

// Get handles GET /translate/{word}. The router must match on the encoded
// path so the segment arrives still percent-encoded.
func (h *TranslateHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["word"]
	word, err := url.PathUnescape(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid word encoding")
		return
	}

	card, err := h.svc.Translate(r.Context(), word)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// Batch handles POST /translate with either a word list or free text split on
// commas and newlines. Results keep the input order.
func (h *TranslateHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	words := req.words()
	if len(words) == 0 {
		writeError(w, http.StatusBadRequest, "words or text is required")
		return
	}
	if len(words) > maxBatchWords {
		writeError(w, http.StatusBadRequest, "too many words")
		return
	}

	results := h.svc.TranslateAll(r.Context(), words)

	resp := batchResponse{Results: make([]batchResult, len(results))}
	for i, res := range results {
		resp.Results[i] = batchResult{Word: res.Word, Card: res.Card}
		if res.Err != nil {
			_, resp.Results[i].Error = publicError(res.Err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (req batchRequest) words() []string {
	if len(req.Words) == 0 {
		return domain.ParseWords(req.Text)
	}
	words := make([]string, 0, len(req.Words))
	for _, w := range req.Words {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}
