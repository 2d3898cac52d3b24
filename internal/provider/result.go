package provider

// Status values reported by the dictionary API.
const (
	StatusFailed = 0
	StatusOK     = 1
)

// TranslationResult is the raw web-dictionary response for one word.
// The shape of Message varies by word; optional sections are nil when absent.
type TranslationResult struct {
	Status  int     `json:"status"`
	Message Message `json:"message"`
}

// Message is the body of a dictionary response.
type Message struct {
	BaseInfo    *BaseInfo     `json:"baesInfo"`
	NewSentence []SentenceSet `json:"new_sentence"`
	Bidec       *Bidec        `json:"bidec"`
}

// BaseInfo holds the headword and its pronunciation symbols.
type BaseInfo struct {
	WordName *string  `json:"word_name"`
	Symbols  []Symbol `json:"symbols"`
}

// Symbol is one pronunciation with its part-of-speech meanings.
type Symbol struct {
	PhEn    string       `json:"ph_en"`
	PhEnMP3 string       `json:"ph_en_mp3"`
	Parts   []SymbolPart `json:"parts"`
}

// SymbolPart lists short meanings for one part of speech.
type SymbolPart struct {
	Part  string   `json:"part"`
	Means []string `json:"means"`
}

// SentenceSet is a group of example sentences sharing one meaning.
type SentenceSet struct {
	Tag       string     `json:"tag"`
	Word      string     `json:"word"`
	Meaning   string     `json:"meaning"`
	Sentences []Sentence `json:"sentences"`
}

// Sentence is a bilingual example sentence.
type Sentence struct {
	En string `json:"en"`
	Cn string `json:"cn,omitempty"`
}

// Bidec is the bilingual definitions section.
type Bidec struct {
	Parts []BidecPart `json:"parts"`
}

// BidecPart groups definitions for one part of speech.
type BidecPart struct {
	PartName string      `json:"part_name"`
	Means    []BidecMean `json:"means"`
}

// BidecMean is one definition with its example sentences.
type BidecMean struct {
	WordMean  string     `json:"word_mean"`
	Sentences []Sentence `json:"sentences"`
}
