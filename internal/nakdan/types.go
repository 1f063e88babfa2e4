package nakdan

import (
	"encoding/json"
	"errors"
)

// Client error sentinels. Transport problems and upstream rejections are
// reported to users differently, so the two are kept distinct.
var (
	// ErrUnavailable covers network, DNS, and timeout failures reaching the
	// Nakdan service.
	ErrUnavailable = errors.New("nakdan service unavailable")
	// ErrRejected covers non-success statuses and response bodies that do
	// not decode into the documented shape.
	ErrRejected = errors.New("nakdan request rejected")
)

// Morphology holds the per-word morphological features extracted from the
// analyze endpoint's BGU table.
type Morphology struct {
	Word      string `json:"word"`
	Prefix    string `json:"prefix,omitempty"`
	Suffix    string `json:"suffix,omitempty"`
	Menukad   string `json:"menukad,omitempty"`
	Lemma     string `json:"lemma,omitempty"`
	POS       string `json:"pos,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Number    string `json:"number,omitempty"`
	Person    string `json:"person,omitempty"`
	Status    string `json:"status,omitempty"`
	Tense     string `json:"tense,omitempty"`
	Binyan    string `json:"binyan,omitempty"`
	SufGender string `json:"suf_gender,omitempty"`
	SufPerson string `json:"suf_person,omitempty"`
	SufNumber string `json:"suf_number,omitempty"`
}

// Result is the outcome of a Nakdan operation. Text carries the vowelized
// (or lemmatized) rendition; Words carries per-word analysis where the
// operation produces one.
type Result struct {
	Text  string
	Words []Morphology
}

// Lemma pairs a surface word with its base form.
type Lemma struct {
	Word  string
	Lemma string
}

// wordEntry is one element of the Nakdan response array. Elements are
// usually objects; separators occasionally arrive as bare strings, which
// decodeEntries folds into the word field.
type wordEntry struct {
	Word    string          `json:"word"`
	Options json.RawMessage `json:"options"`
	BGU     string          `json:"BGU"`
	sep     bool
}

// decodeEntries parses the response array, accepting both object entries
// and bare-string separators.
func decodeEntries(body []byte) ([]wordEntry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	entries := make([]wordEntry, 0, len(raw))
	for _, elem := range raw {
		var entry wordEntry
		if err := json.Unmarshal(elem, &entry); err == nil {
			entries = append(entries, entry)
			continue
		}
		var s string
		if err := json.Unmarshal(elem, &s); err != nil {
			return nil, err
		}
		entries = append(entries, wordEntry{Word: s, sep: true})
	}
	return entries, nil
}

// firstOption returns the first vowelized form offered for the entry, or
// the bare word when the service offered none.
func (e wordEntry) firstOption() string {
	if len(e.Options) == 0 {
		return e.Word
	}
	// Vowelize responses carry options as a flat list of strings; analyze
	// responses nest each option as [form, [...morph]].
	var flat []string
	if err := json.Unmarshal(e.Options, &flat); err == nil && len(flat) > 0 {
		return flat[0]
	}
	var nested [][]json.RawMessage
	if err := json.Unmarshal(e.Options, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		var form string
		if err := json.Unmarshal(nested[0][0], &form); err == nil {
			return form
		}
	}
	return e.Word
}
