package hebrew_test

import (
	"errors"
	"testing"

	"github.com/alephbot/alephbot/internal/hebrew"
)

func TestContainsHebrew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "plain hebrew", input: "שלום", want: true},
		{name: "hebrew with niqqud", input: "שָׁלוֹם", want: true},
		{name: "mixed hebrew and latin", input: "hello שלום", want: true},
		{name: "latin only", input: "hello world", want: false},
		{name: "empty", input: "", want: false},
		{name: "digits and punctuation", input: "123 !?", want: false},
		{name: "niqqud mark alone", input: string(rune(hebrew.Shva)), want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := hebrew.ContainsHebrew(tc.input); got != tc.want {
				t.Errorf("ContainsHebrew(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	// NFC must be idempotent and keep already-composed text intact.
	input := "שָׁלוֹם"
	once := hebrew.Normalize(input)
	twice := hebrew.Normalize(once)
	if once != twice {
		t.Errorf("Normalize is not idempotent: %q != %q", once, twice)
	}
	if hebrew.Normalize("hello") != "hello" {
		t.Errorf("Normalize changed plain ASCII text")
	}
}

func TestCheckText(t *testing.T) {
	t.Parallel()

	const maxLen = 10

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid hebrew", input: "שלום", wantErr: nil},
		{name: "empty", input: "", wantErr: hebrew.ErrEmptyText},
		{name: "whitespace only", input: "   \t\n", wantErr: hebrew.ErrEmptyText},
		{name: "too long", input: "שלום עולם טוב", wantErr: hebrew.ErrTextTooLong},
		{name: "no hebrew", input: "hello", wantErr: hebrew.ErrNotHebrew},
		{name: "at limit", input: "אבגדהוזחטי", wantErr: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := hebrew.CheckText(tc.input, maxLen)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("CheckText(%q, %d) = %v, want %v", tc.input, maxLen, err, tc.wantErr)
			}
		})
	}
}
