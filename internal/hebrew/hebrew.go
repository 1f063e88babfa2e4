// Package hebrew provides helpers for working with Hebrew text and niqqud
// (vowel point) combining marks, plus the input validation shared by all
// text commands.
package hebrew

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Niqqud combining marks.
const (
	Shva         = 'ְ' // שְ
	SegolNach    = 'ֱ' // שֱ
	PatachNach   = 'ֲ' // שֲ
	KamatzNach   = 'ֳ' // שֳ
	Hirik        = 'ִ' // שִ
	Tzere        = 'ֵ' // שֵ
	Segol        = 'ֶ' // שֶ
	Patach       = 'ַ' // שַ
	KamatzKatan  = 'ָ' // שָ
	Holam        = 'ֹ' // שֹ
	HolamHaser   = 'ֺ' // שֺ
	Kubutz       = 'ֻ' // שֻ
	Dagesh       = 'ּ' // שּ
	ShinDotRight = 'ׁ' // שׁ
	ShinDotLeft  = 'ׂ' // שׂ
	KamatzGadol  = 'ׇ' // שׇ
)

// Hebrew Unicode block, letters and points included.
const (
	blockStart = '֐'
	blockEnd   = '׿'
)

// Validation sentinels surfaced to users as usage hints rather than
// system failures.
var (
	ErrEmptyText   = errors.New("text is empty")
	ErrTextTooLong = errors.New("text exceeds maximum length")
	ErrNotHebrew   = errors.New("text contains no Hebrew characters")
)

// ContainsHebrew reports whether s has at least one rune in the Hebrew
// Unicode block.
func ContainsHebrew(s string) bool {
	for _, r := range s {
		if r >= blockStart && r <= blockEnd {
			return true
		}
	}
	return false
}

// Normalize returns s in Unicode NFC form. Niqqud marks are combining
// characters; NFC keeps base letter and points in an order terminals and
// Discord clients render correctly.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// CheckText validates command input before any outbound call is made.
// Returns ErrEmptyText, ErrTextTooLong, or ErrNotHebrew; nil when the text
// is usable.
func CheckText(text string, maxLen int) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if maxLen > 0 && len([]rune(text)) > maxLen {
		return ErrTextTooLong
	}
	if !ContainsHebrew(text) {
		return ErrNotHebrew
	}
	return nil
}
