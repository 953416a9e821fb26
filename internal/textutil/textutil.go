package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// ContainsJapanese checks if a string contains Japanese characters
// (kana or kanji).
func ContainsJapanese(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// PairHash computes a SHA-256 hex hash over an English/Japanese text pair,
// used as the deduplication key in the glossary store.
func PairHash(english, japanese string) string {
	h := sha256.Sum256([]byte(english + "\x00" + japanese))
	return hex.EncodeToString(h[:])
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// CollapseSpaces trims a string and collapses internal runs of whitespace
// into single spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
