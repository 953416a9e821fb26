// Package source resolves TRA files in the conventional source tree layout:
// <root>/<game>/<locale>/dialog.tra.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// DialogFile is the conventional TRA filename holding all dialog strings.
const DialogFile = "dialog.tra"

// Layout locates per-game, per-locale translation files under a root
// directory.
type Layout struct {
	root     string
	enLocale string
	jaLocale string
}

// NewLayout creates a layout rooted at root. Locales are directory names in
// the engine's underscore convention (en_US, ja_JP).
func NewLayout(root, enLocale, jaLocale string) (*Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve source root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root is not a directory: %s", abs)
	}

	for _, locale := range []string{enLocale, jaLocale} {
		if _, err := CanonicalLocale(locale); err != nil {
			return nil, err
		}
	}

	return &Layout{root: abs, enLocale: enLocale, jaLocale: jaLocale}, nil
}

// Root returns the absolute source root.
func (l *Layout) Root() string {
	return l.root
}

// EnglishPath returns the English dialog file path for a game.
func (l *Layout) EnglishPath(game string) string {
	return filepath.Join(l.root, game, l.enLocale, DialogFile)
}

// JapanesePath returns the Japanese dialog file path for a game.
func (l *Layout) JapanesePath(game string) string {
	return filepath.Join(l.root, game, l.jaLocale, DialogFile)
}

// HasGame reports whether both required locale files exist for a game.
func (l *Layout) HasGame(game string) bool {
	for _, path := range []string{l.EnglishPath(game), l.JapanesePath(game)} {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}
	return true
}

// CanonicalLocale validates a locale directory name and returns its BCP 47
// canonical form (en_US becomes en-US).
func CanonicalLocale(locale string) (string, error) {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return tag.String(), nil
}
