// Package glossary joins parsed English TRA entries with their Japanese
// counterparts into the durable glossary structure serialized to JSON.
package glossary

import "tra-glossary/internal/tra"

// Metadata is derived per-entry information computed at build time.
type Metadata struct {
	Game        string `json:"game"`
	TraID       int    `json:"tra_id"`
	HasVariable bool   `json:"has_variables"`
	HasSoundRef bool   `json:"has_sound_ref"`
	CharCountEN int    `json:"char_count_en"`
	CharCountJA int    `json:"char_count_ja"`
}

// Entry is one English-to-Japanese mapping, immutable after creation.
// The ID is the qualified form "<game>:<tra_id>".
type Entry struct {
	ID       string      `json:"id"`
	English  string      `json:"english"`
	Japanese tra.Variant `json:"japanese"`
	Metadata Metadata    `json:"metadata"`
}

// GameStats summarizes the entries contributed by one game.
type GameStats struct {
	Total             int `json:"total"`
	WithTranslation   int `json:"with_translation"`
	WithGenderVariant int `json:"with_gender_variant"`
}

// FileMetadata describes the glossary document itself. Statistics is a
// read-only snapshot taken at build time.
type FileMetadata struct {
	Version      string               `json:"version"`
	GeneratedAt  string               `json:"generated_at"`
	SourceGames  []string             `json:"source_games"`
	TotalEntries int                  `json:"total_entries"`
	Statistics   map[string]GameStats `json:"statistics,omitempty"`
}

// TermInfo is one term-frequency index record.
type TermInfo struct {
	Count        int      `json:"count"`
	Translations []string `json:"translations"`
	Entries      []string `json:"entries"`
}

// Glossary is the complete top-level output document.
type Glossary struct {
	Metadata      FileMetadata        `json:"metadata"`
	Entries       []Entry             `json:"entries"`
	TermFrequency map[string]TermInfo `json:"term_frequency"`
}
