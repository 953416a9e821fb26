package glossary

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"tra-glossary/internal/tokens"
	"tra-glossary/internal/tra"

	"github.com/rs/zerolog"
)

// Version identifies the glossary document schema.
const Version = "1.0"

// noTextSentinel marks engine entries that intentionally carry no dialog.
const noTextSentinel = "<NO TEXT>"

// Builder joins English entries with Japanese variants into glossary entries.
type Builder struct {
	log zerolog.Logger

	skipped int
}

// NewBuilder creates a builder that logs on logger.
func NewBuilder(logger zerolog.Logger) *Builder {
	return &Builder{log: logger}
}

// Skipped returns the number of entries dropped by the skip predicate during
// the most recent BuildFromRecords call.
func (b *Builder) Skipped() int {
	return b.skipped
}

// ShouldSkip applies the content filter to a joined pair. The rules fire in
// fixed order but are mutually independent: reordering them never changes
// the verdict.
func ShouldSkip(english string, japanese tra.Variant) bool {
	if english == noTextSentinel {
		return true
	}
	if strings.EqualFold(english, "placeholder") {
		return true
	}
	trimmed := strings.TrimSpace(english)
	if trimmed == "" {
		return true
	}
	if !japanese.HasAny() {
		return true
	}
	if len(trimmed) == 1 && trimmed[0] >= '0' && trimmed[0] <= '9' {
		return true
	}
	return false
}

// NewMetadata derives per-entry metadata from the English text and the
// Japanese variant. Character counts are rune counts; the Japanese count is
// the longest populated variant.
func NewMetadata(game string, traID int, english string, japanese tra.Variant) Metadata {
	charCountJA := 0
	for _, p := range []*string{japanese.Default, japanese.Male, japanese.Female} {
		if p == nil {
			continue
		}
		if n := utf8.RuneCountInString(*p); n > charCountJA {
			charCountJA = n
		}
	}

	return Metadata{
		Game:        game,
		TraID:       traID,
		HasVariable: tokens.HasVariable(english),
		HasSoundRef: tokens.HasSoundRef(english),
		CharCountEN: utf8.RuneCountInString(english),
		CharCountJA: charCountJA,
	}
}

// BuildFromRecords joins English entries with their Japanese variants by
// identifier. An entry without a Japanese counterpart gets an empty variant
// (and is then dropped by the skip predicate). Output is ordered by
// ascending identifier.
func (b *Builder) BuildFromRecords(enEntries map[int]tra.Entry, jaVariants map[int]tra.Variant, game string) []Entry {
	b.skipped = 0

	b.log.Info().
		Str("game", game).
		Int("english", len(enEntries)).
		Int("japanese", len(jaVariants)).
		Msg("Building glossary entries")

	ids := make([]int, 0, len(enEntries))
	for id := range enEntries {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		en := enEntries[id]
		ja := jaVariants[id]

		if ShouldSkip(en.Text, ja) {
			b.skipped++
			continue
		}

		entries = append(entries, Entry{
			ID:       fmt.Sprintf("%s:%d", game, id),
			English:  en.Text,
			Japanese: ja,
			Metadata: NewMetadata(game, id, en.Text, ja),
		})
	}

	b.log.Info().
		Str("game", game).
		Int("entries", len(entries)).
		Int("skipped", b.skipped).
		Msg("Built glossary entries")

	return entries
}

// BuildMetadata computes the document metadata, including per-game
// statistics over the built entries.
func (b *Builder) BuildMetadata(entries []Entry, sourceGames []string) FileMetadata {
	statistics := make(map[string]GameStats, len(sourceGames))
	for _, game := range sourceGames {
		var stats GameStats
		for _, e := range entries {
			if e.Metadata.Game != game {
				continue
			}
			stats.Total++
			if e.Japanese.HasAny() {
				stats.WithTranslation++
			}
			if e.Japanese.Male != nil || e.Japanese.Female != nil {
				stats.WithGenderVariant++
			}
		}
		statistics[game] = stats
	}

	return FileMetadata{
		Version:      Version,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		SourceGames:  sourceGames,
		TotalEntries: len(entries),
		Statistics:   statistics,
	}
}

// BuildGlossary assembles the complete document. termFrequency may be nil,
// which serializes as an empty index.
func (b *Builder) BuildGlossary(entries []Entry, sourceGames []string, termFrequency map[string]TermInfo) Glossary {
	if termFrequency == nil {
		termFrequency = make(map[string]TermInfo)
	}
	return Glossary{
		Metadata:      b.BuildMetadata(entries, sourceGames),
		Entries:       entries,
		TermFrequency: termFrequency,
	}
}
