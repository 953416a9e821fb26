package nouns

import (
	"sort"
	"strings"
	"unicode"

	"tra-glossary/internal/glossary"

	"github.com/rs/zerolog"
)

// pronounPrefixes disqualify dialog lines that open with a subject pronoun.
var pronounPrefixes = []string{"you ", "i ", "we ", "they ", "he ", "she "}

// Extractor classifies glossary entries into noun categories.
type Extractor struct {
	log      zerolog.Logger
	patterns *PatternSet
}

// NewExtractor creates an extractor using the given pattern tables.
func NewExtractor(logger zerolog.Logger, patterns *PatternSet) *Extractor {
	return &Extractor{log: logger, patterns: patterns}
}

// LikelyNoun reports whether an English text looks like a noun term rather
// than a dialog sentence: short, at most four words, at least one of them
// capitalized.
func LikelyNoun(english string) bool {
	if len(english) > 100 || strings.Count(english, " ") > 8 {
		return false
	}

	lower := strings.ToLower(english)
	for _, prefix := range pronounPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}

	words := strings.Fields(english)
	if len(words) > 4 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Extract classifies the glossary's entries and groups the resulting terms
// by category. A term belonging to several categories appears in each.
// Entries without a default Japanese form are not candidates.
func (e *Extractor) Extract(g glossary.Glossary, sourceFile string) Extraction {
	e.log.Info().Int("entries", len(g.Entries)).Msg("Extracting noun terms")

	byCategory := make(map[string][]Term)

	for _, entry := range g.Entries {
		if entry.Japanese.Default == nil || *entry.Japanese.Default == "" {
			continue
		}
		if !LikelyNoun(entry.English) {
			continue
		}

		categories := e.patterns.Categorize(entry.English)

		term := Term{
			ID:         entry.ID,
			English:    entry.English,
			Japanese:   *entry.Japanese.Default,
			Game:       entry.Metadata.Game,
			Categories: categories,
		}
		if entry.Japanese.Male != nil {
			term.JapaneseMale = *entry.Japanese.Male
		}
		if entry.Japanese.Female != nil {
			term.JapaneseFemale = *entry.Japanese.Female
		}

		for _, category := range categories {
			byCategory[category] = append(byCategory[category], term)
		}
	}

	result := Extraction{
		Metadata: ExtractionMetadata{
			SourceFile:            sourceFile,
			TotalEntriesProcessed: len(g.Entries),
			ExtractionDate:        g.Metadata.GeneratedAt,
			Categories:            categoryNames(byCategory),
		},
		Categories: make(map[string]Category, len(byCategory)),
	}

	for category, terms := range byCategory {
		sort.Slice(terms, func(i, j int) bool {
			if terms[i].English != terms[j].English {
				return terms[i].English < terms[j].English
			}
			return terms[i].ID < terms[j].ID
		})
		result.Categories[category] = Category{
			Count: len(terms),
			Terms: terms,
		}
		e.log.Info().Str("category", category).Int("terms", len(terms)).Msg("Category extracted")
	}

	return result
}

func categoryNames(byCategory map[string][]Term) []string {
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
