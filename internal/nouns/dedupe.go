package nouns

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Deduplicator merges noun terms that share an identical English/Japanese
// pair. The merge is idempotent and independent of input record order.
type Deduplicator struct {
	log zerolog.Logger
}

// NewDeduplicator creates a deduplicator that logs on logger.
func NewDeduplicator(logger zerolog.Logger) *Deduplicator {
	return &Deduplicator{log: logger}
}

// mergeKey builds the grouping key. The pair is matched literally:
// case-sensitive and whitespace-sensitive.
func mergeKey(t Term) string {
	return t.English + "|||" + t.Japanese
}

// anchorID is the identifier a term is ordered by when choosing the merge
// base. Merged terms are anchored by their lowest aggregated id.
func anchorID(t Term) string {
	if t.ID != "" {
		return t.ID
	}
	if len(t.IDs) > 0 {
		return t.IDs[0]
	}
	return ""
}

// Deduplicate merges every category of the extraction and attaches the
// resulting statistics to the document metadata.
func (d *Deduplicator) Deduplicate(ex Extraction) Extraction {
	original := ex.TotalTerms()
	d.log.Info().
		Int("terms", original).
		Int("categories", len(ex.Categories)).
		Msg("Deduplicating noun glossary")

	result := Extraction{
		Metadata:   ex.Metadata,
		Categories: make(map[string]Category, len(ex.Categories)),
	}

	for category, cat := range ex.Categories {
		merged := d.DeduplicateCategory(cat.Terms)
		result.Categories[category] = Category{
			Count: len(merged),
			Terms: merged,
		}
		d.log.Info().
			Str("category", category).
			Int("before", cat.Count).
			Int("after", len(merged)).
			Msg("Category deduplicated")
	}

	deduplicated := result.TotalTerms()
	removed := original - deduplicated

	rate := "0.0%"
	if original > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(removed)/float64(original)*100)
	}

	result.Metadata.DeduplicationStats = &DedupStats{
		OriginalTermCount:     original,
		DeduplicatedTermCount: deduplicated,
		DuplicatesRemoved:     removed,
		DeduplicationRate:     rate,
	}
	result.Metadata.Categories = categoryNamesOf(result.Categories)

	d.log.Info().
		Int("original", original).
		Int("deduplicated", deduplicated).
		Int("removed", removed).
		Str("rate", rate).
		Msg("Deduplication complete")

	return result
}

// DeduplicateCategory merges terms within one category and returns them
// sorted case-insensitively by English text.
func (d *Deduplicator) DeduplicateCategory(terms []Term) []Term {
	groups := make(map[string][]Term)
	for _, t := range terms {
		key := mergeKey(t)
		groups[key] = append(groups[key], t)
	}

	merged := make([]Term, 0, len(groups))
	for _, group := range groups {
		merged = append(merged, mergeGroup(group))
	}

	sort.Slice(merged, func(i, j int) bool {
		li, lj := strings.ToLower(merged[i].English), strings.ToLower(merged[j].English)
		if li != lj {
			return li < lj
		}
		if merged[i].English != merged[j].English {
			return merged[i].English < merged[j].English
		}
		return merged[i].Japanese < merged[j].Japanese
	})

	return merged
}

// mergeGroup collapses a group sharing one English/Japanese pair. The record
// with the lowest identifier becomes the base, making the result independent
// of input order. Singleton groups pass through untouched.
func mergeGroup(group []Term) Term {
	if len(group) == 1 {
		return group[0]
	}

	sort.Slice(group, func(i, j int) bool {
		return anchorID(group[i]) < anchorID(group[j])
	})

	merged := group[0]

	idSet := make(map[string]struct{})
	gameSet := make(map[string]struct{})
	categorySet := make(map[string]struct{})

	for _, t := range group {
		if t.ID != "" {
			idSet[t.ID] = struct{}{}
		}
		for _, id := range t.IDs {
			idSet[id] = struct{}{}
		}
		if t.Game != "" {
			gameSet[t.Game] = struct{}{}
		}
		for _, game := range t.Games {
			gameSet[game] = struct{}{}
		}
		for _, c := range t.Categories {
			categorySet[c] = struct{}{}
		}
	}

	merged.ID = ""
	merged.Game = ""
	merged.IDs = sortedKeys(idSet)
	merged.Games = sortedKeys(gameSet)
	merged.Categories = sortedKeys(categorySet)
	merged.OccurrenceCount = len(group)

	// Keep gender variants when any group member carries them.
	if merged.JapaneseMale == "" {
		for _, t := range group {
			if t.JapaneseMale != "" {
				merged.JapaneseMale = t.JapaneseMale
				break
			}
		}
	}
	if merged.JapaneseFemale == "" {
		for _, t := range group {
			if t.JapaneseFemale != "" {
				merged.JapaneseFemale = t.JapaneseFemale
				break
			}
		}
	}

	return merged
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func categoryNamesOf(categories map[string]Category) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
