package nouns

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTerms() []Term {
	return []Term{
		{ID: "bg2ee:50", English: "Minsc", Japanese: "ミンスク", Game: "bg2ee", Categories: []string{"proper_noun"}},
		{ID: "bg1ee:10", English: "Minsc", Japanese: "ミンスク", Game: "bg1ee", Categories: []string{"proper_noun", "other"}},
		{ID: "bg1ee:20", English: "Boo", Japanese: "ブー", Game: "bg1ee", Categories: []string{"proper_noun"}},
		{ID: "bg1ee:30", English: "Minsc", Japanese: "ミンスク殿", Game: "bg1ee", Categories: []string{"proper_noun"}},
	}
}

func TestDeduplicateCategory(t *testing.T) {
	d := NewDeduplicator(zerolog.Nop())
	merged := d.DeduplicateCategory(sampleTerms())

	// Three distinct (english, japanese) pairs survive.
	require.Len(t, merged, 3)

	// Sorted case-insensitively by English text.
	assert.Equal(t, "Boo", merged[0].English)
	assert.Equal(t, "Minsc", merged[1].English)
	assert.Equal(t, "Minsc", merged[2].English)

	var minsc Term
	for _, m := range merged {
		if m.English == "Minsc" && m.Japanese == "ミンスク" {
			minsc = m
		}
	}

	// Aggregated fields replace the single id/game.
	assert.Empty(t, minsc.ID)
	assert.Empty(t, minsc.Game)
	assert.Equal(t, []string{"bg1ee:10", "bg2ee:50"}, minsc.IDs)
	assert.Equal(t, []string{"bg1ee", "bg2ee"}, minsc.Games)
	assert.Equal(t, []string{"other", "proper_noun"}, minsc.Categories)
	assert.Equal(t, 2, minsc.OccurrenceCount)

	// The different-translation record stays separate and untouched.
	var minscDono Term
	for _, m := range merged {
		if m.Japanese == "ミンスク殿" {
			minscDono = m
		}
	}
	assert.Equal(t, "bg1ee:30", minscDono.ID)
	assert.Zero(t, minscDono.OccurrenceCount)
}

func TestDeduplicateCategory_OrderIndependent(t *testing.T) {
	d := NewDeduplicator(zerolog.Nop())
	want := d.DeduplicateCategory(sampleTerms())

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := sampleTerms()
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, d.DeduplicateCategory(shuffled))
	}
}

func TestDeduplicateCategory_Idempotent(t *testing.T) {
	d := NewDeduplicator(zerolog.Nop())
	once := d.DeduplicateCategory(sampleTerms())
	twice := d.DeduplicateCategory(once)
	assert.Equal(t, once, twice)
}

func TestMergeGroup_GenderVariantFill(t *testing.T) {
	group := []Term{
		{ID: "bg1ee:2", English: "Warrior", Japanese: "戦士", Game: "bg1ee", Categories: []string{"class"}},
		{ID: "bg1ee:1", English: "Warrior", Japanese: "戦士", Game: "bg1ee", Categories: []string{"class"},
			JapaneseMale: "戦士だ", JapaneseFemale: "戦士よ"},
	}

	merged := mergeGroup(group)

	// Base is the lowest id, which already carries the variants.
	assert.Equal(t, "戦士だ", merged.JapaneseMale)
	assert.Equal(t, "戦士よ", merged.JapaneseFemale)
	assert.Equal(t, []string{"bg1ee:1", "bg1ee:2"}, merged.IDs)
}

func TestMergeGroup_GenderVariantFillFromLater(t *testing.T) {
	group := []Term{
		{ID: "bg1ee:1", English: "Warrior", Japanese: "戦士", Game: "bg1ee", Categories: []string{"class"}},
		{ID: "bg1ee:2", English: "Warrior", Japanese: "戦士", Game: "bg1ee", Categories: []string{"class"},
			JapaneseFemale: "戦士よ"},
	}

	merged := mergeGroup(group)

	// The base lacks variants, so they fill from the group.
	assert.Empty(t, merged.JapaneseMale)
	assert.Equal(t, "戦士よ", merged.JapaneseFemale)
}

func TestDeduplicate(t *testing.T) {
	ex := Extraction{
		Metadata: ExtractionMetadata{
			SourceFile:            "glossary.json",
			TotalEntriesProcessed: 100,
			ExtractionDate:        "2026-01-01T00:00:00Z",
		},
		Categories: map[string]Category{
			"proper_noun": {Count: 4, Terms: sampleTerms()},
			"other": {Count: 1, Terms: []Term{
				{ID: "bg1ee:40", English: "Gem", Japanese: "宝石", Game: "bg1ee", Categories: []string{"other"}},
			}},
		},
	}

	d := NewDeduplicator(zerolog.Nop())
	result := d.Deduplicate(ex)

	assert.Equal(t, 3, result.Categories["proper_noun"].Count)
	assert.Equal(t, 1, result.Categories["other"].Count)

	stats := result.Metadata.DeduplicationStats
	require.NotNil(t, stats)
	assert.Equal(t, 5, stats.OriginalTermCount)
	assert.Equal(t, 4, stats.DeduplicatedTermCount)
	assert.Equal(t, 1, stats.DuplicatesRemoved)
	assert.Equal(t, "20.0%", stats.DeduplicationRate)
	assert.Equal(t, []string{"other", "proper_noun"}, result.Metadata.Categories)

	// Untouched metadata fields carry over.
	assert.Equal(t, "glossary.json", result.Metadata.SourceFile)
	assert.Equal(t, 100, result.Metadata.TotalEntriesProcessed)
}

func TestDeduplicate_Idempotent(t *testing.T) {
	ex := Extraction{
		Metadata:   ExtractionMetadata{SourceFile: "glossary.json"},
		Categories: map[string]Category{"proper_noun": {Count: 4, Terms: sampleTerms()}},
	}

	d := NewDeduplicator(zerolog.Nop())
	once := d.Deduplicate(ex)
	twice := d.Deduplicate(once)

	assert.Equal(t, once.Categories, twice.Categories)

	stats := twice.Metadata.DeduplicationStats
	require.NotNil(t, stats)
	assert.Zero(t, stats.DuplicatesRemoved)
}

func TestDeduplicate_Empty(t *testing.T) {
	d := NewDeduplicator(zerolog.Nop())
	result := d.Deduplicate(Extraction{Categories: map[string]Category{}})

	require.NotNil(t, result.Metadata.DeduplicationStats)
	assert.Equal(t, "0.0%", result.Metadata.DeduplicationStats.DeduplicationRate)
}
