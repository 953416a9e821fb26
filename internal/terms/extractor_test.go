package terms

import (
	"fmt"
	"testing"

	"tra-glossary/internal/glossary"
	"tra-glossary/internal/tra"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func entry(id, english, japanese string) glossary.Entry {
	return glossary.Entry{
		ID:       id,
		English:  english,
		Japanese: tra.Variant{Default: strptr(japanese)},
	}
}

func TestExtractProperNouns(t *testing.T) {
	entries := []glossary.Entry{
		entry("bg1ee:1", "Minsc and Boo stand ready.", "ミンスクとブーの準備はできている。"),
		entry("bg1ee:2", "Go for the eyes, Boo!", "目を狙え、ブー！"),
		entry("bg1ee:3", "The road to Nashkel is dangerous.", "ナシュケルへの道は危険だ。"),
		entry("bg1ee:4", "Only once.", "一度だけ。"),
	}

	e := NewExtractor(zerolog.Nop())
	result := e.ExtractProperNouns(entries)

	// "Boo" appears twice, meeting the default threshold.
	info, ok := result["Boo"]
	require.True(t, ok)
	assert.Equal(t, 2, info.Count)
	assert.Equal(t, []string{"bg1ee:1", "bg1ee:2"}, info.Entries)

	// Single occurrences fall below the threshold.
	_, ok = result["Nashkel"]
	assert.False(t, ok)

	// Sentence-initial stopwords never count as proper nouns.
	_, ok = result["The"]
	assert.False(t, ok)
	_, ok = result["Only"]
	assert.False(t, ok)
}

func TestExtractProperNouns_MultiWord(t *testing.T) {
	entries := []glossary.Entry{
		entry("bg1ee:1", "Meet me at the Friendly Arm Inn.", "フレンドリーアーム亭で会おう。"),
		entry("bg1ee:2", "Rest at the Friendly Arm Inn.", "フレンドリーアーム亭で休め。"),
	}

	e := NewExtractor(zerolog.Nop())
	result := e.ExtractProperNouns(entries)

	info, ok := result["Friendly Arm Inn"]
	require.True(t, ok)
	assert.Equal(t, 2, info.Count)
}

func TestExtractProperNouns_StripsTokens(t *testing.T) {
	entries := []glossary.Entry{
		entry("bg1ee:1", "<CHARNAME> meets Sarevok. [ZOMBI01]", "サレヴォクに会う。"),
		entry("bg1ee:2", "Sarevok laughs.", "サレヴォクは笑う。"),
	}

	e := NewExtractor(zerolog.Nop())
	result := e.ExtractProperNouns(entries)

	_, ok := result["Sarevok"]
	assert.True(t, ok)
	// Token contents never surface as terms.
	_, ok = result["CHARNAME"]
	assert.False(t, ok)
	_, ok = result["ZOMBI01"]
	assert.False(t, ok)
}

func TestExtractFrequentPhrases(t *testing.T) {
	var entries []glossary.Entry
	for i := 0; i < 5; i++ {
		entries = append(entries, entry(fmt.Sprintf("bg1ee:%d", i), "Leather Armor", "レザーアーマー"))
	}
	entries = append(entries, entry("bg1ee:100", "Leather Armor", "革鎧"))
	entries = append(entries, entry("bg1ee:101", "A very long line of dialogue that is certainly not a phrase", "長文"))

	e := NewExtractor(zerolog.Nop())
	result := e.ExtractFrequentPhrases(entries)

	info, ok := result["Leather Armor"]
	require.True(t, ok)
	assert.Equal(t, 6, info.Count)
	// Distinct translations are collected, sorted.
	assert.Len(t, info.Translations, 2)

	_, ok = result["A very long line of dialogue that is certainly not a phrase"]
	assert.False(t, ok)
}

func TestEntriesCapped(t *testing.T) {
	var entries []glossary.Entry
	for i := 0; i < 20; i++ {
		entries = append(entries, entry(fmt.Sprintf("bg1ee:%d", i), "Short Sword", "ショートソード"))
	}

	e := NewExtractor(zerolog.Nop())
	result := e.ExtractFrequentPhrases(entries)

	info, ok := result["Short Sword"]
	require.True(t, ok)
	assert.Equal(t, 20, info.Count)
	assert.Len(t, info.Entries, maxExampleEntries)
}

func TestInconsistencies(t *testing.T) {
	index := map[string]glossary.TermInfo{
		"Boo":    {Count: 5, Translations: []string{"ブー"}},
		"Sword":  {Count: 3, Translations: []string{"ソード", "剣"}},
		"Shield": {Count: 8, Translations: []string{"シールド", "盾"}},
	}

	e := NewExtractor(zerolog.Nop())
	result := e.Inconsistencies(index)

	require.Len(t, result, 2)
	// Most frequent inconsistency first.
	assert.Equal(t, "Shield", result[0].Term)
	assert.Equal(t, "Sword", result[1].Term)
	assert.Equal(t, 2, result[0].NumTranslations)
}

func TestBuildIndex(t *testing.T) {
	var entries []glossary.Entry
	for i := 0; i < 5; i++ {
		entries = append(entries, entry(fmt.Sprintf("bg1ee:%d", i), "Imoen smiles.", "イモエンは微笑む。"))
	}

	e := NewExtractor(zerolog.Nop())
	index := e.BuildIndex(entries)

	_, ok := index["Imoen"]
	assert.True(t, ok)
	_, ok = index["Imoen smiles."]
	assert.True(t, ok)
}
