// Package nouns classifies glossary entries into proper-noun categories via
// pattern and keyword matching, and deduplicates the result by merging
// records that share an identical English/Japanese pair.
package nouns

// Term is one noun record. Before deduplication it carries a single ID and
// Game; after merging N records it carries the aggregated IDs, Games and an
// OccurrenceCount instead.
type Term struct {
	ID              string   `json:"id,omitempty"`
	IDs             []string `json:"ids,omitempty"`
	English         string   `json:"english"`
	Japanese        string   `json:"japanese"`
	JapaneseMale    string   `json:"japanese_male,omitempty"`
	JapaneseFemale  string   `json:"japanese_female,omitempty"`
	Game            string   `json:"game,omitempty"`
	Games           []string `json:"games,omitempty"`
	Categories      []string `json:"categories"`
	OccurrenceCount int      `json:"occurrence_count,omitempty"`
}

// Category groups the terms assigned to one category name.
type Category struct {
	Count int    `json:"count"`
	Terms []Term `json:"terms"`
}

// DedupStats summarizes one deduplication run.
type DedupStats struct {
	OriginalTermCount     int    `json:"original_term_count"`
	DeduplicatedTermCount int    `json:"deduplicated_term_count"`
	DuplicatesRemoved     int    `json:"duplicates_removed"`
	DeduplicationRate     string `json:"deduplication_rate"`
}

// ExtractionMetadata describes a noun glossary document.
type ExtractionMetadata struct {
	SourceFile            string      `json:"source_file"`
	TotalEntriesProcessed int         `json:"total_entries_processed"`
	ExtractionDate        string      `json:"extraction_date"`
	DeduplicationStats    *DedupStats `json:"deduplication_stats,omitempty"`
	Categories            []string    `json:"categories"`
}

// Extraction is the noun glossary document, both the raw extraction output
// and its deduplicated counterpart.
type Extraction struct {
	Metadata   ExtractionMetadata  `json:"metadata"`
	Categories map[string]Category `json:"categories"`
}

// TotalTerms counts terms across all categories.
func (e Extraction) TotalTerms() int {
	total := 0
	for _, cat := range e.Categories {
		total += cat.Count
	}
	return total
}
