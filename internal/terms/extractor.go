// Package terms builds the term-frequency index over glossary entries:
// proper nouns recurring across dialog lines and short phrases repeated
// often enough to be worth a glossary slot.
package terms

import (
	"regexp"
	"sort"
	"strings"

	"tra-glossary/internal/glossary"
	"tra-glossary/internal/textutil"
	"tra-glossary/internal/tokens"

	"github.com/rs/zerolog"
)

// stopwords excludes common English words that only look like proper nouns
// because they start a sentence.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "should": {}, "could": {},
	"may": {}, "might": {}, "must": {}, "can": {}, "shall": {}, "i": {},
	"you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {}, "me": {},
	"him": {}, "her": {}, "us": {}, "them": {}, "my": {}, "your": {},
	"his": {}, "its": {}, "our": {}, "their": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "what": {}, "which": {}, "who": {}, "when": {},
	"where": {}, "why": {}, "how": {}, "all": {}, "each": {}, "every": {},
	"both": {}, "few": {}, "more": {}, "most": {}, "some": {}, "such": {},
	"no": {}, "not": {}, "only": {}, "own": {}, "same": {}, "so": {},
	"than": {}, "too": {}, "very": {}, "just": {}, "now": {}, "if": {},
}

// properNounPattern matches runs of capitalized words, including hyphenated
// and possessive forms ("Friendly Arm Inn", "Baldur's Gate").
var properNounPattern = regexp.MustCompile(`\b[A-Z][a-z']+(?:[\s\-][A-Z][a-z']+)*`)

// maxExampleEntries caps how many entry ids are retained per term.
const maxExampleEntries = 10

// Inconsistency flags a term translated more than one way.
type Inconsistency struct {
	Term            string   `json:"term"`
	Count           int      `json:"count"`
	Translations    []string `json:"translations"`
	NumTranslations int      `json:"num_translations"`
}

// Extractor builds the term-frequency index.
type Extractor struct {
	log zerolog.Logger

	// MinProperNounFreq is the minimum occurrence count for a proper noun
	// to enter the index.
	MinProperNounFreq int
	// MinPhraseFreq is the minimum occurrence count for a repeated phrase.
	MinPhraseFreq int
}

// NewExtractor creates an extractor with the default frequency thresholds.
func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{
		log:               logger,
		MinProperNounFreq: 2,
		MinPhraseFreq:     5,
	}
}

type termData struct {
	count        int
	translations map[string]struct{}
	entries      []string
}

func (d *termData) record(japanese, entryID string) {
	d.count++
	d.translations[japanese] = struct{}{}
	if len(d.entries) < maxExampleEntries {
		d.entries = append(d.entries, entryID)
	}
}

// BuildIndex extracts proper nouns and frequent phrases from entries and
// merges them into one index. Phrase records win on key collision.
func (e *Extractor) BuildIndex(entries []glossary.Entry) map[string]glossary.TermInfo {
	e.log.Info().Int("entries", len(entries)).Msg("Building term frequency index")

	index := e.ExtractProperNouns(entries)
	for term, info := range e.ExtractFrequentPhrases(entries) {
		index[term] = info
	}

	e.log.Info().Int("terms", len(index)).Msg("Term frequency index complete")
	return index
}

// ExtractProperNouns collects capitalized words and word runs appearing at
// least MinProperNounFreq times, excluding sentence-initial stopwords.
func (e *Extractor) ExtractProperNouns(entries []glossary.Entry) map[string]glossary.TermInfo {
	data := make(map[string]*termData)

	for _, entry := range entries {
		japanese := entry.Japanese.Primary()
		if japanese == "" {
			continue
		}

		for noun := range capitalizedWords(entry.English) {
			if _, stop := stopwords[strings.ToLower(noun)]; stop {
				continue
			}
			d, ok := data[noun]
			if !ok {
				d = &termData{translations: make(map[string]struct{})}
				data[noun] = d
			}
			d.record(japanese, entry.ID)
		}
	}

	result := e.filter(data, e.MinProperNounFreq)
	e.log.Info().Int("count", len(result)).Msg("Extracted proper nouns")
	return result
}

// ExtractFrequentPhrases collects short cleaned English strings (at most 5
// words, 3 to 50 characters) occurring at least MinPhraseFreq times.
func (e *Extractor) ExtractFrequentPhrases(entries []glossary.Entry) map[string]glossary.TermInfo {
	data := make(map[string]*termData)

	for _, entry := range entries {
		text := textutil.CollapseSpaces(tokens.Strip(entry.English))
		if len(text) < 3 || len(text) > 50 || len(strings.Fields(text)) > 5 {
			continue
		}

		japanese := entry.Japanese.Primary()
		if japanese == "" {
			continue
		}

		d, ok := data[text]
		if !ok {
			d = &termData{translations: make(map[string]struct{})}
			data[text] = d
		}
		d.record(japanese, entry.ID)
	}

	result := e.filter(data, e.MinPhraseFreq)
	e.log.Info().Int("count", len(result)).Msg("Extracted frequent phrases")
	return result
}

// Inconsistencies lists index terms carrying more than one distinct
// translation, most frequent first.
func (e *Extractor) Inconsistencies(index map[string]glossary.TermInfo) []Inconsistency {
	var result []Inconsistency
	for term, info := range index {
		if len(info.Translations) > 1 {
			result = append(result, Inconsistency{
				Term:            term,
				Count:           info.Count,
				Translations:    info.Translations,
				NumTranslations: len(info.Translations),
			})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Term < result[j].Term
	})

	e.log.Info().Int("count", len(result)).Msg("Found terms with multiple translations")
	return result
}

func (e *Extractor) filter(data map[string]*termData, minFreq int) map[string]glossary.TermInfo {
	result := make(map[string]glossary.TermInfo)
	for term, d := range data {
		if d.count < minFreq {
			continue
		}
		translations := make([]string, 0, len(d.translations))
		for t := range d.translations {
			translations = append(translations, t)
		}
		sort.Strings(translations)

		result[term] = glossary.TermInfo{
			Count:        d.count,
			Translations: translations,
			Entries:      d.entries,
		}
	}
	return result
}

// capitalizedWords extracts candidate proper nouns from English text after
// stripping engine tokens. Trailing punctuation is dropped; single-letter
// matches are too short to be names.
func capitalizedWords(text string) map[string]struct{} {
	text = tokens.Strip(text)

	result := make(map[string]struct{})
	for _, match := range properNounPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:!?")
		if len(match) >= 2 {
			result[match] = struct{}{}
		}
	}
	return result
}
