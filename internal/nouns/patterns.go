package nouns

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed patterns.toml
var defaultPatternsTOML []byte

// patternFile is the on-disk TOML shape of a pattern table.
type patternFile struct {
	Categories map[string]struct {
		Patterns []string `toml:"patterns"`
	} `toml:"categories"`
	KnownTerms map[string][]string `toml:"known_terms"`
}

// PatternSet holds the compiled categorization tables: per-category regex
// families plus sets of known game terms.
type PatternSet struct {
	categories map[string][]*regexp.Regexp
	knownTerms map[string][]string
}

// DefaultPatterns compiles the embedded pattern table.
func DefaultPatterns() (*PatternSet, error) {
	return compilePatterns(defaultPatternsTOML)
}

// LoadPatterns reads and compiles a pattern table from a TOML file.
func LoadPatterns(path string) (*PatternSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}
	return compilePatterns(data)
}

func compilePatterns(data []byte) (*PatternSet, error) {
	var pf patternFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("decode pattern table: %w", err)
	}

	ps := &PatternSet{
		categories: make(map[string][]*regexp.Regexp, len(pf.Categories)),
		knownTerms: pf.KnownTerms,
	}

	for category, entry := range pf.Categories {
		for _, pattern := range entry.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("compile pattern %q for category %s: %w", pattern, category, err)
			}
			ps.categories[category] = append(ps.categories[category], re)
		}
	}

	return ps, nil
}

// Categorize assigns categories to an English term. Known-term sets match
// exactly or by containment; among regex families the first matching pattern
// per category wins. A term matching nothing falls into "other".
func (ps *PatternSet) Categorize(english string) []string {
	seen := make(map[string]struct{})

	for category, terms := range ps.knownTerms {
		for _, term := range terms {
			if english == term || strings.Contains(english, term) {
				seen[category] = struct{}{}
				break
			}
		}
	}

	for category, patterns := range ps.categories {
		for _, re := range patterns {
			if re.MatchString(english) {
				seen[category] = struct{}{}
				break
			}
		}
	}

	if len(seen) == 0 {
		return []string{"other"}
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
