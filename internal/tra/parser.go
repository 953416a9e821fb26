package tra

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"tra-glossary/internal/textutil"

	"github.com/rs/zerolog"
)

// entryPattern matches the standard one-block form `@<id> = ~<text>~`.
var entryPattern = regexp.MustCompile(`^@(\d+)\s*=\s*~(.*)~\s*$`)

// genderVariantPattern matches the two-block form `@<id> = ~<male>~ ~<female>~`
// used by Japanese files for gender-variant translations.
var genderVariantPattern = regexp.MustCompile(`^@(\d+)\s*=\s*~([^~]*)~\s*~([^~]*)~\s*$`)

// Parser reads TRA files line by line. The grammar is strictly line-local:
// no look-ahead or look-behind across lines.
type Parser struct {
	log zerolog.Logger

	entriesParsed int
	errors        int
}

// NewParser creates a parser that reports progress and anomalies on logger.
func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{log: logger}
}

// Stats returns the entry and error counters of the most recent parse.
func (p *Parser) Stats() (entriesParsed, errors int) {
	return p.entriesParsed, p.errors
}

// ParseFile parses a TRA file and returns its entries keyed by identifier.
// A duplicated identifier overwrites the earlier occurrence.
func (p *Parser) ParseFile(path string) (map[int]Entry, error) {
	p.entriesParsed = 0
	p.errors = 0

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tra file: %w", err)
	}
	defer file.Close()

	entries := make(map[int]Entry)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := entryPattern.FindStringSubmatch(line); m != nil {
			id, _ := strconv.Atoi(m[1])
			entries[id] = Entry{ID: id, Text: m[2]}
			p.entriesParsed++
			continue
		}

		p.reportMalformed(line, lineNum)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan tra file: %w", err)
	}

	p.log.Info().
		Str("file", path).
		Int("entries", p.entriesParsed).
		Int("errors", p.errors).
		Msg("Parsed TRA file")

	return entries, nil
}

// ParseJapaneseFile parses a Japanese TRA file, resolving gender variants.
// The explicit two-block form is recognized directly; one-block entries are
// run through ParseVariants to detect embedded tilde-separated variants.
func (p *Parser) ParseJapaneseFile(path string) (map[int]Variant, error) {
	p.entriesParsed = 0
	p.errors = 0

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open japanese tra file: %w", err)
	}
	defer file.Close()

	variants := make(map[int]Variant)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := genderVariantPattern.FindStringSubmatch(line); m != nil {
			id, _ := strconv.Atoi(m[1])
			variants[id] = Variant{
				Male:   nonEmpty(strings.TrimSpace(m[2])),
				Female: nonEmpty(strings.TrimSpace(m[3])),
			}
			p.entriesParsed++
			continue
		}

		if m := entryPattern.FindStringSubmatch(line); m != nil {
			id, _ := strconv.Atoi(m[1])
			variants[id] = p.ParseVariants(m[2])
			p.entriesParsed++
			continue
		}

		p.reportMalformed(line, lineNum)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan japanese tra file: %w", err)
	}

	p.log.Info().
		Str("file", path).
		Int("entries", p.entriesParsed).
		Int("errors", p.errors).
		Msg("Parsed Japanese TRA file")

	return variants, nil
}

// ParseVariants splits raw one-block text into gender variants. Zero
// non-empty tilde-separated parts yield an empty Variant, one part the
// default form, two parts the male/female pair. More than two parts is an
// anomaly: the first two are taken as male/female and the rest discarded.
func (p *Parser) ParseVariants(text string) Variant {
	var parts []string
	for _, part := range strings.Split(text, "~") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	switch len(parts) {
	case 0:
		return Variant{}
	case 1:
		return Variant{Default: &parts[0]}
	case 2:
		return Variant{Male: &parts[0], Female: &parts[1]}
	default:
		p.log.Warn().
			Int("parts", len(parts)).
			Str("text", textutil.Truncate(text, 100)).
			Msg("Text has more than two variant parts, using first two")
		return Variant{Male: &parts[0], Female: &parts[1]}
	}
}

// reportMalformed counts a line that carries the entry sigil but fails the
// grammar. Lines without the sigil are silently ignored.
func (p *Parser) reportMalformed(line string, lineNum int) {
	if !strings.HasPrefix(line, "@") {
		return
	}
	p.errors++
	p.log.Warn().
		Int("line", lineNum).
		Str("content", textutil.Truncate(line, 100)).
		Msg("Malformed entry")
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
