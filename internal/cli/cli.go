package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tra-glossary/internal/config"
	"tra-glossary/internal/glossary"
	"tra-glossary/internal/nouns"
	"tra-glossary/internal/source"
	"tra-glossary/internal/store"
	"tra-glossary/internal/terms"
	"tra-glossary/internal/tra"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "tra-glossary",
		Short: "Japanese glossary generator for BG:EE TRA translation files",
		Long:  "Converts Infinity Engine TRA translation files into a structured English-Japanese glossary, with downstream noun extraction and deduplication passes.",
	}

	rootCmd.AddCommand(glossaryCmd())
	rootCmd.AddCommand(nounsCmd())
	rootCmd.AddCommand(dedupeCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func glossaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Parse TRA files and generate the glossary JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			games, _ := cmd.Flags().GetStringSlice("games")
			sourceDir, _ := cmd.Flags().GetString("source-dir")
			output, _ := cmd.Flags().GetString("output")
			includeStats, _ := cmd.Flags().GetBool("include-stats")
			extractTerms, _ := cmd.Flags().GetBool("extract-terms")
			indent, _ := cmd.Flags().GetInt("indent")
			storePath, _ := cmd.Flags().GetString("store")
			return runGlossary(cmd, games, sourceDir, output, storePath, includeStats, extractTerms, indent)
		},
	}

	cmd.Flags().StringSlice("games", []string{"all"}, "Games to process (bg1ee, bg2ee or all)")
	cmd.Flags().String("source-dir", "", "Source TRA directory (default from SOURCE_TRA_DIR)")
	cmd.Flags().String("output", "", "Output JSON file path (default from GLOSSARY_OUTPUT)")
	cmd.Flags().Bool("include-stats", false, "Include per-game statistics in output metadata")
	cmd.Flags().Bool("extract-terms", false, "Extract the term frequency index")
	cmd.Flags().Int("indent", 0, "JSON indentation width (default from JSON_INDENT)")
	cmd.Flags().String("store", "", "Optional SQLite store path to persist entries into")

	return cmd
}

func nounsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nouns <glossary.json> <output.json>",
		Short: "Extract categorized noun terms from a glossary JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patternsPath, _ := cmd.Flags().GetString("patterns")
			indent, _ := cmd.Flags().GetInt("indent")
			return runNouns(args[0], args[1], patternsPath, indent)
		},
	}

	cmd.Flags().String("patterns", "", "TOML pattern table overriding the built-in categorization tables")
	cmd.Flags().Int("indent", 2, "JSON indentation width")

	return cmd
}

func dedupeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedupe <nouns.json> [output.json]",
		Short: "Merge noun terms sharing identical English-Japanese pairs",
		Long:  "Merges records with the same English text and Japanese translation into a single entry, aggregating ids, games and categories. Overwrites the input when no output path is given.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := args[0]
			if len(args) > 1 {
				output = args[1]
			}
			indent, _ := cmd.Flags().GetInt("indent")
			return runDedupe(args[0], output, indent)
		},
	}

	cmd.Flags().Int("indent", 2, "JSON indentation width")

	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <output>",
		Short: "Export the glossary store to TSV or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storePath, _ := cmd.Flags().GetString("store")
			format, _ := cmd.Flags().GetString("format")
			return runExport(storePath, format, args[0])
		},
	}

	cmd.Flags().String("store", "", "SQLite store path (default from GLOSSARY_STORE)")
	cmd.Flags().String("format", "tsv", "Export format: tsv or json")

	return cmd
}

// runGlossary handles the `glossary` command.
func runGlossary(cmd *cobra.Command, games []string, sourceDir, output, storePath string, includeStats, extractTerms bool, indent int) error {
	cfg := config.Load()
	logger := log.Logger

	if sourceDir == "" {
		sourceDir = cfg.SourceDir
	}
	if output == "" {
		output = cfg.OutputPath
	}
	if !cmd.Flags().Changed("indent") {
		indent = cfg.JSONIndent
	}
	if storePath == "" {
		storePath = cfg.StorePath
	}
	games = expandGames(games, cfg)

	layout, err := source.NewLayout(sourceDir, cfg.EnglishLocale, cfg.JapaneseLocale)
	if err != nil {
		return fmt.Errorf("resolve source layout: %w", err)
	}

	logger.Info().
		Str("source", layout.Root()).
		Str("output", output).
		Strs("games", games).
		Msg("Starting glossary generation")

	parser := tra.NewParser(logger)
	builder := glossary.NewBuilder(logger)

	var allEntries []glossary.Entry
	totalSkipped := 0

	for _, game := range games {
		entries, skipped, err := buildGame(parser, builder, layout, game)
		if err != nil {
			// A failed game contributes nothing; the run continues.
			logger.Error().Err(err).Str("game", game).Msg("Game processing failed")
			continue
		}
		allEntries = append(allEntries, entries...)
		totalSkipped += skipped
		logger.Info().Str("game", game).Int("entries", len(entries)).Msg("Game processed")
	}

	var termFrequency map[string]glossary.TermInfo
	if extractTerms {
		extractor := terms.NewExtractor(logger)
		termFrequency = extractor.BuildIndex(allEntries)
		extractor.Inconsistencies(termFrequency)
	}

	g := builder.BuildGlossary(allEntries, games, termFrequency)
	if !includeStats {
		g.Metadata.Statistics = nil
	}

	if err := glossary.WriteJSON(g, output, indent); err != nil {
		return fmt.Errorf("write glossary: %w", err)
	}

	if storePath != "" {
		s, err := store.Open(storePath, logger)
		if err != nil {
			return fmt.Errorf("open glossary store: %w", err)
		}
		defer s.Close()

		if _, err := s.UpsertEntries(context.Background(), allEntries); err != nil {
			return fmt.Errorf("store glossary entries: %w", err)
		}
	}

	logger.Info().
		Int("entries", len(allEntries)).
		Int("skipped", totalSkipped).
		Str("output", output).
		Msg("Glossary generation complete")

	return nil
}

// buildGame parses both locale files of one game and joins them into
// glossary entries.
func buildGame(parser *tra.Parser, builder *glossary.Builder, layout *source.Layout, game string) ([]glossary.Entry, int, error) {
	enPath := layout.EnglishPath(game)
	jaPath := layout.JapanesePath(game)

	enEntries, err := parser.ParseFile(enPath)
	if err != nil {
		return nil, 0, fmt.Errorf("parse English TRA: %w", err)
	}

	jaVariants, err := parser.ParseJapaneseFile(jaPath)
	if err != nil {
		return nil, 0, fmt.Errorf("parse Japanese TRA: %w", err)
	}

	entries := builder.BuildFromRecords(enEntries, jaVariants, game)
	return entries, builder.Skipped(), nil
}

// runNouns handles the `nouns` command.
func runNouns(inputPath, outputPath, patternsPath string, indent int) error {
	logger := log.Logger

	patterns, err := loadPatterns(patternsPath)
	if err != nil {
		return err
	}

	g, err := glossary.ReadJSON(inputPath)
	if err != nil {
		return fmt.Errorf("load glossary: %w", err)
	}

	extractor := nouns.NewExtractor(logger, patterns)
	extraction := extractor.Extract(g, filepath.Base(inputPath))

	if err := nouns.WriteExtraction(extraction, outputPath, indent); err != nil {
		return fmt.Errorf("write noun glossary: %w", err)
	}

	logger.Info().
		Int("terms", extraction.TotalTerms()).
		Int("categories", len(extraction.Categories)).
		Str("output", outputPath).
		Msg("Noun extraction complete")

	return nil
}

// runDedupe handles the `dedupe` command.
func runDedupe(inputPath, outputPath string, indent int) error {
	logger := log.Logger

	extraction, err := nouns.ReadExtraction(inputPath)
	if err != nil {
		return fmt.Errorf("load noun glossary: %w", err)
	}

	deduplicated := nouns.NewDeduplicator(logger).Deduplicate(extraction)

	if err := nouns.WriteExtraction(deduplicated, outputPath, indent); err != nil {
		return fmt.Errorf("write deduplicated glossary: %w", err)
	}

	logger.Info().
		Int("terms", deduplicated.TotalTerms()).
		Str("output", outputPath).
		Msg("Deduplication complete")

	return nil
}

// runExport handles the `export` command.
func runExport(storePath, format, outputPath string) error {
	cfg := config.Load()
	logger := log.Logger

	if storePath == "" {
		storePath = cfg.StorePath
	}
	if storePath == "" {
		return fmt.Errorf("no store path given (set --store or GLOSSARY_STORE)")
	}

	s, err := store.Open(storePath, logger)
	if err != nil {
		return fmt.Errorf("open glossary store: %w", err)
	}
	defer s.Close()

	ctx := context.Background()
	switch format {
	case "json":
		if err := s.ExportJSON(ctx, outputPath); err != nil {
			return fmt.Errorf("export JSON: %w", err)
		}
	case "tsv":
		if err := s.ExportTSV(ctx, outputPath); err != nil {
			return fmt.Errorf("export TSV: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	return nil
}

// expandGames resolves the "all" shorthand and drops unknown identifiers.
func expandGames(games []string, cfg *config.Config) []string {
	for _, g := range games {
		if g == "all" {
			return cfg.Games
		}
	}

	known := make(map[string]struct{}, len(config.KnownGames))
	for _, g := range config.KnownGames {
		known[g] = struct{}{}
	}

	var result []string
	for _, g := range games {
		if _, ok := known[g]; ok {
			result = append(result, g)
		} else {
			log.Warn().Str("game", g).Msg("Unknown game identifier, skipping")
		}
	}
	return result
}

// loadPatterns returns the built-in pattern tables unless a TOML override
// path is given.
func loadPatterns(path string) (*nouns.PatternSet, error) {
	if path == "" {
		patterns, err := nouns.DefaultPatterns()
		if err != nil {
			return nil, fmt.Errorf("load built-in patterns: %w", err)
		}
		return patterns, nil
	}

	patterns, err := nouns.LoadPatterns(path)
	if err != nil {
		return nil, fmt.Errorf("load pattern file: %w", err)
	}
	return patterns, nil
}
