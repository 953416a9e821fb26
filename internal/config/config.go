package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// KnownGames lists the game identifiers the source tree may contain.
var KnownGames = []string{"bg1ee", "bg2ee"}

type Config struct {
	SourceDir      string
	OutputPath     string
	Games          []string
	EnglishLocale  string
	JapaneseLocale string
	JSONIndent     int
	StorePath      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		SourceDir:      getEnv("SOURCE_TRA_DIR", "source_tra"),
		OutputPath:     getEnv("GLOSSARY_OUTPUT", "glossary.json"),
		Games:          getEnvList("GAMES", KnownGames),
		EnglishLocale:  getEnv("EN_LOCALE", "en_US"),
		JapaneseLocale: getEnv("JA_LOCALE", "ja_JP"),
		JSONIndent:     getEnvInt("JSON_INDENT", 2),
		StorePath:      getEnv("GLOSSARY_STORE", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
