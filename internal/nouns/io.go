package nouns

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadExtraction loads a noun glossary document from a JSON file.
func ReadExtraction(path string) (Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Extraction{}, fmt.Errorf("read noun glossary: %w", err)
	}

	var ex Extraction
	if err := json.Unmarshal(data, &ex); err != nil {
		return Extraction{}, fmt.Errorf("decode noun glossary: %w", err)
	}

	return ex, nil
}

// WriteExtraction serializes a noun glossary document to a JSON file.
func WriteExtraction(ex Extraction, path string, indent int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create noun glossary file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", strings.Repeat(" ", indent))
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(ex); err != nil {
		return fmt.Errorf("encode noun glossary: %w", err)
	}

	return nil
}
