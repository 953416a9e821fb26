package glossary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteJSON serializes the glossary to path with the given indentation
// width. Multibyte text is written verbatim, not escaped.
func WriteJSON(g Glossary, path string, indent int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create glossary file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", strings.Repeat(" ", indent))
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(g); err != nil {
		return fmt.Errorf("encode glossary: %w", err)
	}

	return nil
}

// ReadJSON loads a previously serialized glossary document.
func ReadJSON(path string) (Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Glossary{}, fmt.Errorf("read glossary file: %w", err)
	}

	var g Glossary
	if err := json.Unmarshal(data, &g); err != nil {
		return Glossary{}, fmt.Errorf("decode glossary: %w", err)
	}

	return g, nil
}
