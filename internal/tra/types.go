// Package tra parses Infinity Engine TRA translation files: a line-oriented
// format of identifier-keyed, tilde-delimited text entries.
package tra

import "fmt"

// Entry is a single TRA file entry.
type Entry struct {
	// ID is the numeric identifier, unique within one file.
	ID int
	// Text is the tilde-delimited payload, verbatim.
	Text string
}

// String reproduces the entry in its on-disk textual form.
func (e Entry) String() string {
	return fmt.Sprintf("@%d = ~%s~", e.ID, e.Text)
}

// Variant holds a Japanese translation with optional gender variants.
// In a well-formed record either Default or the Male/Female pair is
// populated, never both.
type Variant struct {
	Default *string `json:"default"`
	Male    *string `json:"male"`
	Female  *string `json:"female"`
}

// HasAny reports whether at least one variant field holds non-empty text.
func (v Variant) HasAny() bool {
	for _, p := range []*string{v.Default, v.Male, v.Female} {
		if p != nil && *p != "" {
			return true
		}
	}
	return false
}

// Primary returns the first populated variant in default, male, female
// order, or "" if none is populated.
func (v Variant) Primary() string {
	for _, p := range []*string{v.Default, v.Male, v.Female} {
		if p != nil && *p != "" {
			return *p
		}
	}
	return ""
}
