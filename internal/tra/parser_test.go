package tra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempTRA(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dialog.tra")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeTempTRA(t, "@1 = ~Hello~\n"+
		"\n"+
		"@2  =  ~Second entry~  \n"+
		"// a stray comment line\n"+
		"@3 = ~<NO TEXT>~\n")

	p := NewParser(zerolog.Nop())
	entries, err := p.ParseFile(path)
	require.NoError(t, err)

	assert.Len(t, entries, 3)
	assert.Equal(t, "Hello", entries[1].Text)
	assert.Equal(t, "Second entry", entries[2].Text)
	assert.Equal(t, "<NO TEXT>", entries[3].Text)

	parsed, errors := p.Stats()
	assert.Equal(t, 3, parsed)
	assert.Equal(t, 0, errors)
}

func TestParseFile_MalformedLine(t *testing.T) {
	path := writeTempTRA(t, "@3 garbage\n@4 = ~Still fine~\n")

	p := NewParser(zerolog.Nop())
	entries, err := p.ParseFile(path)
	require.NoError(t, err)

	// The malformed line is counted and skipped; later lines still parse.
	assert.Len(t, entries, 1)
	assert.Equal(t, "Still fine", entries[4].Text)

	parsed, errors := p.Stats()
	assert.Equal(t, 1, parsed)
	assert.Equal(t, 1, errors)
}

func TestParseFile_DuplicateIDLastWins(t *testing.T) {
	path := writeTempTRA(t, "@7 = ~first~\n@7 = ~second~\n")

	p := NewParser(zerolog.Nop())
	entries, err := p.ParseFile(path)
	require.NoError(t, err)

	assert.Len(t, entries, 1)
	assert.Equal(t, "second", entries[7].Text)
}

func TestParseFile_Missing(t *testing.T) {
	p := NewParser(zerolog.Nop())
	_, err := p.ParseFile(filepath.Join(t.TempDir(), "nope.tra"))
	assert.Error(t, err)
}

func TestEntryRoundTrip(t *testing.T) {
	lines := []string{
		"@1 = ~Hello~",
		"@42 = ~Go for the eyes, Boo!~",
		"@100 = ~<NO TEXT>~",
	}
	path := writeTempTRA(t, lines[0]+"\n"+lines[1]+"\n"+lines[2]+"\n")

	p := NewParser(zerolog.Nop())
	entries, err := p.ParseFile(path)
	require.NoError(t, err)

	// Re-serializing each entry reproduces its textual form byte for byte.
	for _, want := range lines {
		matched := false
		for _, e := range entries {
			if e.String() == want {
				matched = true
				break
			}
		}
		assert.True(t, matched, "no entry round-trips to %q", want)
	}
}

func TestParseJapaneseFile(t *testing.T) {
	path := writeTempTRA(t, "@1 = ~こんにちは~\n"+
		"@2 = ~戦士だ~ ~戦士よ~\n"+
		"@3 = ~~\n")

	p := NewParser(zerolog.Nop())
	variants, err := p.ParseJapaneseFile(path)
	require.NoError(t, err)
	require.Len(t, variants, 3)

	require.NotNil(t, variants[1].Default)
	assert.Equal(t, "こんにちは", *variants[1].Default)
	assert.Nil(t, variants[1].Male)

	// Two-block gender form bypasses the variant resolver.
	require.NotNil(t, variants[2].Male)
	require.NotNil(t, variants[2].Female)
	assert.Equal(t, "戦士だ", *variants[2].Male)
	assert.Equal(t, "戦士よ", *variants[2].Female)
	assert.Nil(t, variants[2].Default)

	assert.False(t, variants[3].HasAny())
}

func TestParseVariants(t *testing.T) {
	p := NewParser(zerolog.Nop())

	tests := []struct {
		name    string
		text    string
		def     string
		male    string
		female  string
		hasAny  bool
	}{
		{name: "empty", text: "", hasAny: false},
		{name: "whitespace only", text: "   ", hasAny: false},
		{name: "single", text: "こんにちは", def: "こんにちは", hasAny: true},
		{name: "two parts", text: "男~女", male: "男", female: "女", hasAny: true},
		{name: "padded parts", text: " 男 ~ 女 ", male: "男", female: "女", hasAny: true},
		{name: "more than two parts", text: "一~二~三", male: "一", female: "二", hasAny: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := p.ParseVariants(tt.text)
			assert.Equal(t, tt.hasAny, v.HasAny())
			if tt.def != "" {
				require.NotNil(t, v.Default)
				assert.Equal(t, tt.def, *v.Default)
			} else {
				assert.Nil(t, v.Default)
			}
			if tt.male != "" {
				require.NotNil(t, v.Male)
				assert.Equal(t, tt.male, *v.Male)
			} else {
				assert.Nil(t, v.Male)
			}
			if tt.female != "" {
				require.NotNil(t, v.Female)
				assert.Equal(t, tt.female, *v.Female)
			} else {
				assert.Nil(t, v.Female)
			}
		})
	}
}

func TestVariantPrimary(t *testing.T) {
	def := "デフォルト"
	male := "男性形"

	assert.Equal(t, "デフォルト", Variant{Default: &def}.Primary())
	assert.Equal(t, "男性形", Variant{Male: &male}.Primary())
	assert.Equal(t, "", Variant{}.Primary())
}
