// Package tokens detects and strips the engine-level tokens embedded in
// dialog text: interpolation variables like <CHARNAME> or <SIRMAAM>, and
// sound-cue references like [ZOMBI01].
package tokens

import "regexp"

var (
	// variablePattern matches bracket-delimited uppercase placeholder tokens.
	variablePattern = regexp.MustCompile(`<[A-Z_]+>`)
	// soundPattern matches bracketed uppercase/digit sound-cue tokens.
	soundPattern = regexp.MustCompile(`\[[A-Z0-9]+\]`)
)

// HasVariable reports whether text contains an interpolation variable token.
func HasVariable(text string) bool {
	return variablePattern.MatchString(text)
}

// HasSoundRef reports whether text contains a sound-cue reference token.
func HasSoundRef(text string) bool {
	return soundPattern.MatchString(text)
}

// Strip removes all variable and sound-cue tokens from text.
func Strip(text string) string {
	text = variablePattern.ReplaceAllString(text, "")
	return soundPattern.ReplaceAllString(text, "")
}
