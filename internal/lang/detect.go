package lang

import "regexp"

// scriptPattern maps a Unicode block to the language code reported when the
// block appears in a text sample. Order matters: the first match wins, so a
// sample mixing Devanagari and Latin is reported as Hindi.
type scriptPattern struct {
	code string
	re   *regexp.Regexp
}

// Hindi and Marathi both use Devanagari and are indistinguishable here;
// Devanagari is reported as "hi".
var scriptPatterns = []scriptPattern{
	{"hi", regexp.MustCompile(`[\x{0900}-\x{097F}]`)}, // Devanagari
	{"bn", regexp.MustCompile(`[\x{0980}-\x{09FF}]`)}, // Bengali
	{"ta", regexp.MustCompile(`[\x{0B80}-\x{0BFF}]`)}, // Tamil
	{"ml", regexp.MustCompile(`[\x{0D00}-\x{0D7F}]`)}, // Malayalam
	{"te", regexp.MustCompile(`[\x{0C00}-\x{0C7F}]`)}, // Telugu
	{"kn", regexp.MustCompile(`[\x{0C80}-\x{0CFF}]`)}, // Kannada
	{"gu", regexp.MustCompile(`[\x{0A80}-\x{0AFF}]`)}, // Gujarati
	{"pa", regexp.MustCompile(`[\x{0A00}-\x{0A7F}]`)}, // Gurmukhi
}

// Detect guesses a language code from the script of a text sample,
// defaulting to English when no Indic block matches.
func Detect(text string) string {
	for _, p := range scriptPatterns {
		if p.re.MatchString(text) {
			return p.code
		}
	}
	return "en"
}
