package headers

import "regexp"

// spaceClass is every rune that counts as whitespace in a description:
// ASCII \s plus \v, the information separators U+001C..U+001F, NEL and
// the Unicode separator categories (no-break space, em space, U+2028...).
const spaceClass = `\s\x{0b}\x{1c}-\x{1f}\x{85}\p{Z}`

var (
	disallowedRe = regexp.MustCompile(`[^\p{L}\p{N}_` + spaceClass + `-]`)
	whitespaceRe = regexp.MustCompile(`[` + spaceClass + `]+`)
)

// Sanitize drops every character that is not a letter, digit, underscore,
// hyphen or whitespace, then joins whitespace runs with a single underscore.
func Sanitize(description string) string {
	cleaned := disallowedRe.ReplaceAllString(description, "")
	return whitespaceRe.ReplaceAllString(cleaned, "_")
}
