package locales

import "strings"

// GlobeFlag is emitted for codes that map to no single territory.
const GlobeFlag = "\U0001F310"

// langToEmoji fixes codes whose flag cannot be derived from the territory
// letters, or that conventionally use another country's flag.
var langToEmoji = map[string]string{
	"ha": "\U0001F1F3\U0001F1EA", // Hausa / Niger
	"bs": "\U0001F1E7\U0001F1E6", // Bosnian / Bosnia & Herzegovina
	"jp": "\U0001F1EF\U0001F1F5", // Japanese
	"ua": "\U0001F1FA\U0001F1E6", // Ukrainian
	"he": "\U0001F1EE\U0001F1F7", // Hebrew
}

// Flag returns the flag glyph for a code: a regional indicator pair built
// from the territory letters, an override from langToEmoji, or the globe
// glyph for bare two-letter language codes.
func (c *Catalog) Flag(code string) string {
	if emoji, ok := langToEmoji[strings.ToLower(code)]; ok {
		return emoji
	}
	if len(code) == 2 {
		return GlobeFlag
	}

	loc, ok := c.Parse(code)
	if !ok {
		return ""
	}
	if loc.Territory == "" {
		return langToEmoji[loc.Language]
	}
	if emoji, ok := langToEmoji[strings.ToLower(loc.Territory)]; ok {
		return emoji
	}
	return regionalIndicators(loc.Territory)
}

// regionalIndicators synthesizes a flag emoji from two A-Z territory letters.
func regionalIndicators(territory string) string {
	if len(territory) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(territory) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + r - 'A')
	}
	return b.String()
}
