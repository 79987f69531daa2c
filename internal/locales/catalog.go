// Package locales wraps the CLDR data shipped with golang.org/x/text into
// the locale catalog the engine layer validates codes against: parsing and
// canonicalization, best-effort matching for alias detection, display names,
// territory names, likely regions and flag glyphs.
package locales

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Locale is a parsed language/region identifier. Territory is set only when
// the code spells it out; likely-region inference is a separate, explicit
// operation (LikelyRegion).
type Locale struct {
	Tag       language.Tag
	Language  string
	Territory string
}

// Code returns the canonical code: "de" or "de-AT".
func (l Locale) Code() string {
	if l.Territory == "" {
		return l.Language
	}
	return l.Language + "-" + l.Territory
}

// Catalog resolves codes against the locale database.
type Catalog struct {
	selfNames    display.Namer
	englishNames display.Namer
	regionNames  display.Namer
	title        cases.Caser
}

// New creates a catalog with English as the reference naming language.
func New() *Catalog {
	return &Catalog{
		selfNames:    display.Self,
		englishNames: display.Languages(language.English),
		regionNames:  display.Regions(language.English),
		title:        cases.Title(language.Und),
	}
}

// Parse resolves a code to a known locale. Both "-" and "_" separators are
// accepted; deprecated codes are canonicalized (iw -> he). Unknown or
// malformed codes fail.
func (c *Catalog) Parse(code string) (Locale, bool) {
	code = strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if code == "" {
		return Locale{}, false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return Locale{}, false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return Locale{}, false
	}
	loc := Locale{Tag: tag, Language: base.String()}

	// Raw keeps only what the code spelled out, no likely-subtag inference.
	if _, _, region := tag.Raw(); region.IsCountry() {
		loc.Territory = region.String()
	}
	return loc, true
}

// Match is the best-effort canonical match used for alias detection: it
// returns the canonical code for an engine-native one, or ok=false when the
// code cannot be resolved. No fallback value is invented on failure.
func (c *Catalog) Match(code string) (string, bool) {
	loc, ok := c.Parse(code)
	if !ok {
		return "", false
	}
	return loc.Code(), true
}

// LanguageName returns the title-cased name of the code's language in that
// language itself, or "" when the catalog has none.
func (c *Catalog) LanguageName(code string) string {
	loc, ok := c.Parse(code)
	if !ok {
		return ""
	}
	name := c.selfNames.Name(language.Make(loc.Language))
	if name == "" {
		return ""
	}
	return c.title.String(name)
}

// EnglishName returns the English name of the code's language, without any
// parenthetical qualifier, or "" when the catalog has none.
func (c *Catalog) EnglishName(code string) string {
	loc, ok := c.Parse(code)
	if !ok {
		return ""
	}
	name := c.englishNames.Name(language.Make(loc.Language))
	return strings.SplitN(name, " (", 2)[0]
}

// TerritoryName returns the English name of the code's territory, or "" for
// codes without one or territories the catalog cannot name.
func (c *Catalog) TerritoryName(code string) string {
	loc, ok := c.Parse(code)
	if !ok || loc.Territory == "" {
		return ""
	}
	region, err := language.ParseRegion(loc.Territory)
	if err != nil {
		return ""
	}
	return c.regionNames.Name(region)
}

// LikelyRegion derives the most likely territory for a bare language code
// ("de" -> "DE"), or "" when none can be derived.
func (c *Catalog) LikelyRegion(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	region, conf := tag.Region()
	if conf == language.No || !region.IsCountry() {
		return ""
	}
	return region.String()
}
