package aggregate

import (
	"sort"
	"strings"

	"github.com/quietsearch/quietsearch/internal/engines"
	"github.com/quietsearch/quietsearch/internal/locales"
)

// Set is a coverage set: the engine names supporting a code. Sets rather
// than counts keep coverage deduplicated and inspectable.
type Set map[string]struct{}

// Add inserts a name.
func (s Set) Add(name string) { s[name] = struct{}{} }

// Has reports membership.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the set size.
func (s Set) Len() int { return len(s) }

// Country is the per-territory part of a language entry.
type Country struct {
	CountryName string
	Counter     Set
}

// Language is one merged capability-table entry, keyed by short code.
type Language struct {
	Name        string
	EnglishName string
	Counter     Set
	Countries   map[string]*Country
}

// Table is the merged cross-engine language table: short code -> entry.
type Table map[string]*Language

// Join merges every engine's capability data into one language table. Codes
// are alias-reversed (the canonical spelling wins over the engine's own),
// canonicalized to language-TERRITORY form where the locale resolves, and
// counted per language and per country variant.
//
// When the locale catalog cannot name a language, names come from the
// fallback engine's own reported names, if it reports that code.
func Join(data engines.CapabilityData, reg *engines.Registry, cat *locales.Catalog, fallbackEngine string) Table {
	table := Table{}

	var fallback *engines.LanguageSet
	if capability, ok := data[fallbackEngine]; ok && capability != nil {
		fallback = capability.Languages
	}

	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, engineName := range names {
		var aliases map[string]string
		if e, ok := reg.Engine(engineName); ok {
			aliases = e.LanguageAliases
		}

		for _, code := range data[engineName].MergeCodes() {
			code = reverseAlias(aliases, code)

			loc, locOK := cat.Parse(code)
			if locOK && loc.Territory != "" {
				code = loc.Code()
			}
			short := strings.SplitN(code, "-", 2)[0]

			entry, ok := table[short]
			if !ok {
				entry = &Language{Counter: Set{}, Countries: map[string]*Country{}}
				if locOK {
					entry.Name = cat.LanguageName(code)
					entry.EnglishName = cat.EnglishName(code)
				} else if fallback != nil && fallback.Has(short) {
					meta := fallback.Meta[short]
					entry.Name = meta.Name
					entry.EnglishName = meta.EnglishName
				}
				// names may stay empty here; the writer reports and skips
				// such codes
				table[short] = entry
			}

			if code != short {
				if _, ok := entry.Countries[code]; !ok {
					countryName := ""
					if locOK {
						// a failed territory lookup leaves the name blank
						countryName = cat.TerritoryName(code)
					}
					entry.Countries[code] = &Country{CountryName: countryName, Counter: Set{}}
				}
				entry.Countries[code].Counter.Add(engineName)
			}
			entry.Counter.Add(engineName)
		}
	}

	return table
}

// reverseAlias substitutes the canonical code when the engine-native code is
// a recorded alias value.
func reverseAlias(aliases map[string]string, code string) string {
	for canonical, native := range aliases {
		if native == code {
			return canonical
		}
	}
	return code
}
