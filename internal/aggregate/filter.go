package aggregate

import (
	"github.com/quietsearch/quietsearch/internal/engines"
	"github.com/quietsearch/quietsearch/internal/locales"
)

// Thresholds are the coverage tunables of the catalog filter (configured in
// the locales section, not hard-coded).
type Thresholds struct {
	MinEnginesPerLang    int
	MinEnginesPerCountry int
}

// Entry is one surviving catalog code with the names resolved at merge time.
type Entry struct {
	Name        string
	EnglishName string
	CountryName string
}

// mainEngines returns the engines whose combined coverage forces a language
// into the catalog regardless of the raw count: categorized "general", with
// non-empty legacy language support, and not disabled.
func mainEngines(reg *engines.Registry) []string {
	var main []string
	for _, name := range reg.Names() {
		e, _ := reg.Engine(name)
		if e.HasCategory("general") && e.SupportedLanguages.Len() > 0 && !e.Disabled {
			main = append(main, name)
		}
	}
	return main
}

// Filter selects which languages and country variants survive.
//
// A language survives when its coverage reaches MinEnginesPerLang, or when
// every main engine supports it (the default engine set always keeps full
// language coverage). For each surviving language: country variants reaching
// MinEnginesPerCountry survive; more than one variant also keeps the bare
// language; exactly one keeps only itself; none falls back to the likely
// region, or to the bare language. Every surviving language therefore yields
// at least one entry.
func Filter(all Table, reg *engines.Registry, th Thresholds, cat *locales.Catalog) map[string]Entry {
	main := mainEngines(reg)

	supportedByAllMain := func(lang *Language) bool {
		for _, name := range main {
			if !lang.Counter.Has(name) {
				return false
			}
		}
		return true
	}

	out := map[string]Entry{}
	for code, lang := range all {
		if lang.Counter.Len() < th.MinEnginesPerLang && !supportedByAllMain(lang) {
			continue
		}

		base := Entry{Name: lang.Name, EnglishName: lang.EnglishName}

		kept := 0
		for countryCode, country := range lang.Countries {
			if country.Counter.Len() >= th.MinEnginesPerCountry {
				out[countryCode] = Entry{Name: lang.Name, EnglishName: lang.EnglishName, CountryName: country.CountryName}
				kept++
			}
		}

		switch {
		case kept > 1:
			// ambiguous region, let the consumer choose
			out[code] = base
		case kept == 1:
			// implicitly precise, the single variant stands alone
		default:
			if region := cat.LikelyRegion(code); region != "" {
				out[code+"-"+region] = base
			} else {
				out[code] = base
			}
		}
	}

	return out
}
