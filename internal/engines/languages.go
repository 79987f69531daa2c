package engines

import "strings"

// setLanguageAttributes populates language support, capability data and
// alias mappings for one engine from the global language-data table.
//
// The table is keyed by engine name first, falling back to the module
// identifier: engines configured to share one module share its language data.
func (l *Loader) setLanguageAttributes(e *Engine) error {
	capData, ok := l.data[e.Name]
	if !ok {
		capData, ok = l.data[e.Engine]
	}
	if !ok || capData == nil {
		return nil
	}

	if capData.Properties != nil {
		e.SupportedProperties = &Properties{
			Languages: copyStringMap(capData.Properties.Languages),
			Regions:   copyStringMap(capData.Properties.Regions),
		}
		e.LanguageSupport = !e.SupportedProperties.Empty()
		return nil
	}

	// legacy flat shape
	set := capData.Languages.clone()
	if set == nil {
		return nil
	}
	e.LanguageSupport = set.Len() > 0

	if e.Language != "" {
		// a fixed `language:` setting narrows the engine to one entry
		if err := set.Narrow(e.Language); err != nil {
			return rejectErr(e.Name, "language '%s' not in supported languages", e.Language)
		}
	}
	e.SupportedLanguages = set

	if e.LanguageAliases == nil {
		e.LanguageAliases = map[string]string{}
	}
	// find aliases for non-standard codes: canonical -> engine-native
	for _, engineLang := range set.Codes {
		isoLang, ok := l.catalog.Match(engineLang)
		if !ok {
			continue // unresolved codes are kept as-is, no alias recorded
		}
		if isoLang != engineLang && !strings.HasPrefix(engineLang, isoLang) && !set.Has(isoLang) {
			e.LanguageAliases[isoLang] = engineLang
		}
	}
	return nil
}

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
