package providers

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/quietsearch/quietsearch/internal/engines"
)

// ddgRegionsRe locates the embedded regions object in the utility bundle.
var ddgRegionsRe = regexp.MustCompile(`regions:(\{[^}]*\})`)

// DuckDuckGo embeds its region list in a utility script; entries are region
// codes like "de-de" keyed to display names. "wt-wt" is the no-region entry.
func DuckDuckGo() *engines.Module {
	return &engines.Module{
		Name: "duckduckgo",
		Defaults: engines.Overrides{
			BaseURL: strPtr("https://html.duckduckgo.com/"),
			About: map[string]string{
				"website": "https://duckduckgo.com/",
				"results": "HTML",
			},
		},
		Request: func(query string, p *engines.RequestParams) error {
			p.Method = http.MethodGet
			p.URL = "https://html.duckduckgo.com/html?q=" + url.QueryEscape(query)
			return nil
		},
		SupportedLanguagesURL: "https://duckduckgo.com/util/u588.js",
		FetchLanguages:        fetchDuckDuckGoLanguages,
	}
}

func fetchDuckDuckGoLanguages(body []byte) (*engines.LanguageSet, error) {
	match := ddgRegionsRe.FindSubmatch(body)
	if match == nil {
		return nil, fmt.Errorf("no regions object in response")
	}
	regions := gjson.ParseBytes(match[1])
	if !regions.IsObject() {
		return nil, fmt.Errorf("malformed regions object")
	}

	set := &engines.LanguageSet{}
	regions.ForEach(func(key, value gjson.Result) bool {
		code := key.String()
		if code == "wt-wt" { // "no region" pseudo entry
			return true
		}
		set.Add(code, engines.LanguageMeta{Name: value.String()})
		return true
	})

	if set.Len() == 0 {
		return nil, fmt.Errorf("no regions in response")
	}
	return set, nil
}
