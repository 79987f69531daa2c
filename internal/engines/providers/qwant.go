package providers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/quietsearch/quietsearch/internal/engines"
)

// Qwant embeds its locale list in the bootstrap JSON of its landing page
// (INITIAL_PROPS), keyed like "en_gb".
func Qwant() *engines.Module {
	return &engines.Module{
		Name: "qwant",
		Defaults: engines.Overrides{
			BaseURL: strPtr("https://www.qwant.com/"),
			About: map[string]string{
				"website": "https://www.qwant.com/",
				"results": "JSON",
			},
		},
		Request: func(query string, p *engines.RequestParams) error {
			p.Method = http.MethodGet
			p.URL = "https://api.qwant.com/v3/search/web?q=" + url.QueryEscape(query)
			return nil
		},
		SupportedLanguagesURL: "https://www.qwant.com/",
		FetchLanguages:        fetchQwantLanguages,
	}
}

func fetchQwantLanguages(body []byte) (*engines.LanguageSet, error) {
	idx := bytes.Index(body, []byte("INITIAL_PROPS"))
	if idx < 0 {
		return nil, fmt.Errorf("no bootstrap props on landing page")
	}
	props := body[idx:]

	// the props object runs from the first brace to the last one
	start := bytes.IndexByte(props, '{')
	end := bytes.LastIndexByte(props, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("malformed bootstrap props")
	}

	locales := gjson.GetBytes(props[start:end+1], "locales")
	if !locales.IsObject() {
		return nil, fmt.Errorf("no locales in bootstrap props")
	}

	set := &engines.LanguageSet{}
	locales.ForEach(func(key, _ gjson.Result) bool {
		if code := key.String(); code != "" {
			set.Add(code, engines.LanguageMeta{})
		}
		return true
	})

	if set.Len() == 0 {
		return nil, fmt.Errorf("empty locale list in bootstrap props")
	}
	return set, nil
}
