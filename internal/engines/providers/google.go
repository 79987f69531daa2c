package providers

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/quietsearch/quietsearch/internal/engines"
)

// googleLangRe matches one interface-language radio button on the
// preferences page; the value carries a "lang_" prefix.
var googleLangRe = regexp.MustCompile(`<input[^>]*name="lr"[^>]*>`)

var (
	googleValueRe = regexp.MustCompile(`value="([^"]+)"`)
	googleNameRe  = regexp.MustCompile(`data-name="([^"]+)"`)
)

// Google exposes its language list on the preferences page. The module is
// shared by the google videos and google scholar engines.
func Google() *engines.Module {
	return &engines.Module{
		Name: "google",
		Defaults: engines.Overrides{
			BaseURL: strPtr("https://www.google.com/"),
			About: map[string]string{
				"website": "https://www.google.com",
				"results": "HTML",
			},
		},
		Request: func(query string, p *engines.RequestParams) error {
			p.Method = http.MethodGet
			p.URL = "https://www.google.com/search?q=" + url.QueryEscape(query)
			return nil
		},
		SupportedLanguagesURL: "https://www.google.com/preferences",
		FetchLanguages:        fetchGoogleLanguages,
	}
}

// fetchGoogleLanguages extracts the "lr" radio buttons: value "lang_de" plus
// a display name.
func fetchGoogleLanguages(body []byte) (*engines.LanguageSet, error) {
	set := &engines.LanguageSet{}
	for _, input := range googleLangRe.FindAllString(string(body), -1) {
		value := googleValueRe.FindStringSubmatch(input)
		if value == nil {
			continue
		}
		parts := strings.Split(value[1], "_")
		code := parts[len(parts)-1]
		if code == "" {
			continue
		}

		meta := engines.LanguageMeta{}
		if name := googleNameRe.FindStringSubmatch(input); name != nil {
			meta.Name = name[1]
		}
		set.Add(code, meta)
	}

	if set.Len() == 0 {
		return nil, fmt.Errorf("no languages found on preferences page")
	}
	return set, nil
}
