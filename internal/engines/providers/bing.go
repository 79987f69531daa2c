package providers

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/quietsearch/quietsearch/internal/engines"
)

var (
	// bingLangSectionRe isolates the language checkbox section on the account
	// settings page; bingInputIDRe extracts the per-language input ids.
	bingLangSectionRe = regexp.MustCompile(`(?s)<div[^>]*id="limit-languages"[^>]*>(.*)</div>`)
	bingInputIDRe     = regexp.MustCompile(`<input[^>]*id="([^"]+)"`)
)

// Bing lists its result languages as checkboxes on the account settings page.
// Input ids carry the code with an underscore separator ("zh_CHS").
func Bing() *engines.Module {
	return &engines.Module{
		Name: "bing",
		Defaults: engines.Overrides{
			BaseURL: strPtr("https://www.bing.com/"),
			About: map[string]string{
				"website": "https://www.bing.com",
				"results": "HTML",
			},
		},
		Request: func(query string, p *engines.RequestParams) error {
			p.Method = http.MethodGet
			p.URL = "https://www.bing.com/search?q=" + url.QueryEscape(query)
			return nil
		},
		SupportedLanguagesURL: "https://www.bing.com/account/general",
		FetchLanguages:        fetchBingLanguages,
	}
}

func fetchBingLanguages(body []byte) (*engines.LanguageSet, error) {
	section := bingLangSectionRe.FindSubmatch(body)
	if section == nil {
		return nil, fmt.Errorf("no language section on account page")
	}

	set := &engines.LanguageSet{}
	for _, input := range bingInputIDRe.FindAllSubmatch(section[1], -1) {
		code := strings.ReplaceAll(string(input[1]), "_", "-")
		// the section also carries control inputs; keep only resolvable codes
		if _, ok := catalog.Parse(code); !ok {
			continue
		}
		set.Add(code, engines.LanguageMeta{})
	}

	if set.Len() == 0 {
		return nil, fmt.Errorf("no languages on account page")
	}
	return set, nil
}
