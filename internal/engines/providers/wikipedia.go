package providers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/quietsearch/quietsearch/internal/engines"
)

// Wikipedia reports its language editions through the sitematrix API. The
// per-code names it returns double as the catalog's fallback name source for
// languages the locale catalog cannot name.
func Wikipedia() *engines.Module {
	return &engines.Module{
		Name: "wikipedia",
		Defaults: engines.Overrides{
			BaseURL: strPtr("https://en.wikipedia.org/"),
			About: map[string]string{
				"website":          "https://www.wikipedia.org/",
				"official_api_doc": "https://www.mediawiki.org/wiki/API:Main_page",
				"results":          "JSON",
			},
		},
		Request: func(query string, p *engines.RequestParams) error {
			p.Method = http.MethodGet
			p.URL = "https://en.wikipedia.org/w/api.php?action=query&list=search&format=json&srsearch=" + url.QueryEscape(query)
			return nil
		},
		ParseResponse:         parseWikipediaResponse,
		SupportedLanguagesURL: "https://commons.wikimedia.org/w/api.php?action=sitematrix&format=json&smtype=language&smlangprop=code%7Cname%7Clocalname",
		FetchLanguages:        fetchWikipediaLanguages,
	}
}

// parseWikipediaResponse extracts search results from the query API response.
func parseWikipediaResponse(body []byte) ([]engines.Result, error) {
	hits := gjson.GetBytes(body, "query.search")
	if !hits.IsArray() {
		return nil, fmt.Errorf("no search results in response")
	}

	var results []engines.Result
	hits.ForEach(func(_, hit gjson.Result) bool {
		title := hit.Get("title").String()
		if title == "" {
			return true
		}
		results = append(results, engines.Result{
			URL:     "https://en.wikipedia.org/wiki/" + url.PathEscape(title),
			Title:   title,
			Content: hit.Get("snippet").String(),
		})
		return true
	})
	return results, nil
}

// fetchWikipediaLanguages parses the sitematrix response: numbered entries
// carrying code, name (autonym) and localname (English name).
func fetchWikipediaLanguages(body []byte) (*engines.LanguageSet, error) {
	matrix := gjson.GetBytes(body, "sitematrix")
	if !matrix.Exists() {
		return nil, fmt.Errorf("sitematrix missing from response")
	}

	set := &engines.LanguageSet{}
	matrix.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "count" || key.String() == "specials" {
			return true
		}
		code := value.Get("code").String()
		if code == "" {
			return true
		}
		set.Add(code, engines.LanguageMeta{
			Name:        value.Get("name").String(),
			EnglishName: value.Get("localname").String(),
		})
		return true
	})

	if set.Len() == 0 {
		return nil, fmt.Errorf("no languages in sitematrix response")
	}
	return set, nil
}
