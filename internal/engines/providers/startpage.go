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
	// startpageRegionSelectRe isolates the region <select> on the settings
	// page; startpageOptionRe extracts the option values from it.
	startpageRegionSelectRe = regexp.MustCompile(`(?s)<select[^>]*name="search_results_region"[^>]*>(.*?)</select>`)
	startpageOptionRe       = regexp.MustCompile(`<option[^>]*value="([^"]+)"`)
)

// Startpage reports regions through its settings form. Its region tags are a
// mix of shapes ("pt-BR_BR", "en-GB_GB", "fil_PH"), so every tag is
// normalized through the locale catalog before it lands in the properties.
func Startpage() *engines.Module {
	return &engines.Module{
		Name: "startpage",
		Defaults: engines.Overrides{
			BaseURL: strPtr("https://www.startpage.com/"),
			About: map[string]string{
				"website": "https://www.startpage.com",
				"results": "HTML",
			},
		},
		Request: func(query string, p *engines.RequestParams) error {
			p.Method = http.MethodGet
			p.URL = "https://www.startpage.com/sp/search?query=" + url.QueryEscape(query)
			return nil
		},
		SupportedPropertiesURL: "https://www.startpage.com/do/settings",
		FetchProperties:        fetchStartpageProperties,
	}
}

func fetchStartpageProperties(body []byte, props *engines.Properties) error {
	sel := startpageRegionSelectRe.FindSubmatch(body)
	if sel == nil {
		return fmt.Errorf("no region selector on settings page")
	}

	for _, option := range startpageOptionRe.FindAllSubmatch(sel[1], -1) {
		spTag := string(option[1])
		if spTag == "all" {
			continue
		}

		// "pt-BR_BR" carries the region twice; keep the language part and
		// the trailing region.
		normalized := spTag
		if i := strings.IndexByte(spTag, '-'); i >= 0 {
			lang := spTag[:i]
			rest := spTag[i+1:]
			parts := strings.Split(rest, "_")
			normalized = lang + "-" + parts[len(parts)-1]
		}

		loc, ok := catalog.Parse(normalized)
		if !ok || loc.Territory == "" {
			continue
		}
		props.Regions[loc.Code()] = spTag
	}

	if len(props.Regions) == 0 {
		return fmt.Errorf("no regions parsed from settings page")
	}
	return nil
}
