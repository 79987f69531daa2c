package providers

import (
	"net/http"
	"net/url"

	"github.com/quietsearch/quietsearch/internal/engines"
)

// Ahmia searches onion services. It declares no capability interface; its
// onion URL default feeds the load-time tor rewrite when the deployment
// routes through the privacy network.
func Ahmia() *engines.Module {
	return &engines.Module{
		Name: "ahmia",
		Defaults: engines.Overrides{
			BaseURL:    strPtr("https://ahmia.fi/"),
			SearchURL:  strPtr("https://ahmia.fi/search/"),
			OnionURL:   strPtr("http://juhanurmihxlp77nkq76byazcldy2hlmovfu2epvl5ankdibsot4csyd.onion"),
			SearchPath: strPtr("/search/"),
			About: map[string]string{
				"website": "https://ahmia.fi/",
				"results": "HTML",
			},
		},
		Request: func(query string, p *engines.RequestParams) error {
			p.Method = http.MethodGet
			p.URL = "https://ahmia.fi/search/?q=" + url.QueryEscape(query)
			return nil
		},
	}
}
