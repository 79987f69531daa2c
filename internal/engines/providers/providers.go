// Package providers holds the built-in capability-provider modules. Modules
// are registered explicitly at startup; a configured engine references one by
// its identifier in the `engine:` setting, and several engines may share one
// module (google videos reuses the google module).
package providers

import (
	"github.com/quietsearch/quietsearch/internal/engines"
	"github.com/quietsearch/quietsearch/internal/locales"
)

// catalog is shared by modules that normalize codes while parsing.
var catalog = locales.New()

// NewModuleSet returns the module table with all built-in modules registered.
func NewModuleSet() *engines.ModuleSet {
	s := engines.NewModuleSet()

	s.MustRegister(Wikipedia())
	s.MustRegister(Google())
	s.MustRegister(Bing())
	s.MustRegister(DuckDuckGo())
	s.MustRegister(Startpage())
	s.MustRegister(Qwant())
	s.MustRegister(Ahmia())

	return s
}

func strPtr(s string) *string { return &s }
