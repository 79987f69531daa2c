// Package engines implements the engine plugin layer: loading and validating
// configured engines, resolving their language capabilities, and keeping the
// process-wide Registry of active engines.
//
// DESIGN: An engine is described in three layers, later layers win:
//  1. the capability-provider module's own default attribute values,
//  2. the global default-attribute table (see applyGlobalDefaults),
//  3. the explicit per-engine settings block.
//
// Modules are plain values in a registration table (no dynamic code loading);
// see module.go. The Registry is rebuilt wholesale on reload and published
// through an atomic holder; see registry.go.
package engines

import (
	"time"

	"github.com/rs/zerolog"
)

// OtherCategory is appended when none of an engine's categories match the
// configured tab categories, so the engine stays discoverable somewhere.
const OtherCategory = "other"

// DefaultShortcut marks an engine without a configured shortcut.
const DefaultShortcut = "-"

// Engine is one fully merged and validated engine record. Records are
// immutable after load; a configuration reload builds new records.
type Engine struct {
	Name       string
	Engine     string // capability-provider module identifier
	Shortcut   string
	Categories []string
	EngineType string
	About      map[string]string

	Inactive bool
	Disabled bool

	LanguageSupport  bool
	Paging           bool
	SafeSearch       bool
	TimeRangeSupport bool

	Timeout time.Duration

	UsingTorProxy            bool
	EnableHTTP               bool
	DisplayErrorMessages     bool
	SendAcceptLanguageHeader bool

	Tokens []string

	BaseURL    string
	SearchURL  string
	OnionURL   string
	SearchPath string

	// Language narrows a multi-language engine to one fixed language.
	Language string

	// Capability data resolved at load time. Exactly one of the two is set
	// for engines with language support: SupportedProperties for the
	// structured shape, SupportedLanguages for the legacy flat shape.
	SupportedLanguages  *LanguageSet
	SupportedProperties *Properties

	// LanguageAliases maps a canonical code to the code this engine expects.
	LanguageAliases map[string]string

	// Log is the engine-scoped logger.
	Log zerolog.Logger
}

// HasCategory reports whether the engine declares the given category.
func (e *Engine) HasCategory(name string) bool {
	for _, c := range e.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Overrides is a set of optional engine attribute values. Module defaults and
// nothing else use it directly; pointer fields distinguish "unset" from an
// explicit zero value.
type Overrides struct {
	EngineType *string
	Shortcut   *string
	Categories []string
	Timeout    *time.Duration

	Inactive *bool
	Disabled *bool

	Paging           *bool
	SafeSearch       *bool
	TimeRangeSupport *bool

	UsingTorProxy            *bool
	EnableHTTP               *bool
	DisplayErrorMessages     *bool
	SendAcceptLanguageHeader *bool

	BaseURL    *string
	SearchURL  *string
	OnionURL   *string
	SearchPath *string
	Language   *string

	Tokens []string
	About  map[string]string
}

// apply copies every set field of o onto e.
func (o *Overrides) apply(e *Engine) {
	if o == nil {
		return
	}
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	setStr(&e.EngineType, o.EngineType)
	setStr(&e.Shortcut, o.Shortcut)
	if o.Categories != nil {
		e.Categories = append([]string(nil), o.Categories...)
	}
	if o.Timeout != nil {
		e.Timeout = *o.Timeout
	}

	setBool(&e.Inactive, o.Inactive)
	setBool(&e.Disabled, o.Disabled)
	setBool(&e.Paging, o.Paging)
	setBool(&e.SafeSearch, o.SafeSearch)
	setBool(&e.TimeRangeSupport, o.TimeRangeSupport)
	setBool(&e.UsingTorProxy, o.UsingTorProxy)
	setBool(&e.EnableHTTP, o.EnableHTTP)
	setBool(&e.DisplayErrorMessages, o.DisplayErrorMessages)
	setBool(&e.SendAcceptLanguageHeader, o.SendAcceptLanguageHeader)

	setStr(&e.BaseURL, o.BaseURL)
	setStr(&e.SearchURL, o.SearchURL)
	setStr(&e.OnionURL, o.OnionURL)
	setStr(&e.SearchPath, o.SearchPath)
	setStr(&e.Language, o.Language)

	if o.Tokens != nil {
		e.Tokens = append([]string(nil), o.Tokens...)
	}
	if o.About != nil {
		if e.About == nil {
			e.About = make(map[string]string, len(o.About))
		}
		// key-wise merge, overrides win
		for k, v := range o.About {
			e.About[k] = v
		}
	}
}
