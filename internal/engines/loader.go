package engines

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/quietsearch/quietsearch/internal/config"
	"github.com/quietsearch/quietsearch/internal/locales"
	"github.com/quietsearch/quietsearch/internal/monitoring"
)

// Loader turns raw engine settings into fully merged Engine records.
type Loader struct {
	modules  *ModuleSet
	settings *config.Settings
	data     CapabilityData // global language-data table, may be empty
	catalog  *locales.Catalog
}

// NewLoader creates a loader. data is the capability artifact from a previous
// aggregation run (or empty); catalog is the shared locale catalog.
func NewLoader(modules *ModuleSet, settings *config.Settings, data CapabilityData, catalog *locales.Catalog) *Loader {
	if data == nil {
		data = CapabilityData{}
	}
	return &Loader{modules: modules, settings: settings, data: data, catalog: catalog}
}

// LoadEngine builds one Engine record from its settings block.
//
// Returns (nil, nil) when the engine is inactive: inactive engines are
// dropped silently, they are not an error. Returns a LoadError with
// KindRejected for per-engine defects and KindFatalConfig for deployment
// defects (an engine referencing an unregistered module).
func (l *Loader) LoadEngine(es config.EngineSettings) (*Engine, error) {
	name := es.Name
	if name == "" {
		return nil, rejectErr("", "an engine does not have a \"name\" field")
	}
	if strings.Contains(name, "_") {
		return nil, rejectErr(name, "engine name contains underscore")
	}
	if lower := strings.ToLower(name); lower != name {
		log.Warn().Str("engine", name).Msg("engine name is not lowercase, converting")
		name = lower
	}

	if es.Engine == "" {
		return nil, rejectErr(name, "the \"engine\" field is missing")
	}
	module, ok := l.modules.Lookup(es.Engine)
	if !ok {
		// A reference to a module that does not exist is a broken
		// deployment, not a data problem.
		return nil, fatalErr(name, "unknown engine module '%s'", es.Engine)
	}
	if module.Setup != nil {
		if err := module.Setup(name); err != nil {
			return nil, rejectErr(name, "module setup failed: %v", err)
		}
	}

	e := &Engine{Name: name, Engine: es.Engine}
	module.Defaults.apply(e)
	l.applyGlobalDefaults(e)
	l.applyConfig(e, es)
	e.Log = monitoring.Engine(name)

	if err := l.setLanguageAttributes(e); err != nil {
		return nil, err
	}
	l.updateAttributesForTor(e)

	if !l.isActive(e, module) {
		return nil, nil
	}

	if missing := e.missingRequiredAttributes(); len(missing) > 0 {
		for _, attr := range missing {
			log.Error().Str("engine", name).Str("attribute", attr).Msg("missing engine config attribute")
		}
		return nil, rejectErr(name, "missing required attributes: %s", strings.Join(missing, ", "))
	}

	l.ensureTabCategory(e)

	return e, nil
}

// applyGlobalDefaults overwrites the fixed global default-attribute table.
// It sits between module defaults and explicit settings in the merge order.
func (l *Loader) applyGlobalDefaults(e *Engine) {
	e.EngineType = "online"
	e.Inactive = false
	e.Disabled = false
	e.Timeout = l.settings.Outgoing.RequestTimeout
	e.Shortcut = DefaultShortcut
	e.Categories = []string{"general"}
	e.LanguageSupport = false
	e.Paging = false
	e.SafeSearch = false
	e.TimeRangeSupport = false
	e.EnableHTTP = false
	e.UsingTorProxy = false
	e.DisplayErrorMessages = true
	e.SendAcceptLanguageHeader = false
	e.Tokens = []string{}
	if e.About == nil {
		e.About = map[string]string{}
	}
}

// applyConfig overlays the explicit per-engine settings, the highest layer.
func (l *Loader) applyConfig(e *Engine, es config.EngineSettings) {
	o := Overrides{
		EngineType:               es.EngineType,
		Shortcut:                 es.Shortcut,
		Timeout:                  es.Timeout,
		Inactive:                 es.Inactive,
		Disabled:                 es.Disabled,
		Paging:                   es.Paging,
		SafeSearch:               es.SafeSearch,
		TimeRangeSupport:         es.TimeRangeSupport,
		UsingTorProxy:            es.UsingTorProxy,
		EnableHTTP:               es.EnableHTTP,
		DisplayErrorMessages:     es.DisplayErrorMessages,
		SendAcceptLanguageHeader: es.SendAcceptLanguageHeader,
		BaseURL:                  es.BaseURL,
		SearchURL:                es.SearchURL,
		OnionURL:                 es.OnionURL,
		SearchPath:               es.SearchPath,
		Language:                 es.Language,
		Tokens:                   es.Tokens,
		About:                    es.About,
	}
	if len(es.Categories) > 0 {
		o.Categories = es.Categories
	}
	o.apply(e)
}

// updateAttributesForTor rewrites the search URL to the engine's onion base
// and extends the timeout by the configured proxy margin. Applied once, at
// load time.
func (l *Loader) updateAttributesForTor(e *Engine) {
	if l.usingTorProxy(e) && e.OnionURL != "" {
		e.SearchURL = e.OnionURL + e.SearchPath
		e.Timeout += l.settings.Outgoing.ExtraProxyTimeout
	}
}

// usingTorProxy reports whether the deployment or the engine itself declares
// privacy-network routing.
func (l *Loader) usingTorProxy(e *Engine) bool {
	return l.settings.Outgoing.UsingTorProxy || e.UsingTorProxy
}

// isActive decides whether the engine joins the registry. Inactive engines
// are not an error.
func (l *Loader) isActive(e *Engine, m *Module) bool {
	if e.Inactive {
		return false
	}

	// exclude onion engines if not routing through tor
	if e.HasCategory("onions") && !l.usingTorProxy(e) {
		return false
	}

	// an online engine whose module cannot build requests can never search
	if e.EngineType == "online" && m.Request == nil {
		return false
	}

	return true
}

// missingRequiredAttributes returns the names of required attributes that did
// not resolve to a value after the merge.
func (e *Engine) missingRequiredAttributes() []string {
	var missing []string
	if e.Name == "" {
		missing = append(missing, "name")
	}
	if e.Engine == "" {
		missing = append(missing, "engine")
	}
	if e.Shortcut == "" {
		missing = append(missing, "shortcut")
	}
	if e.EngineType == "" {
		missing = append(missing, "engine_type")
	}
	if len(e.Categories) == 0 {
		missing = append(missing, "categories")
	}
	if e.Timeout <= 0 {
		missing = append(missing, "timeout")
	}
	if e.Tokens == nil {
		missing = append(missing, "tokens")
	}
	if e.About == nil {
		missing = append(missing, "about")
	}
	return missing
}

// ensureTabCategory appends the "other" category when no declared category
// matches a configured tab, so the engine stays discoverable. Idempotent.
func (l *Loader) ensureTabCategory(e *Engine) {
	for _, cat := range e.Categories {
		for _, tab := range l.settings.CategoriesAsTabs {
			if cat == tab {
				return
			}
		}
	}
	if !e.HasCategory(OtherCategory) {
		e.Categories = append(e.Categories, OtherCategory)
	}
}
