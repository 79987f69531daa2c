package engines

import (
	"fmt"
	"sort"
	"sync"
)

// RequestParams is filled by a module's Request function to describe the
// outgoing search request. Query-time transport is outside this layer.
type RequestParams struct {
	URL     string
	Method  string
	Headers map[string]string
}

// Result is one parsed search result.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Module is a capability-provider: the code side of an engine. Modules are
// registered in a ModuleSet at startup; multiple configured engines may share
// one module. All function fields are optional.
type Module struct {
	// Name is the module identifier referenced by the `engine:` setting.
	Name string

	// Defaults are the module's own default attribute values, the lowest
	// layer of the engine attribute merge.
	Defaults Overrides

	// Setup runs once per configured engine before the merge. An error
	// rejects that engine without affecting others.
	Setup func(name string) error

	// Request builds the search request for a query. An online engine whose
	// module cannot build requests is never activated.
	Request func(query string, params *RequestParams) error

	// ParseResponse extracts results from a search response body.
	ParseResponse func(body []byte) ([]Result, error)

	// SupportedLanguagesURL plus FetchLanguages form the legacy capability
	// interface: the HTTP response body of the URL is parsed into a flat
	// language set.
	SupportedLanguagesURL string
	FetchLanguages        func(body []byte) (*LanguageSet, error)

	// SupportedPropertiesURL plus FetchProperties form the structured
	// capability interface: the response body populates a fresh template.
	SupportedPropertiesURL string
	FetchProperties        func(body []byte, props *Properties) error
}

// ModuleSet is the registration table mapping a module identifier to its
// capability-provider. It replaces dynamic module loading: discovery is an
// explicit registration call at startup.
type ModuleSet struct {
	mu sync.RWMutex
	m  map[string]*Module
}

// NewModuleSet creates an empty module table.
func NewModuleSet() *ModuleSet {
	return &ModuleSet{m: make(map[string]*Module)}
}

// Register adds a module to the table.
func (s *ModuleSet) Register(m *Module) error {
	if m == nil || m.Name == "" {
		return fmt.Errorf("module must have a name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[m.Name]; ok {
		return fmt.Errorf("module '%s' already registered", m.Name)
	}
	s.m[m.Name] = m
	return nil
}

// MustRegister registers a module and panics on error. Built-in module
// tables are assembled at startup where a duplicate is a programming error.
func (s *ModuleSet) MustRegister(m *Module) {
	if err := s.Register(m); err != nil {
		panic(err)
	}
}

// Lookup returns a module by identifier.
func (s *ModuleSet) Lookup(name string) (*Module, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.m[name]
	return m, ok
}

// Names returns all registered module identifiers, sorted.
func (s *ModuleSet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.m))
	for name := range s.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
