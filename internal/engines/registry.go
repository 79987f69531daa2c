package engines

import (
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Registry is the table of active engines, keyed by name, shortcut and
// category. A Registry is immutable once built: a reload builds a fresh one
// and publishes it through a Holder.
type Registry struct {
	engines    map[string]*Engine
	shortcuts  map[string]string // shortcut -> engine name
	categories map[string][]*Engine
}

func newRegistry() *Registry {
	return &Registry{
		engines:    make(map[string]*Engine),
		shortcuts:  make(map[string]string),
		categories: map[string][]*Engine{"general": {}},
	}
}

// register inserts an engine into all three tables. An ambiguous name or
// shortcut is a configuration defect and aborts the whole load.
func (r *Registry) register(e *Engine) error {
	if _, ok := r.engines[e.Name]; ok {
		return fatalErr(e.Name, "ambiguous engine name")
	}
	if existing, ok := r.shortcuts[e.Shortcut]; ok {
		return fatalErr(e.Name, "ambiguous shortcut '%s' (already used by '%s')", e.Shortcut, existing)
	}
	r.engines[e.Name] = e
	r.shortcuts[e.Shortcut] = e.Name
	for _, cat := range e.Categories {
		r.categories[cat] = append(r.categories[cat], e)
	}
	return nil
}

// Load builds a fresh Registry from the loader's configured engines, in
// input order. Rejected engines are logged and skipped; inactive engines are
// skipped silently; a fatal config error aborts the whole load.
func Load(loader *Loader) (*Registry, error) {
	r := newRegistry()
	for _, es := range loader.settings.Engines {
		e, err := loader.LoadEngine(es)
		if err != nil {
			if IsFatal(err) {
				return nil, err
			}
			log.Error().Err(err).Msg("engine rejected")
			continue
		}
		if e == nil {
			continue // inactive
		}
		if err := r.register(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Engine returns an engine by name.
func (r *Registry) Engine(name string) (*Engine, bool) {
	e, ok := r.engines[name]
	return e, ok
}

// ByShortcut returns an engine by its shortcut.
func (r *Registry) ByShortcut(shortcut string) (*Engine, bool) {
	name, ok := r.shortcuts[shortcut]
	if !ok {
		return nil, false
	}
	return r.engines[name], true
}

// Category returns the engines of one category, in registration order.
func (r *Registry) Category(name string) []*Engine {
	return r.categories[name]
}

// Categories returns all category names, sorted.
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Names returns all engine names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered engines.
func (r *Registry) Len() int { return len(r.engines) }

// Holder publishes the current Registry. Readers always see either the old
// or the fully rebuilt new state, never a partially built one.
type Holder struct {
	p atomic.Pointer[Registry]
}

// NewHolder creates a holder publishing reg.
func NewHolder(reg *Registry) *Holder {
	h := &Holder{}
	h.p.Store(reg)
	return h
}

// Current returns the published Registry.
func (h *Holder) Current() *Registry { return h.p.Load() }

// Reload rebuilds from the loader and atomically swaps the published
// Registry on success. On failure the previous Registry stays published.
func (h *Holder) Reload(loader *Loader) error {
	reg, err := Load(loader)
	if err != nil {
		return err
	}
	h.p.Store(reg)
	return nil
}
