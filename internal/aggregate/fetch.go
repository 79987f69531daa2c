package aggregate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/quietsearch/quietsearch/internal/config"
	"github.com/quietsearch/quietsearch/internal/engines"
)

// Some engines return a different language list depending on the IP location
// of the request; a fixed Accept-Language keeps the results uniform.
const (
	fetchUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36 Edg/131.0.0.0"
	fetchAcceptLanguage = "en-US,en;q=0.5"
)

// Fetcher collects capability data from every registered engine that exposes
// a capability interface. Fetches are independent and idempotent, so they
// run on a bounded worker pool; merge order does not matter because merging
// is a commutative set union.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	concurrency int
	cache       *Cache
	offline     bool
	runID       string
}

// NewFetcher creates a fetcher. cache may be nil; offline skips the network
// entirely and serves from cache only.
func NewFetcher(cfg config.LocalesConfig, cache *Cache, offline bool) *Fetcher {
	return &Fetcher{
		client:      &http.Client{Timeout: cfg.FetchTimeout},
		timeout:     cfg.FetchTimeout,
		concurrency: cfg.FetchConcurrency,
		cache:       cache,
		offline:     offline,
		runID:       uuid.NewString(),
	}
}

// RunID identifies this aggregation run in logs and cache envelopes.
func (f *Fetcher) RunID() string { return f.runID }

// FetchAll gathers capability data for all registered engines, in name order.
// A failed fetch never aborts the run: the engine falls back to cached data
// when available and otherwise contributes nothing to coverage.
func (f *Fetcher) FetchAll(ctx context.Context, reg *engines.Registry, modules *engines.ModuleSet) engines.CapabilityData {
	names := reg.Names()

	out := engines.CapabilityData{}
	var mu sync.Mutex

	jobs := make(chan string)
	var wg sync.WaitGroup

	workers := f.concurrency
	if workers > len(names) {
		workers = len(names)
	}
	if workers < 1 {
		workers = 1 // the feed loop needs at least one consumer
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				engine, _ := reg.Engine(name)
				capability := f.fetchEngine(ctx, engine, modules)
				if capability == nil {
					continue
				}
				mu.Lock()
				out[name] = capability
				mu.Unlock()
			}
		}()
	}

feed:
	for _, name := range names {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- name:
		}
	}
	close(jobs)
	wg.Wait()

	log.Info().Int("engines", len(out)).Str("run_id", f.runID).Msg("fetched capability data")
	return out
}

// fetchEngine resolves one engine's capability data, or nil when the engine
// declares no capability interface or all sources fail.
func (f *Fetcher) fetchEngine(ctx context.Context, e *engines.Engine, modules *engines.ModuleSet) *engines.Capability {
	module, ok := modules.Lookup(e.Engine)
	if !ok {
		return nil
	}

	var fetch func() (*engines.Capability, error)
	switch {
	case module.FetchProperties != nil && module.SupportedPropertiesURL != "":
		fetch = func() (*engines.Capability, error) {
			body, err := f.get(ctx, module.SupportedPropertiesURL)
			if err != nil {
				return nil, err
			}
			props := engines.NewProperties()
			if err := module.FetchProperties(body, props); err != nil {
				return nil, err
			}
			return &engines.Capability{Properties: props}, nil
		}
	case module.FetchLanguages != nil && module.SupportedLanguagesURL != "":
		fetch = func() (*engines.Capability, error) {
			body, err := f.get(ctx, module.SupportedLanguagesURL)
			if err != nil {
				return nil, err
			}
			set, err := module.FetchLanguages(body)
			if err != nil {
				return nil, err
			}
			return &engines.Capability{Languages: set}, nil
		}
	default:
		// no discoverable capability data
		return nil
	}

	if !f.offline {
		capability, err := fetch()
		if err == nil {
			if f.cache != nil {
				if err := f.cache.Put(e.Name, capability, f.runID); err != nil {
					e.Log.Warn().Err(err).Msg("failed to cache capability data")
				}
			}
			return capability
		}
		ferr := &engines.LoadError{Kind: engines.KindFetchFailed, Engine: e.Name, Err: err}
		e.Log.Error().Err(ferr).Msg("capability fetch failed")
	}

	if f.cache == nil {
		return nil
	}
	capability, fetchedAt, ok, err := f.cache.Get(e.Name)
	if err != nil {
		e.Log.Warn().Err(err).Msg("failed to read capability cache")
		return nil
	}
	if !ok {
		return nil
	}
	e.Log.Info().Time("fetched_at", fetchedAt).Msg("using cached capability data")
	return capability
}

// get performs one bounded HTTP GET with the fixed capability-fetch headers.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept-Language", fetchAcceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
