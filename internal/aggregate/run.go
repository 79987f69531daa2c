package aggregate

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/quietsearch/quietsearch/internal/config"
	"github.com/quietsearch/quietsearch/internal/engines"
	"github.com/quietsearch/quietsearch/internal/locales"
)

// Stats summarizes one aggregation run.
type Stats struct {
	RunID     string
	Engines   int // engines that contributed capability data
	Languages int // languages in the merged table
	Emitted   int // catalog entries written
}

// Run executes the whole batch: fetch capability data for every registered
// engine, write the raw capability artifact, merge, filter and write the
// catalog artifact.
func Run(ctx context.Context, cfg config.LocalesConfig, reg *engines.Registry, modules *engines.ModuleSet, cat *locales.Catalog, offline bool) (*Stats, error) {
	var cache *Cache
	if cfg.CachePath != "" {
		var err error
		cache, err = OpenCache(cfg.CachePath)
		if err != nil {
			return nil, err
		}
		defer cache.Close()
	}

	fetcher := NewFetcher(cfg, cache, offline)
	data := fetcher.FetchAll(ctx, reg, modules)

	if cfg.CapabilityFile != "" {
		if err := WriteCapabilityFile(cfg.CapabilityFile, data); err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.CapabilityFile).Msg("wrote capability artifact")
	}

	table := Join(data, reg, cat, cfg.NameFallbackEngine)
	filtered := Filter(table, reg, Thresholds{
		MinEnginesPerLang:    cfg.MinEnginesPerLang,
		MinEnginesPerCountry: cfg.MinEnginesPerCountry,
	}, cat)
	items := BuildCatalog(filtered, cat)

	if cfg.CatalogFile != "" {
		if err := WriteCatalogFile(cfg.CatalogFile, items); err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.CatalogFile).Int("entries", len(items)).Msg("wrote locale catalog")
	}

	return &Stats{
		RunID:     fetcher.RunID(),
		Engines:   len(data),
		Languages: len(table),
		Emitted:   len(items),
	}, nil
}
