package aggregate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/quietsearch/quietsearch/internal/engines"
	"github.com/quietsearch/quietsearch/internal/locales"
)

// CatalogItem is one emitted catalog entry.
type CatalogItem struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Territory   string `json:"territory"`
	EnglishName string `json:"english_name"`
	Flag        string `json:"flag"`
}

// BuildCatalog orders the filtered codes and resolves the emitted fields.
// Codes without a display name after all fallback sources are reported and
// excluded.
func BuildCatalog(filtered map[string]Entry, cat *locales.Catalog) []CatalogItem {
	codes := make([]string, 0, len(filtered))
	for code := range filtered {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	items := make([]CatalogItem, 0, len(codes))
	for _, code := range codes {
		entry := filtered[code]
		if entry.Name == "" {
			log.Error().Str("code", code).Msg("no display name for code, excluding from catalog")
			continue
		}

		flag := cat.Flag(code)
		if flag == "" {
			flag = locales.GlobeFlag
		}

		items = append(items, CatalogItem{
			Code:        code,
			Name:        strings.SplitN(entry.Name, " (", 2)[0],
			Territory:   cat.TerritoryName(code),
			EnglishName: entry.EnglishName,
			Flag:        flag,
		})
	}
	return items
}

// WriteCatalogFile writes the canonical catalog artifact.
func WriteCatalogFile(path string, items []CatalogItem) error {
	return writeJSON(path, items)
}

// WriteCapabilityFile writes the raw per-engine capability artifact. The
// engine loader reads this same file back as its language-data table.
func WriteCapabilityFile(path string, data engines.CapabilityData) error {
	return writeJSON(path, data)
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode '%s': %w", path, err)
	}
	raw = append(raw, '\n')

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create '%s': %w", dir, err)
		}
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return nil
}
