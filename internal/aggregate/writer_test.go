package aggregate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietsearch/quietsearch/internal/engines"
	"github.com/quietsearch/quietsearch/internal/locales"
)

func TestBuildCatalog(t *testing.T) {
	filtered := map[string]Entry{
		"fr-FR": {Name: "français", EnglishName: "French", CountryName: "France"},
		"de-AT": {Name: "Deutsch", EnglishName: "German", CountryName: "Austria"},
		"de":    {Name: "Deutsch", EnglishName: "German"},
	}

	items := BuildCatalog(filtered, locales.New())

	require.Len(t, items, 3)
	// deterministic code order
	assert.Equal(t, "de", items[0].Code)
	assert.Equal(t, "de-AT", items[1].Code)
	assert.Equal(t, "fr-FR", items[2].Code)

	assert.Equal(t, "Austria", items[1].Territory)
	assert.Equal(t, "\U0001F1E6\U0001F1F9", items[1].Flag)
	assert.Equal(t, locales.GlobeFlag, items[0].Flag, "bare codes carry the globe glyph")
}

func TestBuildCatalog_ExcludesUnnamedCodes(t *testing.T) {
	filtered := map[string]Entry{
		"de": {Name: "Deutsch", EnglishName: "German"},
		"zz": {}, // no display name from any source
	}

	items := BuildCatalog(filtered, locales.New())

	require.Len(t, items, 1)
	assert.Equal(t, "de", items[0].Code)
}

func TestBuildCatalog_StripsNameQualifier(t *testing.T) {
	filtered := map[string]Entry{
		"nb": {Name: "norsk (bokmål)", EnglishName: "Norwegian Bokmål"},
	}

	items := BuildCatalog(filtered, locales.New())

	require.Len(t, items, 1)
	assert.Equal(t, "norsk", items[0].Name)
}

func TestWriteCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.json")
	items := []CatalogItem{
		{Code: "de-AT", Name: "Deutsch", Territory: "Austria", EnglishName: "German", Flag: "\U0001F1E6\U0001F1F9"},
	}

	require.NoError(t, WriteCatalogFile(path, items))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []CatalogItem
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, items, got)
}

func TestWriteCapabilityFile_ReadableByLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capabilities.json")
	data := engines.CapabilityData{
		"wiki": {Languages: engines.NewLanguageSet("de", "en")},
	}

	require.NoError(t, WriteCapabilityFile(path, data))

	back, err := engines.LoadCapabilityFile(path)
	require.NoError(t, err)
	require.Contains(t, back, "wiki")
	assert.ElementsMatch(t, []string{"de", "en"}, back["wiki"].Languages.Codes)
}
