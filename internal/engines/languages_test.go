package engines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietsearch/quietsearch/internal/config"
)

func TestSetLanguageAttributes_LegacyShape(t *testing.T) {
	data := CapabilityData{
		"test": {Languages: NewLanguageSet("en", "de", "fr")},
	}
	loader := newTestLoader(t, data)

	e, err := loader.LoadEngine(config.EngineSettings{Name: "test", Engine: "x"})
	require.NoError(t, err)
	require.NotNil(t, e)

	assert.True(t, e.LanguageSupport)
	require.NotNil(t, e.SupportedLanguages)
	assert.ElementsMatch(t, []string{"en", "de", "fr"}, e.SupportedLanguages.Codes)
}

func TestSetLanguageAttributes_ModuleKeyFallback(t *testing.T) {
	// capability data recorded under the module identifier applies to every
	// engine sharing the module
	data := CapabilityData{
		"x": {Languages: NewLanguageSet("en", "de")},
	}
	loader := newTestLoader(t, data)

	e, err := loader.LoadEngine(config.EngineSettings{Name: "renamed", Engine: "x"})
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.True(t, e.LanguageSupport)
	assert.Equal(t, 2, e.SupportedLanguages.Len())
}

func TestSetLanguageAttributes_NameKeyWinsOverModuleKey(t *testing.T) {
	data := CapabilityData{
		"test": {Languages: NewLanguageSet("en")},
		"x":    {Languages: NewLanguageSet("en", "de", "fr")},
	}
	loader := newTestLoader(t, data)

	e, err := loader.LoadEngine(config.EngineSettings{Name: "test", Engine: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, e.SupportedLanguages.Codes)
}

func TestSetLanguageAttributes_FixedLanguageNarrows(t *testing.T) {
	data := CapabilityData{
		"test": {Languages: NewLanguageSet("en", "de", "fr")},
	}
	loader := newTestLoader(t, data)

	e, err := loader.LoadEngine(config.EngineSettings{
		Name:     "test",
		Engine:   "x",
		Language: strp("de"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, e.SupportedLanguages.Codes)
}

func TestSetLanguageAttributes_UnsupportedFixedLanguageRejects(t *testing.T) {
	data := CapabilityData{
		"test": {Languages: NewLanguageSet("en", "de")},
	}
	loader := newTestLoader(t, data)

	_, err := loader.LoadEngine(config.EngineSettings{
		Name:     "test",
		Engine:   "x",
		Language: strp("xx"),
	})
	require.Error(t, err)
	assert.False(t, IsFatal(err))
}

func TestSetLanguageAttributes_AliasDetection(t *testing.T) {
	// "iw" is the deprecated code for Hebrew; the canonical form is "he".
	// The engine only understands "iw", so the alias map must route the
	// canonical code back to the engine-native one.
	data := CapabilityData{
		"test": {Languages: NewLanguageSet("en", "iw")},
	}
	loader := newTestLoader(t, data)

	e, err := loader.LoadEngine(config.EngineSettings{Name: "test", Engine: "x"})
	require.NoError(t, err)
	assert.Equal(t, "iw", e.LanguageAliases["he"])
	// "en" is already canonical, no alias
	_, ok := e.LanguageAliases["en"]
	assert.False(t, ok)
}

func TestSetLanguageAttributes_NoAliasWhenCanonicalPresent(t *testing.T) {
	// if the engine understands the canonical code too, the deprecated one
	// needs no alias
	data := CapabilityData{
		"test": {Languages: NewLanguageSet("he", "iw")},
	}
	loader := newTestLoader(t, data)

	e, err := loader.LoadEngine(config.EngineSettings{Name: "test", Engine: "x"})
	require.NoError(t, err)
	_, ok := e.LanguageAliases["he"]
	assert.False(t, ok)
}

func TestSetLanguageAttributes_StructuredShape(t *testing.T) {
	data := CapabilityData{
		"test": {Properties: &Properties{
			Languages: map[string]string{"de": "de"},
			Regions:   map[string]string{"de-AT": "de-AT", "de-DE": "de-DE"},
		}},
	}
	loader := newTestLoader(t, data)

	e, err := loader.LoadEngine(config.EngineSettings{Name: "test", Engine: "x"})
	require.NoError(t, err)
	assert.True(t, e.LanguageSupport)
	require.NotNil(t, e.SupportedProperties)
	assert.Len(t, e.SupportedProperties.Regions, 2)
	assert.Nil(t, e.SupportedLanguages)
}

func TestSetLanguageAttributes_NoDataMeansNoSupport(t *testing.T) {
	loader := newTestLoader(t, CapabilityData{})

	e, err := loader.LoadEngine(config.EngineSettings{Name: "test", Engine: "x"})
	require.NoError(t, err)
	assert.False(t, e.LanguageSupport)
	assert.Nil(t, e.SupportedLanguages)
}

func TestSetLanguageAttributes_ClonesCapabilityData(t *testing.T) {
	shared := NewLanguageSet("en", "de")
	data := CapabilityData{"x": {Languages: shared}}
	loader := newTestLoader(t, data)

	e1, err := loader.LoadEngine(config.EngineSettings{
		Name: "narrowed", Engine: "x", Language: strp("de"),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"de"}, e1.SupportedLanguages.Codes)

	// narrowing one engine must not bleed into the shared table
	e2, err := loader.LoadEngine(config.EngineSettings{Name: "full", Engine: "x"})
	require.NoError(t, err)
	assert.Equal(t, 2, e2.SupportedLanguages.Len())
}
