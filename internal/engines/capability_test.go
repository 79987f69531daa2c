package engines

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapability_ShapeSniffing(t *testing.T) {
	t.Run("plain array is legacy", func(t *testing.T) {
		var c Capability
		require.NoError(t, json.Unmarshal([]byte(`["de","en"]`), &c))
		assert.Nil(t, c.Properties)
		require.NotNil(t, c.Languages)
		assert.Equal(t, []string{"de", "en"}, c.Languages.Codes)
	})

	t.Run("code-keyed object is legacy with metadata", func(t *testing.T) {
		var c Capability
		raw := `{"de":{"name":"Deutsch","english_name":"German"},"en":{}}`
		require.NoError(t, json.Unmarshal([]byte(raw), &c))
		require.NotNil(t, c.Languages)
		assert.Equal(t, "Deutsch", c.Languages.Meta["de"].Name)
		assert.True(t, c.Languages.Has("en"))
	})

	t.Run("tagged object is structured", func(t *testing.T) {
		var c Capability
		raw := `{"type":"engine_properties","languages":{"de":"de"},"regions":{"de-AT":"de-AT"}}`
		require.NoError(t, json.Unmarshal([]byte(raw), &c))
		require.NotNil(t, c.Properties)
		assert.Nil(t, c.Languages)
		assert.Equal(t, "de-AT", c.Properties.Regions["de-AT"])
	})
}

func TestCapability_MergeCodes(t *testing.T) {
	structured := &Capability{Properties: &Properties{
		Regions: map[string]string{"de-DE": "de-DE", "de-AT": "de-AT"},
	}}
	assert.Equal(t, []string{"de-AT", "de-DE"}, structured.MergeCodes())

	legacy := &Capability{Languages: NewLanguageSet("fr", "de")}
	assert.Equal(t, []string{"fr", "de"}, legacy.MergeCodes())

	var nilCap *Capability
	assert.Nil(t, nilCap.MergeCodes())
}

func TestLanguageSet_Narrow(t *testing.T) {
	s := NewLanguageSet("en", "de", "fr")
	require.NoError(t, s.Narrow("de"))
	assert.Equal(t, []string{"de"}, s.Codes)

	assert.Error(t, NewLanguageSet("en").Narrow("xx"))
}

func TestLoadCapabilityFile(t *testing.T) {
	t.Run("missing file yields empty table", func(t *testing.T) {
		data, err := LoadCapabilityFile(filepath.Join(t.TempDir(), "absent.json"))
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("round trip through the artifact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "capabilities.json")
		in := CapabilityData{
			"legacy": {Languages: NewLanguageSet("de", "en")},
			"structured": {Properties: &Properties{
				Languages: map[string]string{"de": "de"},
				Regions:   map[string]string{"de-AT": "de_AT"},
			}},
		}
		raw, err := json.Marshal(in)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		out, err := LoadCapabilityFile(path)
		require.NoError(t, err)
		require.NotNil(t, out["legacy"].Languages)
		assert.ElementsMatch(t, []string{"de", "en"}, out["legacy"].Languages.Codes)
		require.NotNil(t, out["structured"].Properties)
		assert.Equal(t, "de_AT", out["structured"].Properties.Regions["de-AT"])
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
		_, err := LoadCapabilityFile(path)
		assert.Error(t, err)
	})
}

func TestModuleSet_Register(t *testing.T) {
	s := NewModuleSet()
	require.NoError(t, s.Register(&Module{Name: "alpha"}))

	assert.Error(t, s.Register(&Module{Name: "alpha"}), "duplicate module")
	assert.Error(t, s.Register(&Module{}), "unnamed module")

	m, ok := s.Lookup("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", m.Name)
	assert.Equal(t, []string{"alpha"}, s.Names())
}
