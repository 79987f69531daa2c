package locales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c := New()

	tests := []struct {
		code      string
		ok        bool
		language  string
		territory string
	}{
		{"de", true, "de", ""},
		{"de-AT", true, "de", "AT"},
		{"de_AT", true, "de", "AT"}, // underscore separator accepted
		{"pt-BR", true, "pt", "BR"},
		{"iw", true, "he", ""}, // deprecated code canonicalized
		{"zh-TW", true, "zh", "TW"},
		{"", false, "", ""},
		{"not a code", false, "", ""},
		{"x//", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			loc, ok := c.Parse(tt.code)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.language, loc.Language)
			assert.Equal(t, tt.territory, loc.Territory)
		})
	}
}

func TestParse_NoLikelyRegionInference(t *testing.T) {
	c := New()

	// a bare language code must stay bare: region inference is opt-in
	loc, ok := c.Parse("ja")
	require.True(t, ok)
	assert.Equal(t, "ja", loc.Code())
	assert.Empty(t, loc.Territory)
}

func TestMatch(t *testing.T) {
	c := New()

	canonical, ok := c.Match("iw")
	require.True(t, ok)
	assert.Equal(t, "he", canonical)

	same, ok := c.Match("en")
	require.True(t, ok)
	assert.Equal(t, "en", same)

	_, ok = c.Match("@@")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	c := New()

	assert.Equal(t, "Deutsch", c.LanguageName("de"))
	assert.Equal(t, "German", c.EnglishName("de"))
	assert.Equal(t, "German", c.EnglishName("de-AT"), "qualifier stripped")
	assert.Equal(t, "Austria", c.TerritoryName("de-AT"))
	assert.Empty(t, c.TerritoryName("de"))
}

func TestLanguageNameIsTitleCased(t *testing.T) {
	c := New()

	// CLDR self-names are lowercase for some languages; the catalog
	// title-cases them for display
	assert.Equal(t, "Suomi", c.LanguageName("fi"))
}

func TestLikelyRegion(t *testing.T) {
	c := New()

	assert.Equal(t, "DE", c.LikelyRegion("de"))
	assert.Equal(t, "JP", c.LikelyRegion("ja"))
	assert.Empty(t, c.LikelyRegion("not a code"))
}

func TestFlag(t *testing.T) {
	c := New()

	tests := []struct {
		code string
		want string
	}{
		{"de-AT", "\U0001F1E6\U0001F1F9"}, // Austria
		{"pt-BR", "\U0001F1E7\U0001F1F7"}, // Brazil
		{"de", GlobeFlag},                 // bare language code
		{"he", "\U0001F1EE\U0001F1F7"},    // override
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Flag(tt.code))
		})
	}
}
