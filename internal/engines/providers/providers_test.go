package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietsearch/quietsearch/internal/engines"
)

func TestNewModuleSet(t *testing.T) {
	s := NewModuleSet()
	assert.Equal(t, []string{"ahmia", "bing", "duckduckgo", "google", "qwant", "startpage", "wikipedia"}, s.Names())

	for _, name := range s.Names() {
		m, ok := s.Lookup(name)
		require.True(t, ok)
		assert.NotNil(t, m.Request, "%s must be able to build requests", name)
	}
}

func TestWikipediaFetchLanguages(t *testing.T) {
	body := []byte(`{
		"sitematrix": {
			"count": 2,
			"0": {"code": "de", "name": "Deutsch", "localname": "German", "site": []},
			"1": {"code": "zza", "name": "Zazaki", "localname": "Zaza", "site": []},
			"specials": [{"code": "commons"}]
		}
	}`)

	set, err := fetchWikipediaLanguages(body)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"de", "zza"}, set.Codes)
	assert.Equal(t, "Deutsch", set.Meta["de"].Name)
	assert.Equal(t, "Zaza", set.Meta["zza"].EnglishName)
	assert.False(t, set.Has("commons"), "specials are not language editions")
}

func TestWikipediaFetchLanguages_Malformed(t *testing.T) {
	_, err := fetchWikipediaLanguages([]byte(`{"batchcomplete": ""}`))
	assert.Error(t, err)

	_, err = fetchWikipediaLanguages([]byte(`{"sitematrix": {"count": 0}}`))
	assert.Error(t, err)
}

func TestWikipediaParseResponse(t *testing.T) {
	body := []byte(`{
		"query": {
			"search": [
				{"title": "Go (programming language)", "snippet": "Go is a statically typed language"},
				{"title": "", "snippet": "dropped"},
				{"title": "Gopher", "snippet": ""}
			]
		}
	}`)

	results, err := parseWikipediaResponse(body)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Go (programming language)", results[0].Title)
	assert.Contains(t, results[0].URL, "/wiki/Go%20(programming%20language)")
	assert.Equal(t, "Go is a statically typed language", results[0].Content)

	_, err = parseWikipediaResponse([]byte(`{"batchcomplete": ""}`))
	assert.Error(t, err)
}

func TestGoogleFetchLanguages(t *testing.T) {
	body := []byte(`
		<form>
		<input type="radio" name="lr" value="lang_de" data-name="Deutsch">
		<input type="radio" name="lr" value="lang_zh-TW" data-name="Chinese (Traditional)">
		<input type="radio" name="other" value="lang_xx">
		</form>
	`)

	set, err := fetchGoogleLanguages(body)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"de", "zh-TW"}, set.Codes)
	assert.Equal(t, "Deutsch", set.Meta["de"].Name)
}

func TestGoogleFetchLanguages_Empty(t *testing.T) {
	_, err := fetchGoogleLanguages([]byte(`<html><body>captcha</body></html>`))
	assert.Error(t, err)
}

func TestBingFetchLanguages(t *testing.T) {
	body := []byte(`
		<div id="limit-languages" class="setting">
			<div><input type="checkbox" id="de"><label>German</label></div>
			<div><input type="checkbox" id="zh_CHT"><label>Chinese (Traditional)</label></div>
			<div><input type="checkbox" id="selectall"><label>Select all</label></div>
		</div>
	`)

	set, err := fetchBingLanguages(body)
	require.NoError(t, err)

	assert.True(t, set.Has("de"))
	assert.False(t, set.Has("selectall"), "control inputs are not language codes")

	_, err = fetchBingLanguages([]byte(`<html></html>`))
	assert.Error(t, err)
}

func TestQwantFetchLanguages(t *testing.T) {
	body := []byte(`<script>window.INITIAL_PROPS = {"locales":{"en_gb":{},"de_de":{},"fr_fr":{}},"other":true};</script>`)

	set, err := fetchQwantLanguages(body)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"en_gb", "de_de", "fr_fr"}, set.Codes)

	_, err = fetchQwantLanguages([]byte(`<script>var x = 1;</script>`))
	assert.Error(t, err)
}

func TestDuckDuckGoFetchLanguages(t *testing.T) {
	body := []byte(`!function(){var x={regions:{"wt-wt":"No region","de-de":"Germany","uk-en":"United Kingdom"},other:1};}();`)

	set, err := fetchDuckDuckGoLanguages(body)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"de-de", "uk-en"}, set.Codes)
	assert.Equal(t, "Germany", set.Meta["de-de"].Name)
	assert.False(t, set.Has("wt-wt"), "the no-region pseudo entry is dropped")
}

func TestStartpageFetchProperties(t *testing.T) {
	body := []byte(`
		<select name="search_results_region" class="settings">
			<option value="all">All regions</option>
			<option value="de-DE_DE">Germany</option>
			<option value="pt-BR_BR">Brazil</option>
			<option value="fil_PH">Philippines</option>
		</select>
	`)

	props := engines.NewProperties()
	require.NoError(t, fetchStartpageProperties(body, props))

	// keys are canonical, values keep the engine's own tags
	assert.Equal(t, "de-DE_DE", props.Regions["de-DE"])
	assert.Equal(t, "pt-BR_BR", props.Regions["pt-BR"])
	assert.Equal(t, "fil_PH", props.Regions["fil-PH"])
	assert.NotContains(t, props.Regions, "all")
}

func TestStartpageFetchProperties_NoSelector(t *testing.T) {
	props := engines.NewProperties()
	assert.Error(t, fetchStartpageProperties([]byte(`<html></html>`), props))
}

func TestRequestBuilders_EscapeQueries(t *testing.T) {
	s := NewModuleSet()
	for _, name := range s.Names() {
		m, _ := s.Lookup(name)
		p := &engines.RequestParams{}
		require.NoError(t, m.Request("zürich bahnhof", p), name)
		assert.NotEmpty(t, p.URL, name)
		assert.NotContains(t, p.URL, " ", "%s must escape the query", name)
	}
}

func TestAhmiaDefaults(t *testing.T) {
	m := Ahmia()
	require.NotNil(t, m.Defaults.OnionURL)
	assert.Contains(t, *m.Defaults.OnionURL, ".onion")
	require.NotNil(t, m.Defaults.SearchPath)
	assert.Nil(t, m.FetchLanguages, "ahmia has no capability interface")
	assert.Nil(t, m.FetchProperties)
}
