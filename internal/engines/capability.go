package engines

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/gjson"
)

// propertiesType tags the structured capability shape on the wire.
const propertiesType = "engine_properties"

// Properties is the structured capability shape: independent mappings from a
// canonical code to the code the engine expects.
type Properties struct {
	Languages map[string]string `json:"languages"`
	Regions   map[string]string `json:"regions"`
}

// NewProperties returns an empty properties template for a module's
// FetchProperties function to populate.
func NewProperties() *Properties {
	return &Properties{
		Languages: map[string]string{},
		Regions:   map[string]string{},
	}
}

// Empty reports whether neither mapping has entries.
func (p *Properties) Empty() bool {
	return len(p.Languages) == 0 && len(p.Regions) == 0
}

// LanguageMeta carries optional per-code metadata reported by an engine in
// the legacy flat shape (wikipedia reports names usable as a fallback source).
type LanguageMeta struct {
	Name        string `json:"name,omitempty"`
	EnglishName string `json:"english_name,omitempty"`
}

// LanguageSet is the legacy flat capability shape: a set of engine-native
// codes, optionally with per-code metadata.
type LanguageSet struct {
	Codes []string
	Meta  map[string]LanguageMeta
}

// NewLanguageSet builds a set from plain codes.
func NewLanguageSet(codes ...string) *LanguageSet {
	return &LanguageSet{Codes: append([]string(nil), codes...)}
}

// Add inserts a code with metadata, keeping first-seen order.
func (s *LanguageSet) Add(code string, meta LanguageMeta) {
	if s.Has(code) {
		return
	}
	s.Codes = append(s.Codes, code)
	if meta != (LanguageMeta{}) {
		if s.Meta == nil {
			s.Meta = map[string]LanguageMeta{}
		}
		s.Meta[code] = meta
	}
}

// Has reports whether code is in the set.
func (s *LanguageSet) Has(code string) bool {
	for _, c := range s.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// Len returns the number of codes.
func (s *LanguageSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Codes)
}

// Narrow reduces the set to the single given code.
// Fails if the code is not in the set.
func (s *LanguageSet) Narrow(code string) error {
	if !s.Has(code) {
		return fmt.Errorf("language '%s' not supported", code)
	}
	var meta map[string]LanguageMeta
	if m, ok := s.Meta[code]; ok {
		meta = map[string]LanguageMeta{code: m}
	}
	s.Codes = []string{code}
	s.Meta = meta
	return nil
}

// clone returns a deep copy so loaded records never share capability state.
func (s *LanguageSet) clone() *LanguageSet {
	if s == nil {
		return nil
	}
	out := &LanguageSet{Codes: append([]string(nil), s.Codes...)}
	if s.Meta != nil {
		out.Meta = make(map[string]LanguageMeta, len(s.Meta))
		for k, v := range s.Meta {
			out.Meta[k] = v
		}
	}
	return out
}

// MarshalJSON emits a plain sorted array when no metadata is present,
// otherwise a code-keyed object (both legacy wire forms).
func (s *LanguageSet) MarshalJSON() ([]byte, error) {
	if len(s.Meta) == 0 {
		codes := append([]string(nil), s.Codes...)
		sort.Strings(codes)
		return json.Marshal(codes)
	}
	obj := make(map[string]LanguageMeta, len(s.Codes))
	for _, c := range s.Codes {
		obj[c] = s.Meta[c]
	}
	return json.Marshal(obj)
}

// UnmarshalJSON accepts both legacy wire forms.
func (s *LanguageSet) UnmarshalJSON(data []byte) error {
	v := gjson.ParseBytes(data)
	switch {
	case v.IsArray():
		var codes []string
		if err := json.Unmarshal(data, &codes); err != nil {
			return err
		}
		s.Codes = codes
		s.Meta = nil
		return nil
	case v.IsObject():
		var obj map[string]LanguageMeta
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		codes := make([]string, 0, len(obj))
		for c := range obj {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		s.Codes = codes
		s.Meta = obj
		return nil
	default:
		return fmt.Errorf("unsupported language set shape")
	}
}

// Capability is one engine's capability data in either shape.
type Capability struct {
	Properties *Properties
	Languages  *LanguageSet
}

// MergeCodes flattens the capability to the engine-native codes the
// aggregator merges: region keys for the structured shape, the set itself
// for the legacy shape.
func (c *Capability) MergeCodes() []string {
	if c == nil {
		return nil
	}
	if c.Properties != nil {
		codes := make([]string, 0, len(c.Properties.Regions))
		for code := range c.Properties.Regions {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		return codes
	}
	if c.Languages != nil {
		return append([]string(nil), c.Languages.Codes...)
	}
	return nil
}

// MarshalJSON emits the tagged object for the structured shape and the plain
// legacy form otherwise.
func (c *Capability) MarshalJSON() ([]byte, error) {
	if c.Properties != nil {
		return json.Marshal(struct {
			Type      string            `json:"type"`
			Languages map[string]string `json:"languages"`
			Regions   map[string]string `json:"regions"`
		}{propertiesType, c.Properties.Languages, c.Properties.Regions})
	}
	return json.Marshal(c.Languages)
}

// UnmarshalJSON sniffs the shape: an object tagged type=engine_properties is
// structured, anything else is legacy.
func (c *Capability) UnmarshalJSON(data []byte) error {
	if gjson.GetBytes(data, "type").String() == propertiesType {
		props := NewProperties()
		if langs := gjson.GetBytes(data, "languages"); langs.IsObject() {
			if err := json.Unmarshal([]byte(langs.Raw), &props.Languages); err != nil {
				return err
			}
		}
		if regions := gjson.GetBytes(data, "regions"); regions.IsObject() {
			if err := json.Unmarshal([]byte(regions.Raw), &props.Regions); err != nil {
				return err
			}
		}
		c.Properties = props
		c.Languages = nil
		return nil
	}
	var set LanguageSet
	if err := json.Unmarshal(data, &set); err != nil {
		return err
	}
	c.Languages = &set
	c.Properties = nil
	return nil
}

// CapabilityData maps an engine name to its capability data. It is both the
// artifact the aggregator writes and the global language-data table the
// loader reads back.
type CapabilityData map[string]*Capability

// LoadCapabilityFile reads a capability artifact. A missing file is not an
// error: the loader then runs without language data, as on a first install.
func LoadCapabilityFile(path string) (CapabilityData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return CapabilityData{}, nil
		}
		return nil, fmt.Errorf("failed to read capability file '%s': %w", path, err)
	}
	var data CapabilityData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse capability file '%s': %w", path, err)
	}
	return data, nil
}
