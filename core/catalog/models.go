package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Feed is the remote manifest document listing all font families.
type Feed struct {
	FontFamilies []Family `json:"font_families"`
}

// Family is one font family: a name plus its ordered variants. The same
// struct is decoded from the feed and persisted as the on-disk manifest.
type Family struct {
	Name                 string    `json:"name"`
	DefaultVariantHandle string    `json:"default_variant_handle,omitempty"`
	Variants             []Variant `json:"variants"`
}

// Variant is one weight/style instance of a family. In the feed, URLs maps
// format tags to source URIs; after fetch it maps format tags to filenames
// relative to the family directory. PreviewURLs only ever appears in the
// feed; the fetcher drops it before persisting.
type Variant struct {
	Handle      string            `json:"handle"`
	Name        string            `json:"name,omitempty"`
	Family      string            `json:"family,omitempty"`
	Style       string            `json:"style,omitempty"`
	Provider    string            `json:"provider,omitempty"`
	Weight      Weight            `json:"weight,omitempty"`
	Fallbacks   []string          `json:"fallbacks,omitempty"`
	URLs        map[string]string `json:"urls,omitempty"`
	PreviewURLs map[string]string `json:"preview_urls,omitempty"`
}

// Weight is a font weight. Feeds are inconsistent about the field's type
// (400 vs "400"), so it decodes from either and re-marshals as a number.
type Weight int

func (w *Weight) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*w = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid weight %q: %w", s, err)
	}
	*w = Weight(n)
	return nil
}

func (w Weight) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(w))
}

// IsDefault reports whether variant handle is the family's declared default.
func (f *Family) IsDefault(handle string) bool {
	return f.DefaultVariantHandle != "" && handle == f.DefaultVariantHandle
}
