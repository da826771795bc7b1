package upsert

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/secret-dreams/fonts/core/catalog"
	"github.com/secret-dreams/fonts/core/store"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDir(t *testing.T, st *store.Store) string {
	t.Helper()
	dir := filepath.Join("/fonts", "example-sans")
	require.NoError(t, st.EnsureDir(dir))
	require.NoError(t, st.WriteFile(filepath.Join(dir, "example-sans-regular.woff"), []byte("woff-bytes")))
	require.NoError(t, st.WriteFile(filepath.Join(dir, "example-sans-regular.woff2"), []byte("woff2-bytes")))
	return dir
}

func testFamily() *catalog.Family {
	return &catalog.Family{
		Name:                 "Example Sans",
		DefaultVariantHandle: "example-sans-regular",
		Variants: []catalog.Variant{
			{
				Handle:    "example-sans-regular",
				Name:      "Example Sans",
				Style:     "normal",
				Provider:  "example",
				Weight:    400,
				Fallbacks: []string{"Helvetica", "sans-serif"},
				URLs: map[string]string{
					"woff":  "example-sans-regular.woff",
					"woff2": "example-sans-regular.woff2",
				},
			},
		},
	}
}

func fieldValues(p *Payload, name string) []string {
	var out []string
	for _, f := range p.Fields {
		if f.Name == name {
			out = append(out, f.Value)
		}
	}
	return out
}

func attachmentFields(p *Payload) []string {
	var out []string
	for _, a := range p.Attachments {
		out = append(out, a.Field)
	}
	return out
}

func TestBuildPayload_ScalarFields(t *testing.T) {
	st := store.New(afero.NewMemMapFs())
	dir := seedDir(t, st)
	family := testFamily()

	p, err := BuildPayload(st, dir, family, &family.Variants[0], true, "preview")
	require.NoError(t, err)

	assert.Equal(t, []string{"Example Sans"}, fieldValues(p, "name"))
	assert.Equal(t, []string{"example-sans-regular"}, fieldValues(p, "handle"))
	assert.Equal(t, []string{"true"}, fieldValues(p, "family_default"))
	assert.Equal(t, []string{"normal"}, fieldValues(p, "style"))
	assert.Equal(t, []string{"example"}, fieldValues(p, "provider"))
	assert.Equal(t, []string{"400"}, fieldValues(p, "weight"))
	assert.Equal(t, []string{"Helvetica", "sans-serif"}, fieldValues(p, "fallbacks[]"))
}

func TestBuildPayload_FamilyDefaultFalse(t *testing.T) {
	st := store.New(afero.NewMemMapFs())
	dir := seedDir(t, st)
	family := testFamily()
	family.DefaultVariantHandle = "example-sans-bold"

	p, err := BuildPayload(st, dir, family, &family.Variants[0], true, "preview")
	require.NoError(t, err)

	assert.Equal(t, []string{"false"}, fieldValues(p, "family_default"))
}

func TestBuildPayload_SparseOmission(t *testing.T) {
	st := store.New(afero.NewMemMapFs())
	dir := filepath.Join("/fonts", "bare")
	require.NoError(t, st.EnsureDir(dir))
	require.NoError(t, st.WriteFile(filepath.Join(dir, "bare-regular.woff"), []byte("x")))

	family := &catalog.Family{Name: "Bare"}
	variant := &catalog.Variant{
		Handle: "bare-regular",
		URLs:   map[string]string{"woff": "bare-regular.woff"},
	}

	p, err := BuildPayload(st, dir, family, variant, true, "preview")
	require.NoError(t, err)

	// Empty scalars and the zero weight are omitted entirely.
	assert.Empty(t, fieldValues(p, "name"))
	assert.Empty(t, fieldValues(p, "style"))
	assert.Empty(t, fieldValues(p, "provider"))
	assert.Empty(t, fieldValues(p, "weight"))
	assert.Empty(t, fieldValues(p, "fallbacks[]"))

	// Only the declared woff is attached: no woff2, previews or image.
	assert.Equal(t, []string{"woff"}, attachmentFields(p))
}

func TestBuildPayload_OptionalAttachments(t *testing.T) {
	st := store.New(afero.NewMemMapFs())
	dir := seedDir(t, st)
	family := testFamily()

	// Preview fonts and image preview present on disk ride along.
	require.NoError(t, st.WriteFile(filepath.Join(dir, "preview_example-sans-regular.woff"), []byte("p")))
	require.NoError(t, st.WriteFile(filepath.Join(dir, "example-sans-regular.png"), []byte("png")))

	p, err := BuildPayload(st, dir, family, &family.Variants[0], true, "preview")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"woff", "preview_woff", "woff2", "image_preview"}, attachmentFields(p))
}

func TestBuildPayload_ImageToggleOff(t *testing.T) {
	st := store.New(afero.NewMemMapFs())
	dir := seedDir(t, st)
	family := testFamily()
	require.NoError(t, st.WriteFile(filepath.Join(dir, "example-sans-regular.png"), []byte("png")))

	p, err := BuildPayload(st, dir, family, &family.Variants[0], false, "preview")
	require.NoError(t, err)

	assert.NotContains(t, attachmentFields(p), "image_preview")
}

func TestBuildPayload_MissingDeclaredBinary(t *testing.T) {
	st := store.New(afero.NewMemMapFs())
	dir := filepath.Join("/fonts", "hollow")
	require.NoError(t, st.EnsureDir(dir))

	family := &catalog.Family{Name: "Hollow"}
	variant := &catalog.Variant{
		Handle: "hollow-regular",
		URLs:   map[string]string{"woff": "hollow-regular.woff"},
	}

	_, err := BuildPayload(st, dir, family, variant, true, "preview")
	assert.Error(t, err)
}

func TestPayload_Encode(t *testing.T) {
	st := store.New(afero.NewMemMapFs())
	dir := seedDir(t, st)
	family := testFamily()

	p, err := BuildPayload(st, dir, family, &family.Variants[0], true, "preview")
	require.NoError(t, err)

	body, contentType, err := p.Encode(st)
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	parts := map[string]struct {
		contentType string
		data        string
	}{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		parts[part.FormName()] = struct {
			contentType string
			data        string
		}{part.Header.Get("Content-Type"), string(data)}
	}

	assert.Equal(t, "example-sans-regular", parts["handle"].data)
	assert.Equal(t, "woff-bytes", parts["woff"].data)
	assert.Equal(t, "font/woff", parts["woff"].contentType)
	assert.Equal(t, "woff2-bytes", parts["woff2"].data)
	assert.Equal(t, "font/woff2", parts["woff2"].contentType)
}
