package upsert

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strconv"

	"github.com/secret-dreams/fonts/core/catalog"
	"github.com/secret-dreams/fonts/core/store"
)

// Field is one scalar multipart field. Fields keep declaration order so
// payload encoding is deterministic.
type Field struct {
	Name  string
	Value string
}

// Attachment is one binary multipart part, read from the store at encode
// time.
type Attachment struct {
	Field       string
	Path        string
	ContentType string
}

// Payload is the upload body for one variant. Absent values are omitted
// entirely rather than sent empty.
type Payload struct {
	Handle      string
	Fields      []Field
	Attachments []Attachment
}

// BuildPayload assembles the sparse upload payload for one variant of a
// family directory: scalar fields from the manifest, the woff/woff2
// binaries, and any preview artifacts present on disk.
func BuildPayload(st *store.Store, dir string, family *catalog.Family, variant *catalog.Variant, includeImage bool, prefix string) (*Payload, error) {
	p := &Payload{Handle: variant.Handle}

	p.addField("name", variant.Name)
	p.addField("handle", variant.Handle)
	p.addField("family", variant.Family)
	p.addField("family_default", strconv.FormatBool(family.IsDefault(variant.Handle)))
	p.addField("style", variant.Style)
	p.addField("provider", variant.Provider)
	if variant.Weight != 0 {
		p.addField("weight", strconv.Itoa(int(variant.Weight)))
	}
	for _, fb := range variant.Fallbacks {
		p.Fields = append(p.Fields, Field{Name: "fallbacks[]", Value: fb})
	}

	for _, format := range []string{"woff", "woff2"} {
		rel, ok := variant.URLs[format]
		if !ok || rel == "" {
			continue
		}
		path := filepath.Join(dir, rel)
		if !st.Exists(path) {
			return nil, fmt.Errorf("variant %s declares %s but %s is missing", variant.Handle, format, path)
		}
		p.Attachments = append(p.Attachments, Attachment{
			Field:       format,
			Path:        path,
			ContentType: "font/" + format,
		})

		// Subsetted preview fonts ride along when present.
		if preview := st.PrefixedPath(path, prefix); st.Exists(preview) {
			p.Attachments = append(p.Attachments, Attachment{
				Field:       "preview_" + format,
				Path:        preview,
				ContentType: "font/" + format,
			})
		}
	}

	if includeImage {
		if image := filepath.Join(dir, variant.Handle+".png"); st.Exists(image) {
			p.Attachments = append(p.Attachments, Attachment{
				Field:       "image_preview",
				Path:        image,
				ContentType: "image/png",
			})
		}
	}

	return p, nil
}

func (p *Payload) addField(name, value string) {
	if value == "" {
		return
	}
	p.Fields = append(p.Fields, Field{Name: name, Value: value})
}

// Encode renders the payload as a multipart/form-data body. Called once per
// POST attempt, since a retried request needs a fresh body.
func (p *Payload) Encode(st *store.Store) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range p.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}

	for _, a := range p.Attachments {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, a.Field, filepath.Base(a.Path)))
		header.Set("Content-Type", a.ContentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}

		file, err := st.Fs().Open(a.Path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open attachment %s: %w", a.Path, err)
		}
		_, err = io.Copy(part, file)
		file.Close()
		if err != nil {
			return nil, "", fmt.Errorf("failed to read attachment %s: %w", a.Path, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
