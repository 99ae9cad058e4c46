package backend

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

type formField struct {
	name  string
	value string
}

type formFile struct {
	field       string
	filename    string
	contentType string
	path        string
	reader      io.Reader
}

// Multipart describes a multipart/form-data body. Fields and files keep
// insertion order; a field name may repeat.
type Multipart struct {
	fields []formField
	files  []formFile
}

// NewMultipart returns an empty form.
func NewMultipart() *Multipart {
	return &Multipart{}
}

// Field appends a text field.
func (m *Multipart) Field(name, value string) *Multipart {
	m.fields = append(m.fields, formField{name: name, value: value})
	return m
}

// File appends a file part read from path when the body is encoded.
func (m *Multipart) File(field, path string) *Multipart {
	m.files = append(m.files, formFile{
		field:       field,
		filename:    filepath.Base(path),
		contentType: contentTypeFor(path),
		path:        path,
	})
	return m
}

// Reader appends a file part read from r.
func (m *Multipart) Reader(field, filename, contentType string, r io.Reader) *Multipart {
	if contentType == "" {
		contentType = contentTypeFor(filename)
	}
	m.files = append(m.files, formFile{field: field, filename: filename, contentType: contentType, reader: r})
	return m
}

// FileCount returns the number of file parts.
func (m *Multipart) FileCount() int {
	return len(m.files)
}

// encode writes the form to w and returns the Content-Type header value.
func (m *Multipart) encode(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)
	for _, f := range m.fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	for _, f := range m.files {
		if err := writeFilePart(mw, f); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}
	return mw.FormDataContentType(), nil
}

func writeFilePart(mw *multipart.Writer, f formFile) error {
	src := f.reader
	if src == nil {
		file, err := os.Open(f.path)
		if err != nil {
			return Validation("cannot read file %s: %v", f.path, err)
		}
		defer file.Close()
		src = file
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(f.field), quoteEscaper.Replace(f.filename)))
	h.Set("Content-Type", f.contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", f.field, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy part %s: %w", f.field, err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
