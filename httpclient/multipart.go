package httpclient

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
)

// MultipartBody is a multipart/form-data request body.
type MultipartBody struct {
	// Fields are simple form fields, written in key order.
	Fields map[string]string
	// Files are written after the fields, in slice order.
	Files []FileField
}

// FileField is a file part of a multipart body.
type FileField struct {
	FieldName string
	FileName  string
	// ContentType defaults to application/octet-stream.
	ContentType string
	// Data is the file content. Reader is used when Data is nil.
	Data   []byte
	Reader io.Reader
}

// Encode renders the body and returns it with its Content-Type header value,
// which carries the boundary.
func (m *MultipartBody) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return nil, "", err
		}
	}

	for _, f := range m.Files {
		var part io.Writer
		var err error
		if f.ContentType != "" {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				`form-data; name="`+escapeQuotes(f.FieldName)+`"; filename="`+escapeQuotes(f.FileName)+`"`)
			header.Set("Content-Type", f.ContentType)
			part, err = w.CreatePart(header)
		} else {
			part, err = w.CreateFormFile(f.FieldName, f.FileName)
		}
		if err != nil {
			return nil, "", err
		}

		switch {
		case f.Data != nil:
			_, err = part.Write(f.Data)
		case f.Reader != nil:
			_, err = io.Copy(part, f.Reader)
		}
		if err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
