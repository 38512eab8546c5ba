package client

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
	"sync"
)

// FilePart is a file attached to a Form.
type FilePart struct {
	Name        string
	ContentType string
	Data        []byte
}

// Form is an ordered multipart/form-data body. It is encoded once and the
// same bytes are replayed by every upload attempt.
type Form struct {
	parts []formPart

	once        sync.Once
	body        []byte
	contentType string
	err         error
}

type formPart struct {
	name  string
	value string
	file  *FilePart
}

func NewForm() *Form { return &Form{} }

func (f *Form) AddField(name, value string) *Form {
	f.parts = append(f.parts, formPart{name: name, value: value})
	return f
}

func (f *Form) AddFile(name string, file FilePart) *Form {
	f.parts = append(f.parts, formPart{name: name, file: &file})
	return f
}

// Encode returns the encoded body and its Content-Type header value.
func (f *Form) Encode() ([]byte, string, error) {
	if f == nil {
		return nil, "", fmt.Errorf("encode form: nil form")
	}
	f.once.Do(func() {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for _, p := range f.parts {
			if p.file == nil {
				if err := w.WriteField(p.name, p.value); err != nil {
					f.err = fmt.Errorf("encode form field %s: %w", p.name, err)
					return
				}
				continue
			}
			pw, err := w.CreatePart(fileHeader(p.name, *p.file))
			if err != nil {
				f.err = fmt.Errorf("encode form file %s: %w", p.name, err)
				return
			}
			if _, err := pw.Write(p.file.Data); err != nil {
				f.err = fmt.Errorf("encode form file %s: %w", p.name, err)
				return
			}
		}
		if err := w.Close(); err != nil {
			f.err = fmt.Errorf("encode form: %w", err)
			return
		}
		f.body = buf.Bytes()
		f.contentType = w.FormDataContentType()
	})
	return f.body, f.contentType, f.err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(field string, file FilePart) textproto.MIMEHeader {
	ct := file.ContentType
	if ct == "" {
		ct = mime.TypeByExtension(filepath.Ext(file.Name))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(file.Name)))
	h.Set("Content-Type", ct)
	return h
}

// Percent is round(sent/total*100); ok is false when total is unknown.
func Percent(sent, total int64) (int, bool) {
	if total <= 0 {
		return 0, false
	}
	return int(math.Round(float64(sent) / float64(total) * 100)), true
}

// progressReader reports upload progress as the transport consumes the body.
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	last  int
	fn    func(int)
}

func newProgressReader(body []byte, fn func(int)) *progressReader {
	return &progressReader{r: bytes.NewReader(body), total: int64(len(body)), last: -1, fn: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.fn != nil {
		p.sent += int64(n)
		if pct, ok := Percent(p.sent, p.total); ok && pct != p.last {
			p.last = pct
			p.fn(pct)
		}
	}
	return n, err
}
