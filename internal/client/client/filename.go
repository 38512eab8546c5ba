package client

import (
	"net/url"
	"strings"
)

// FilenameFromDisposition extracts a file name from a Content-Disposition
// header. The extended filename*= form wins over filename=; its optional
// UTF-8'' prefix is dropped and the value percent-decoded.
func FilenameFromDisposition(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	if v, ok := dispositionParam(header, "filename*"); ok {
		if len(v) >= 7 && strings.EqualFold(v[:7], "UTF-8''") {
			v = strings.Trim(v[7:], `"`)
		}
		if dec, err := url.PathUnescape(v); err == nil {
			v = dec
		}
		if v != "" {
			return v, true
		}
	}

	if v, ok := dispositionParam(header, "filename"); ok && v != "" {
		return v, true
	}
	return "", false
}

// dispositionParam finds name=value among the ';'-separated parameters. The
// value may be quoted; a ';' inside quotes does not end it.
func dispositionParam(header, name string) (string, bool) {
	for _, part := range splitParams(header) {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), name) {
			continue
		}
		v = strings.TrimSpace(v)
		if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
			v = v[1 : len(v)-1]
		}
		return v, true
	}
	return "", false
}

func splitParams(header string) []string {
	var (
		parts  []string
		quoted bool
		start  int
	)
	for i := 0; i < len(header); i++ {
		switch header[i] {
		case '"':
			quoted = !quoted
		case ';':
			if !quoted {
				parts = append(parts, header[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, header[start:])
}
