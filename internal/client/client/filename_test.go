package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilenameFromDisposition(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"extended with charset", `attachment; filename*=UTF-8''%D0%B7%D0%B0%D1%8F%D0%B2%D0%BA%D0%B0.xlsx`, "заявка.xlsx", true},
		{"extended wins over plain", `attachment; filename="plain.pdf"; filename*=UTF-8''real.pdf`, "real.pdf", true},
		{"extended without charset", `attachment; filename*=report%202024.pdf`, "report 2024.pdf", true},
		{"extended quoted", `attachment; filename*="UTF-8''a%20b.txt"`, "a b.txt", true},
		{"lowercase charset", `attachment; filename*=utf-8''x.csv`, "x.csv", true},
		{"quoted plain", `attachment; filename="services.xlsx"`, "services.xlsx", true},
		{"bare plain", `attachment; filename=prajs-birka.pdf`, "prajs-birka.pdf", true},
		{"case-insensitive name", `attachment; FILENAME="A.PDF"`, "A.PDF", true},
		{"semicolon inside quotes", `attachment; filename="act;2024.pdf"`, "act;2024.pdf", true},
		{"semicolon inside quoted extended", `attachment; filename*="UTF-8''a;b.txt"; filename="x.txt"`, "a;b.txt", true},
		{"bad escape kept raw", `attachment; filename*=UTF-8''100%zz.txt`, "100%zz.txt", true},
		{"no filename", `inline`, "", false},
		{"empty header", ``, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FilenameFromDisposition(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
