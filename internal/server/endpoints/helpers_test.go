package endpoints

import (
	"reflect"
	"testing"
)

func TestImageContentType(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		filename    string
		want        string
	}{
		{"plain jpeg", "image/jpeg", "id.jpg", "image/jpeg"},
		{"jpg alias accepted", "image/jpg", "id.jpg", "image/jpg"},
		{"charset parameter stripped", "image/png; charset=binary", "id.png", "image/png"},
		{"uppercase normalized", "IMAGE/PNG", "id.png", "image/png"},
		{"octet-stream falls back to extension", "application/octet-stream", "id.webp", "image/webp"},
		{"empty type falls back to extension", "", "scan.TIFF", "image/tiff"},
		{"pdf rejected", "application/pdf", "doc.pdf", ""},
		{"unknown extension rejected", "", "doc.txt", ""},
		{"declared type wins over extension", "text/plain", "id.png", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := &upload{Filename: tc.filename, ContentType: tc.contentType}
			if got := imageContentType(u); got != tc.want {
				t.Errorf("imageContentType(%q, %q) = %q, want %q", tc.contentType, tc.filename, got, tc.want)
			}
		})
	}
}

func TestIsPDFUpload(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		filename    string
		want        bool
	}{
		{"declared pdf", "application/pdf", "doc.pdf", true},
		{"pdf with parameters", "application/pdf; charset=binary", "doc.pdf", true},
		{"octet-stream with pdf extension", "application/octet-stream", "doc.PDF", true},
		{"empty type with pdf extension", "", "doc.pdf", true},
		{"image is not pdf", "image/png", "doc.pdf", false},
		{"no signal at all", "", "doc.txt", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := &upload{Filename: tc.filename, ContentType: tc.contentType}
			if got := isPDFUpload(u); got != tc.want {
				t.Errorf("isPDFUpload(%q, %q) = %v, want %v", tc.contentType, tc.filename, got, tc.want)
			}
		})
	}
}

func TestParseLanguages(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"en", []string{"en"}},
		{"en,fr", []string{"en", "fr"}},
		{" en , fr ,", []string{"en", "fr"}},
		{",,", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := parseLanguages(tc.in)
			if tc.want == nil {
				if got != nil {
					t.Errorf("parseLanguages(%q) = %v, want nil", tc.in, got)
				}
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("parseLanguages(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
