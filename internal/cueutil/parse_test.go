// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const layoutSchema = `
#Layout: {
	files: [...string]
	dirs?: [...string]
	strict?: bool
}
`

type layout struct {
	Files  []string `json:"files"`
	Dirs   []string `json:"dirs,omitempty"`
	Strict bool     `json:"strict,omitempty"`
}

func TestParseOptions(t *testing.T) {
	t.Run("defaults require concrete values", func(t *testing.T) {
		opts := defaultOptions()
		if !opts.concrete {
			t.Error("default should require concrete values")
		}
		if opts.maxFileSize != DefaultMaxFileSize {
			t.Errorf("default max size = %d, want %d", opts.maxFileSize, DefaultMaxFileSize)
		}
	})

	t.Run("options apply in order", func(t *testing.T) {
		opts := defaultOptions()
		for _, o := range []Option{WithConcrete(false), WithFilename("layout.cue"), WithMaxFileSize(64)} {
			o(&opts)
		}
		if opts.concrete || opts.filename != "layout.cue" || opts.maxFileSize != 64 {
			t.Errorf("options not applied: %+v", opts)
		}
	})
}

func TestParseAndDecodeConcreteness(t *testing.T) {
	// A document leaving optional fields unset is only valid when the
	// caller relaxes concreteness, as the config loader does.
	data := []byte(`files: ["PATTERNS.md"]`)

	if _, err := ParseAndDecode[layout]([]byte(layoutSchema), data, "#Layout", WithConcrete(false)); err != nil {
		t.Fatalf("ParseAndDecode with WithConcrete(false) failed: %v", err)
	}

	result, err := ParseAndDecode[layout]([]byte(layoutSchema), data, "#Layout", WithConcrete(false))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Value.Files) != 1 || result.Value.Strict {
		t.Errorf("unexpected decode result: %+v", result.Value)
	}
}

func TestParseAndDecodeSizeLimit(t *testing.T) {
	data := []byte(`files: ["PATTERNS.md", "README.md"]`)

	if _, err := ParseAndDecode[layout]([]byte(layoutSchema), data, "#Layout", WithMaxFileSize(1024)); err != nil {
		t.Errorf("document within limit rejected: %v", err)
	}

	_, err := ParseAndDecode[layout]([]byte(layoutSchema), data, "#Layout", WithMaxFileSize(8))
	if err == nil {
		t.Fatal("document over limit accepted")
	}
	if !strings.Contains(err.Error(), "size") {
		t.Errorf("error = %q, want size mention", err)
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		name string
		path []string
		want string
	}{
		{name: "empty", path: nil, want: ""},
		{name: "single field", path: []string{"files"}, want: "files"},
		{name: "nested field", path: []string{"optional", "0", "dir"}, want: "optional[0].dir"},
		{name: "deep index", path: []string{"required", "files", "2"}, want: "required.files[2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPath(tt.path); got != tt.want {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
