// SPDX-License-Identifier: MPL-2.0

package cueutil_test

import (
	"strings"
	"testing"

	"patbundle-cli/internal/cueutil"
)

const testSchema = `
#Thing: {
	name:  string & !=""
	count: int & >=0
	tags?: [...string]
}
`

type thing struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func TestParseAndDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		check   func(t *testing.T, v *thing)
	}{
		{
			name: "valid document",
			data: `name: "bundle", count: 3, tags: ["a", "b"]`,
			check: func(t *testing.T, v *thing) {
				if v.Name != "bundle" || v.Count != 3 || len(v.Tags) != 2 {
					t.Errorf("unexpected decode result: %+v", v)
				}
			},
		},
		{
			name:    "schema violation rejected",
			data:    `name: "", count: 1`,
			wantErr: true,
		},
		{
			name:    "wrong type rejected",
			data:    `name: "x", count: "many"`,
			wantErr: true,
		},
		{
			name:    "syntax error rejected",
			data:    `name: "x" count:`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := cueutil.ParseAndDecode[thing](
				[]byte(testSchema),
				[]byte(tt.data),
				"#Thing",
				cueutil.WithFilename("thing.cue"),
			)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAndDecode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !strings.Contains(err.Error(), "thing.cue") {
					t.Errorf("error %q does not mention the file name", err)
				}
				return
			}
			if tt.check != nil {
				tt.check(t, result.Value)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	if err := cueutil.CheckFileSize(make([]byte, 10), 10, "f.cue"); err != nil {
		t.Errorf("size at limit should pass, got %v", err)
	}
	if err := cueutil.CheckFileSize(make([]byte, 11), 10, "f.cue"); err == nil {
		t.Error("size over limit should fail")
	}
}
