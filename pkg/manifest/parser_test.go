// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"slices"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantModules  []string
		wantRequires []string
	}{
		{
			name: "modules and requires",
			input: `modules:
  - module_a
  - module_b
requires:
  - base
`,
			wantModules:  []string{"module_a", "module_b"},
			wantRequires: []string{"base"},
		},
		{
			name: "inline comment stripped",
			input: `modules:
  - m1  # shipped since v2
`,
			wantModules: []string{"m1"},
		},
		{
			name: "blank lines and full-line comments skipped",
			input: `
# top comment
modules:

  # between entries
  - m1
`,
			wantModules: []string{"m1"},
		},
		{
			name: "entries under unrecognized key ignored",
			input: `notes:
  - not a module
modules:
  - m1
`,
			wantModules: []string{"m1"},
		},
		{
			name: "unrecognized key closes an open section",
			input: `modules:
  - m1
notes:
  - stray
requires:
  - base
`,
			wantModules:  []string{"m1"},
			wantRequires: []string{"base"},
		},
		{
			name: "entry that is only a comment is dropped",
			input: `modules:
  - # nothing here
  - m1
`,
			wantModules: []string{"m1"},
		},
		{
			name: "entries before any section ignored",
			input: `  - stray
modules:
  - m1
`,
			wantModules: []string{"m1"},
		},
		{
			name: "order preserved",
			input: `modules:
  - zeta
  - alpha
  - mid
`,
			wantModules: []string{"zeta", "alpha", "mid"},
		},
		{
			name:  "empty manifest",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse("test", strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			if !slices.Equal(m.Modules, tt.wantModules) {
				t.Errorf("Modules = %v, want %v", m.Modules, tt.wantModules)
			}
			if !slices.Equal(m.Requires, tt.wantRequires) {
				t.Errorf("Requires = %v, want %v", m.Requires, tt.wantRequires)
			}
		})
	}
}

func TestParse_DuplicatesPreservedInOrder(t *testing.T) {
	// The parser does not deduplicate; that happens during resolution.
	input := `modules:
  - m1
  - m1
`
	m, err := Parse("test", strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if !slices.Equal(m.Modules, []string{"m1", "m1"}) {
		t.Errorf("Modules = %v, want duplicates preserved", m.Modules)
	}
}
