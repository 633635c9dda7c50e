// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Section keys recognized by the parser. Any other top-level key closes
// section tracking until a recognized section reopens.
const (
	sectionModules  = "modules"
	sectionRequires = "requires"
)

// Parse reads one manifest from r. The format is line-oriented:
//
//	modules:
//	  - module_a
//	  - module_b  # inline comment
//	requires:
//	  - other_manifest
//
// Blank lines and full-line comments are skipped. A "key:" line opens a
// section; only "modules" and "requires" are recognized, and "- " entries
// under any other key are ignored. Entry text after the first "#" is stripped,
// surrounding whitespace is trimmed, and entries that end up empty are
// dropped. Entry order is preserved.
func Parse(name string, r io.Reader) (*Manifest, error) {
	m := &Manifest{Name: name}

	// Active section; empty while no recognized section is open.
	section := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasSuffix(line, ":") && !strings.HasPrefix(line, "-") {
			key := strings.TrimSpace(strings.TrimSuffix(line, ":"))
			switch key {
			case sectionModules, sectionRequires:
				section = key
			default:
				section = ""
			}
			continue
		}

		if section == "" {
			continue
		}

		entry, ok := strings.CutPrefix(line, "- ")
		if !ok {
			continue
		}
		if i := strings.Index(entry, "#"); i >= 0 {
			entry = entry[:i]
		}
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if section == sectionModules {
			m.Modules = append(m.Modules, entry)
		} else {
			m.Requires = append(m.Requires, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", name, err)
	}

	return m, nil
}
