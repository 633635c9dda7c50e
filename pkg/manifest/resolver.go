// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"maps"
	"slices"
)

// Closure is the result of dependency resolution: the set of manifest names
// reachable from a root (including the root itself) and the union of all
// module names those manifests declare. Both are sets; duplicates collapse
// and discovery order is not observable. Consumers that need a stable order
// use the Sorted accessors.
type Closure struct {
	Manifests map[string]struct{}
	Modules   map[string]struct{}
}

// SortedManifests returns the manifest names in lexicographic order.
func (c *Closure) SortedManifests() []string {
	return slices.Sorted(maps.Keys(c.Manifests))
}

// SortedModules returns the module names in lexicographic order.
func (c *Closure) SortedModules() []string {
	return slices.Sorted(maps.Keys(c.Modules))
}

// Resolve computes the full dependency closure of the root manifest via
// depth-first traversal of the "requires" relation. Each manifest is parsed
// at most once: the visited set doubles as the diamond-dependency guard and
// the cycle terminator, so resolution finishes even when the requires graph
// is cyclic. The result is independent of traversal order.
func (ws *Workspace) Resolve(root string) (*Closure, error) {
	c := &Closure{
		Manifests: make(map[string]struct{}),
		Modules:   make(map[string]struct{}),
	}

	var visit func(name string) error
	visit = func(name string) error {
		if _, seen := c.Manifests[name]; seen {
			return nil
		}
		c.Manifests[name] = struct{}{}

		m, err := ws.Load(name)
		if err != nil {
			return err
		}
		for _, mod := range m.Modules {
			c.Modules[mod] = struct{}{}
		}
		for _, req := range m.Requires {
			if err := visit(req); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return c, nil
}
