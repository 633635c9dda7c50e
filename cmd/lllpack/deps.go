// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"lllpack/internal/dag"
	"lllpack/internal/issue"
	"lllpack/pkg/manifest"

	"github.com/spf13/cobra"
)

// workspaceLoader is the part of manifest.Workspace that installOrder needs.
type workspaceLoader interface {
	Load(name string) (*manifest.Manifest, error)
}

var (
	// depsShowOrder prints a dependency-respecting install order
	depsShowOrder bool

	// depsCmd resolves and prints a bundle's dependency closure
	depsCmd = &cobra.Command{
		Use:   "deps <bundle>",
		Short: "Show a bundle's resolved dependency closure",
		Long: `Resolve a bundle's manifest and print the transitive closure of
manifests and module contracts it pulls in.

With --order, manifests are additionally printed in an order where every
required bundle precedes its requirer.

Examples:
  lllpack deps core
  lllpack deps core --order`,
		Args: cobra.ExactArgs(1),
		RunE: runDeps,
	}
)

func init() {
	depsCmd.Flags().BoolVar(&depsShowOrder, "order", false, "print manifests in dependency-respecting install order")
}

func runDeps(cmd *cobra.Command, args []string) error {
	name := args[0]
	ws := newWorkspace()

	fmt.Println(TitleStyle.Render("Dependency Closure"))

	closure, err := ws.Resolve(name)
	if err != nil {
		resolveErr := issue.NewErrorContext().
			WithOperation("resolve dependencies").
			WithResource(name).
			WithSuggestion(fmt.Sprintf("Check that %s exists", ws.ManifestPath(name))).
			Wrap(err).
			BuildError()
		if errors.Is(err, manifest.ErrNotFound) {
			return &ExitError{Code: exitMissingInput, Err: resolveErr}
		}
		return resolveErr
	}

	manifests := closure.SortedManifests()
	modules := closure.SortedModules()

	fmt.Printf("%s Manifests (%d):\n", infoIcon, len(manifests))
	for _, m := range manifests {
		fmt.Printf("   %s %s\n", infoIcon, NameStyle.Render(m))
	}
	fmt.Println()
	fmt.Printf("%s Modules (%d):\n", infoIcon, len(modules))
	for _, m := range modules {
		fmt.Printf("   %s %s\n", infoIcon, NameStyle.Render(m))
	}

	if !depsShowOrder {
		return nil
	}

	order, err := installOrder(ws, manifests)
	if err != nil {
		var cycleErr *dag.CycleError
		if errors.As(err, &cycleErr) {
			fmt.Println()
			fmt.Printf("%s %v; falling back to name order\n", warningIcon, cycleErr)
			order = manifests
		} else {
			return err
		}
	}

	fmt.Println()
	fmt.Printf("%s Install order:\n", infoIcon)
	for i, m := range order {
		fmt.Printf("   %d. %s\n", i+1, NameStyle.Render(m))
	}

	return nil
}

// installOrder topologically sorts the closure's manifests so that every
// required bundle comes before the bundles that require it. The manifests are
// re-read to recover the edges the closure itself does not retain.
func installOrder(ws workspaceLoader, manifests []string) ([]string, error) {
	g := dag.New()
	for _, name := range manifests {
		g.AddNode(name)
		m, err := ws.Load(name)
		if err != nil {
			return nil, err
		}
		for _, req := range m.Requires {
			g.AddEdge(req, name)
		}
	}
	return g.InstallOrder()
}
