// SPDX-License-Identifier: MPL-2.0

// Package dag orders manifests so that required manifests come before the
// manifests that require them. It is used by the deps command to print an
// install order for a resolved closure.
package dag

import (
	"fmt"
	"strings"
)

type (
	// CycleError indicates the requires graph contains a cycle, so no install
	// order exists.
	CycleError struct {
		// Cycle holds nodes involved in the cycle (enough of them to point at
		// the problem, not necessarily the full cycle).
		Cycle []string
	}

	// Graph is a directed graph over manifest names. An edge from A to B
	// means A must be installed before B.
	Graph struct {
		// edges maps each node to the nodes that depend on it.
		edges map[string][]string
		// nodes keeps insertion order so the computed order is deterministic.
		nodes []string
		// nodeSet gives O(1) membership checks.
		nodeSet map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		edges:   make(map[string][]string),
		nodeSet: make(map[string]bool),
	}
}

// AddNode adds a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge records that before must be installed ahead of after. Both nodes
// are added implicitly.
func (g *Graph) AddEdge(before, after string) {
	g.AddNode(before)
	g.AddNode(after)
	g.edges[before] = append(g.edges[before], after)
}

// InstallOrder returns a requires-respecting order using Kahn's algorithm.
// Nodes at the same level appear in the order they were first added. Returns
// CycleError when the graph has a cycle.
func (g *Graph) InstallOrder() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		inDegree[node] = 0
	}
	for _, dependents := range g.edges {
		for _, dep := range dependents {
			inDegree[dep]++
		}
	}

	queue := make([]string, 0, len(g.nodes))
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var order []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, dep := range g.edges[node] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != len(g.nodes) {
		// Whatever still has incoming edges is part of a cycle.
		var cycleNodes []string
		for _, node := range g.nodes {
			if inDegree[node] > 0 {
				cycleNodes = append(cycleNodes, node)
			}
		}
		return nil, &CycleError{Cycle: cycleNodes}
	}

	return order, nil
}
