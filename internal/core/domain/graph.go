package domain

import (
	"slices"
	"strings"
	"sync"

	"go.trai.ch/zerr"
)

// DependencyGraph records the instantiation edges discovered by the most
// recent elaboration pass of each model. Edges are replaced, never merged,
// so the graph always reflects the latest content of every document.
type DependencyGraph struct {
	mu    sync.RWMutex
	edges map[ModelKey][]ModelKey
}

// NewDependencyGraph creates a new empty DependencyGraph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		edges: make(map[ModelKey][]ModelKey),
	}
}

// SetDependencies replaces the recorded dependencies of key.
func (g *DependencyGraph) SetDependencies(key ModelKey, deps []ModelKey) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(deps) == 0 {
		delete(g.edges, key)
		return
	}
	g.edges[key] = slices.Clone(deps)
}

// Dependencies returns the recorded dependencies of key in discovery order.
func (g *DependencyGraph) Dependencies(key ModelKey) []ModelKey {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.edges[key])
}

// Clear removes every recorded edge.
func (g *DependencyGraph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edges = make(map[ModelKey][]ModelKey)
}

// FindCycle reports the cycle closed by a new edge from -> to, if any.
// It walks the recorded edges depth-first from to; when from is reachable
// the returned error wraps ErrCycleDetected and carries the cycle path
// under the "cycle" key, e.g. "a -> b -> a".
func (g *DependencyGraph) FindCycle(from, to ModelKey) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if from == to {
		return g.buildCycleError([]ModelKey{from}, from)
	}

	visited := make(map[ModelKey]int) // 0: unvisited, 1: visiting, 2: visited
	path := []ModelKey{from}

	var visit func(u ModelKey) bool
	visit = func(u ModelKey) bool {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.edges[u] {
			if dep == from {
				return true
			}
			if visited[dep] == 0 && visit(dep) {
				return true
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		return false
	}

	if visit(to) {
		return g.buildCycleError(path, from)
	}
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *DependencyGraph) buildCycleError(path []ModelKey, closing ModelKey) error {
	parts := make([]string, 0, len(path)+1)
	for _, node := range path {
		parts = append(parts, node.String())
	}
	parts = append(parts, closing.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "instantiation cycle"), "cycle", strings.Join(parts, " -> "))
}
