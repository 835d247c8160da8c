package manifest

import (
	"fmt"
	"sort"
	"strings"
)

// PublishOrder returns the publishable members sorted so that every member
// appears after the workspace members it depends on. Members that opted
// out of publishing are skipped (their dependents still order against
// them being absent). Ties break alphabetically for stable output; a
// dependency cycle is an error.
func (w *Workspace) PublishOrder() ([]*Manifest, error) {
	byName := make(map[string]*Manifest, len(w.Members))
	for _, m := range w.Members {
		byName[m.Name] = m
	}

	// Intra-workspace edges: a path dependency counts only when it names
	// another member.
	indegree := make(map[string]int, len(w.Members))
	dependents := make(map[string][]string, len(w.Members))
	for _, m := range w.Members {
		indegree[m.Name] = 0
	}
	for _, m := range w.Members {
		for _, dep := range m.PathDeps {
			if _, ok := byName[dep]; !ok {
				continue
			}
			dependents[dep] = append(dependents[dep], m.Name)
			indegree[m.Name]++
		}
	}

	// Kahn's algorithm with a sorted ready set for deterministic order.
	var ready []string
	for name, deg := range indegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	var order []*Manifest
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]

		if m := byName[name]; m.Publish {
			order = append(order, m)
		}

		inserted := false
		for _, dependent := range dependents[name] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
				inserted = true
			}
		}
		if inserted {
			sort.Strings(ready)
		}
	}

	if remaining := cycleMembers(indegree); len(remaining) > 0 {
		return nil, &ParseError{Message: fmt.Sprintf("dependency cycle among workspace members: %s", strings.Join(remaining, ", "))}
	}

	return order, nil
}

// cycleMembers returns the names left with unresolved dependencies, sorted.
func cycleMembers(indegree map[string]int) []string {
	var names []string
	for name, deg := range indegree {
		if deg > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
