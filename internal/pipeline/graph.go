package pipeline

import "fmt"

// DependencyGraph orders domains so that every domain runs after the
// domains it reads from. Ties are broken by registration order, which keeps
// the run order stable across processes.
type DependencyGraph struct {
	deps  map[string][]string
	names []string
	order []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		deps: make(map[string][]string),
	}
}

func (g *DependencyGraph) Add(name string, dependsOn []string) {
	if _, exists := g.deps[name]; !exists {
		g.names = append(g.names, name)
	}
	g.deps[name] = dependsOn
}

func (g *DependencyGraph) BuildOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if temp[name] {
			return fmt.Errorf("circular dependency detected involving domain: %s", name)
		}
		if visited[name] {
			return nil
		}

		deps, known := g.deps[name]
		if !known {
			return fmt.Errorf("unknown domain: %s", name)
		}

		temp[name] = true
		for _, dep := range deps {
			if dep == name {
				continue
			}
			if _, ok := g.deps[dep]; !ok {
				return fmt.Errorf("domain %s depends on unknown domain %s", name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		temp[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range g.names {
		if !visited[name] {
			if err := visit(name); err != nil {
				return nil, err
			}
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}
