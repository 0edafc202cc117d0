package pipeline

import (
	"context"
	"fmt"

	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/integrity"
	"github.com/Rana718/dataforge/internal/table"
)

// Report is the outcome of Verify for one output directory.
type Report struct {
	Loaded []string
	Absent []string
	// Violations holds the broken foreign keys per domain. Unresolved
	// violations point at an entity whose owning domain is not on disk.
	Violations map[string][]integrity.Violation
}

// Broken counts the violations that name a concrete key.
func (r *Report) Broken() int {
	n := 0
	for _, vs := range r.Violations {
		for _, v := range vs {
			if !v.Unresolved {
				n++
			}
		}
	}
	return n
}

// Unresolved counts the foreign keys that could not be checked.
func (r *Report) Unresolved() int {
	n := 0
	for _, vs := range r.Violations {
		for _, v := range vs {
			if v.Unresolved {
				n++
			}
		}
	}
	return n
}

// Verify reads every domain present in store and checks all of their
// foreign keys against the keys the stored tables publish. Domains are read
// in dependency order so shared entities resolve the same way they did
// during generation.
func Verify(ctx context.Context, domains []Domain, store Store) (*Report, error) {
	if store == nil {
		return nil, fmt.Errorf("pipeline: no store configured")
	}

	graph := NewDependencyGraph()
	byName := make(map[string]Domain, len(domains))
	for _, d := range domains {
		byName[d.Name()] = d
		graph.Add(d.Name(), d.DependsOn())
	}
	order, err := graph.BuildOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build domain order: %w", err)
	}

	space := identity.NewSpace()
	report := &Report{Violations: make(map[string][]integrity.Violation)}
	loaded := make(map[string][]*table.Table, len(order))
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dm, tables, err := readBack(byName[name], store, space)
		if err != nil {
			return nil, err
		}
		if dm.Source == SourceAbsent {
			report.Absent = append(report.Absent, name)
			continue
		}
		report.Loaded = append(report.Loaded, name)
		loaded[name] = tables
	}

	for _, name := range report.Loaded {
		if vs := integrity.Check(space, loaded[name]); len(vs) > 0 {
			report.Violations[name] = vs
		}
	}
	return report, nil
}
