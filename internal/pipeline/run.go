package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/dataforge/internal/config"
	"github.com/Rana718/dataforge/internal/export"
	"github.com/Rana718/dataforge/internal/fake"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/integrity"
	"github.com/Rana718/dataforge/internal/table"
)

// Store is where domains are written to and read back from.
type Store interface {
	WriteDomain(domain string, tables []*table.Table) error
	ReadDomain(domain string, schemas []table.Schema) ([]*table.Table, error)
	WriteManifest(m *export.Manifest) error
}

type Recorder interface {
	AddRows(domain, table string, n int)
	IncFallback(entity string)
	ObserveDomain(domain string, start time.Time)
	IncLoaded()
	IncIntegrityFailure()
}

type Options struct {
	Seed uint64
	// Domains restricts generation to the named domains. The others are
	// read back from Store when present and fall back to synthetic keys
	// otherwise. Empty means every domain.
	Domains    []string
	Generation config.Generation
	Store      Store
	Metrics    Recorder
	Logger     Logger
}

type Result struct {
	Order    []string
	Space    *identity.Space
	Tables   map[string][]*table.Table
	Manifest *export.Manifest
}

const (
	SourceGenerated = "generated"
	SourceLoaded    = "loaded"
	SourceAbsent    = "absent"
)

// Run generates the domains in dependency order against one random source
// and one identity space. A failing domain aborts the run; domains written
// before it stay on disk.
func Run(ctx context.Context, domains []Domain, opts Options) (*Result, error) {
	if opts.Store == nil {
		return nil, errors.New("pipeline: no store configured")
	}
	log := opts.Logger
	if log == nil {
		log = Discard()
	}
	rec := opts.Metrics
	if rec == nil {
		rec = nopRecorder{}
	}

	graph := NewDependencyGraph()
	byName := make(map[string]Domain, len(domains))
	for _, d := range domains {
		if _, dup := byName[d.Name()]; dup {
			return nil, fmt.Errorf("domain %s registered twice", d.Name())
		}
		byName[d.Name()] = d
		graph.Add(d.Name(), d.DependsOn())
	}

	order, err := graph.BuildOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build domain order: %w", err)
	}

	selected, err := selection(order, opts.Domains)
	if err != nil {
		return nil, err
	}

	rand := fake.New(opts.Seed)
	space := identity.NewSpace(identity.WithFallbackObserver(func(e identity.Entity, fb identity.Fallback) {
		log.Warn("⚠️  %s not available, using %d synthetic keys", e, fb.To-fb.From)
		rec.IncFallback(string(e))
	}))

	result := &Result{
		Order:  order,
		Space:  space,
		Tables: make(map[string][]*table.Table),
		Manifest: &export.Manifest{
			RunID: export.RunID(opts.Seed),
			Seed:  opts.Seed,
		},
	}

	log.Info("📋 Domain order: %s", strings.Join(order, " → "))

	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d := byName[name]

		if !selected[name] {
			dm, err := rehydrate(d, opts.Store, space, log)
			if err != nil {
				return nil, err
			}
			if dm.Source == SourceLoaded {
				rec.IncLoaded()
			}
			result.Manifest.Domains = append(result.Manifest.Domains, dm)
			continue
		}

		start := time.Now()
		log.Info("🌱 Generating %s...", name)

		c := NewContext(name, rand, space, opts.Generation, log, d.Bindings())
		tables, err := generate(d, c)
		if err != nil {
			var verr *integrity.ViolationError
			if errors.As(err, &verr) {
				rec.IncIntegrityFailure()
			}
			return nil, err
		}

		if err := opts.Store.WriteDomain(name, tables); err != nil {
			return nil, err
		}

		dm := export.DomainManifest{Name: name, Source: SourceGenerated}
		rows := 0
		for _, t := range tables {
			dm.Tables = append(dm.Tables, export.TableManifest{Name: t.Name(), Rows: t.Len()})
			rec.AddRows(name, t.Name(), t.Len())
			rows += t.Len()
		}
		rec.ObserveDomain(name, start)
		result.Manifest.Domains = append(result.Manifest.Domains, dm)
		result.Tables[name] = tables

		log.Success("✅ %s: %d tables, %d rows", name, len(tables), rows)
	}

	for _, e := range space.Entities() {
		entry, err := space.Lookup(e)
		if err != nil {
			return nil, err
		}
		result.Manifest.Entities = append(result.Manifest.Entities, export.EntityManifest{
			Name:       string(e),
			Keys:       entry.Len(),
			Provenance: entry.Provenance.String(),
		})
	}

	if err := opts.Store.WriteManifest(result.Manifest); err != nil {
		return nil, err
	}
	return result, nil
}

func selection(order, names []string) (map[string]bool, error) {
	selected := make(map[string]bool, len(order))
	if len(names) == 0 {
		for _, name := range order {
			selected[name] = true
		}
		return selected, nil
	}

	known := make(map[string]bool, len(order))
	for _, name := range order {
		known[name] = true
	}
	for _, name := range names {
		if !known[name] {
			return nil, fmt.Errorf("unknown domain: %s", name)
		}
		selected[name] = true
	}
	return selected, nil
}

func generate(d Domain, c *Context) ([]*table.Table, error) {
	name := d.Name()
	tables, err := d.Generate(c)
	if err != nil {
		return nil, fmt.Errorf("domain %s: %w", name, err)
	}

	schemas := d.Schemas()
	if len(tables) != len(schemas) {
		return nil, fmt.Errorf("domain %s returned %d tables, want %d", name, len(tables), len(schemas))
	}
	for i, t := range tables {
		if t.Name() != schemas[i].Name {
			return nil, fmt.Errorf("domain %s returned table %s at position %d, want %s", name, t.Name(), i, schemas[i].Name)
		}
	}

	for _, b := range d.Bindings() {
		if !b.Shared && !c.Space.Has(b.Entity) {
			return nil, fmt.Errorf("domain %s did not publish %s", name, b.Entity)
		}
	}

	if err := integrity.Validate(c.Space, tables); err != nil {
		return nil, fmt.Errorf("domain %s: %w", name, err)
	}
	return tables, nil
}

// rehydrate registers the entities of a domain generated by an earlier run.
func rehydrate(d Domain, store Store, space *identity.Space, log Logger) (export.DomainManifest, error) {
	dm, _, err := readBack(d, store, space)
	if err != nil {
		return dm, err
	}
	if dm.Source == SourceAbsent {
		log.Warn("⚠️  No %s output found, dependents fall back to synthetic data", d.Name())
		return dm, nil
	}
	log.Info("📂 Loaded %s from earlier run", d.Name())
	return dm, nil
}

// readBack reads a domain from store and publishes its bindings as upstream
// keys. A domain missing from store is reported with SourceAbsent.
func readBack(d Domain, store Store, space *identity.Space) (export.DomainManifest, []*table.Table, error) {
	name := d.Name()
	dm := export.DomainManifest{Name: name}

	tables, err := store.ReadDomain(name, d.Schemas())
	if errors.Is(err, export.ErrUpstreamAbsent) {
		dm.Source = SourceAbsent
		return dm, nil, nil
	}
	if err != nil {
		return dm, nil, fmt.Errorf("failed to read domain %s: %w", name, err)
	}

	byTable := make(map[string]*table.Table, len(tables))
	for _, t := range tables {
		byTable[t.Name()] = t
		dm.Tables = append(dm.Tables, export.TableManifest{Name: t.Name(), Rows: t.Len()})
	}
	for _, b := range d.Bindings() {
		t, ok := byTable[b.Table]
		if !ok {
			return dm, nil, fmt.Errorf("domain %s: binding references unknown table %s", name, b.Table)
		}
		if err := space.Publish(t, b, identity.Upstream); err != nil {
			return dm, nil, fmt.Errorf("domain %s: %w", name, err)
		}
	}

	dm.Source = SourceLoaded
	return dm, tables, nil
}

type nopRecorder struct{}

func (nopRecorder) AddRows(string, string, int)     {}
func (nopRecorder) IncFallback(string)              {}
func (nopRecorder) ObserveDomain(string, time.Time) {}
func (nopRecorder) IncLoaded()                      {}
func (nopRecorder) IncIntegrityFailure()            {}
