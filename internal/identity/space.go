package identity

import (
	"fmt"
)

// Attributes is the projection of a row that other domains are allowed to
// see, keyed by column name.
type Attributes map[string]any

// Entry is the registered key set of one entity type. Entries are shared
// with callers and must be treated as read-only.
type Entry struct {
	Entity     Entity
	Keys       []int64
	Provenance Provenance
	Attrs      map[int64]Attributes

	index map[int64]struct{}
}

func (e Entry) Len() int { return len(e.Keys) }

func (e Entry) Contains(key int64) bool {
	_, ok := e.index[key]
	return ok
}

func (e Entry) HasProjection() bool { return e.Attrs != nil }

func (e Entry) Attributes(key int64) Attributes {
	if e.Attrs == nil {
		return nil
	}
	return e.Attrs[key]
}

// Fallback describes the synthetic key range [From, To) used when an entity
// type was never registered. Project, when set, builds the attribute
// projection for each synthetic key; it runs exactly once per entity.
type Fallback struct {
	From    int64
	To      int64
	Project func(key int64) Attributes
}

type FallbackObserver func(entity Entity, fb Fallback)

type Option func(*Space)

// WithFallbackObserver is notified every time a fallback is materialized.
func WithFallbackObserver(fn FallbackObserver) Option {
	return func(s *Space) { s.observers = append(s.observers, fn) }
}

// Space maps entity types to their canonical key sets for one generation
// run. It has a single writer at a time: the domain currently generating.
type Space struct {
	entries   map[Entity]*Entry
	order     []Entity
	observers []FallbackObserver
}

func NewSpace(opts ...Option) *Space {
	s := &Space{entries: make(map[Entity]*Entry)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register records the key set of an entity type. Each entity type can be
// registered once per run.
func (s *Space) Register(entity Entity, keys []int64, provenance Provenance, attrs map[int64]Attributes) error {
	if _, exists := s.entries[entity]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, entity)
	}

	index := make(map[int64]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := index[k]; dup {
			return fmt.Errorf("%w: %s key %d", ErrDuplicateKey, entity, k)
		}
		index[k] = struct{}{}
	}

	owned := make([]int64, len(keys))
	copy(owned, keys)

	s.entries[entity] = &Entry{
		Entity:     entity,
		Keys:       owned,
		Provenance: provenance,
		Attrs:      attrs,
		index:      index,
	}
	s.order = append(s.order, entity)
	return nil
}

func (s *Space) Lookup(entity Entity) (Entry, error) {
	e, ok := s.entries[entity]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownEntityType, entity)
	}
	return *e, nil
}

// KeysOrFallback returns the registered entry for entity, or materializes
// fb, registers it as Synthetic and returns it. Later calls return the
// cached entry whatever fallback they pass.
func (s *Space) KeysOrFallback(entity Entity, fb Fallback) (Entry, error) {
	if e, ok := s.entries[entity]; ok {
		return *e, nil
	}
	if fb.To < fb.From {
		return Entry{}, fmt.Errorf("%w: %s [%d, %d)", ErrInvalidFallback, entity, fb.From, fb.To)
	}

	keys := make([]int64, 0, fb.To-fb.From)
	for k := fb.From; k < fb.To; k++ {
		keys = append(keys, k)
	}

	var attrs map[int64]Attributes
	if fb.Project != nil {
		attrs = make(map[int64]Attributes, len(keys))
		for _, k := range keys {
			attrs[k] = fb.Project(k)
		}
	}

	if err := s.Register(entity, keys, Synthetic, attrs); err != nil {
		return Entry{}, err
	}
	for _, observe := range s.observers {
		observe(entity, fb)
	}
	return *s.entries[entity], nil
}

func (s *Space) Has(entity Entity) bool {
	_, ok := s.entries[entity]
	return ok
}

// Entities lists registered entity types in registration order.
func (s *Space) Entities() []Entity {
	out := make([]Entity, len(s.order))
	copy(out, s.order)
	return out
}
