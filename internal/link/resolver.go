package link

import (
	"errors"
	"fmt"
	"time"

	"github.com/Rana718/dataforge/internal/fake"
	"github.com/Rana718/dataforge/internal/identity"
)

var (
	// ErrEmptyCandidateSet is returned when no key survives the filter. The
	// caller decides whether to skip the row, skip the entity or substitute
	// a default.
	ErrEmptyCandidateSet = errors.New("empty candidate set")
	ErrSampleTooLarge    = errors.New("sample larger than candidate set")
)

type Predicate func(key int64, attrs identity.Attributes) bool

type Mode int

const (
	WithReplacement Mode = iota
	WithoutReplacement
)

// Request names the entity a foreign key must point at. Filter is applied
// against the entity's attribute projection when it has one. Fallback, when
// set, is used if the entity was never registered.
type Request struct {
	Entity   identity.Entity
	Filter   Predicate
	Fallback *identity.Fallback
}

type Resolver struct {
	space *identity.Space
	rand  *fake.Faker
}

func NewResolver(space *identity.Space, rand *fake.Faker) *Resolver {
	return &Resolver{space: space, rand: rand}
}

// Entry resolves the request's entity without filtering.
func (r *Resolver) Entry(req Request) (identity.Entry, error) {
	if req.Fallback != nil {
		return r.space.KeysOrFallback(req.Entity, *req.Fallback)
	}
	return r.space.Lookup(req.Entity)
}

// Pool resolves and filters the candidate keys once so that repeated draws
// against the same request stay cheap.
func (r *Resolver) Pool(req Request) (*Pool, error) {
	entry, err := r.Entry(req)
	if err != nil {
		return nil, err
	}

	keys := entry.Keys
	if req.Filter != nil && entry.HasProjection() {
		keys = make([]int64, 0, len(entry.Keys))
		for _, k := range entry.Keys {
			if req.Filter(k, entry.Attrs[k]) {
				keys = append(keys, k)
			}
		}
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCandidateSet, req.Entity)
	}
	return &Pool{entity: req.Entity, keys: keys, entry: entry, rand: r.rand}, nil
}

// Candidates returns the filtered keys without drawing from them.
func (r *Resolver) Candidates(req Request) ([]int64, error) {
	p, err := r.Pool(req)
	if err != nil {
		return nil, err
	}
	return p.Keys(), nil
}

func (r *Resolver) One(req Request) (int64, error) {
	p, err := r.Pool(req)
	if err != nil {
		return 0, err
	}
	return p.One(), nil
}

func (r *Resolver) Sample(req Request, n int, mode Mode) ([]int64, error) {
	p, err := r.Pool(req)
	if err != nil {
		return nil, err
	}
	return p.Sample(n, mode)
}

// Pool is a filtered, non-empty candidate set.
type Pool struct {
	entity identity.Entity
	keys   []int64
	entry  identity.Entry
	rand   *fake.Faker
}

func (p *Pool) Len() int { return len(p.keys) }

// Keys returns the candidates in registration order. Read-only.
func (p *Pool) Keys() []int64 { return p.keys }

func (p *Pool) Attributes(key int64) identity.Attributes { return p.entry.Attributes(key) }

func (p *Pool) One() int64 {
	return p.keys[p.rand.IntN(len(p.keys))]
}

func (p *Pool) Sample(n int, mode Mode) ([]int64, error) {
	if n <= 0 {
		return nil, nil
	}
	out := make([]int64, n)
	if mode == WithReplacement {
		for i := range out {
			out[i] = p.One()
		}
		return out, nil
	}
	if n > len(p.keys) {
		return nil, fmt.Errorf("%w: %s wants %d of %d", ErrSampleTooLarge, p.entity, n, len(p.keys))
	}
	for i, idx := range p.rand.SampleIndexes(len(p.keys), n) {
		out[i] = p.keys[idx]
	}
	return out, nil
}

func AttrEquals(name string, want any) Predicate {
	return func(_ int64, attrs identity.Attributes) bool {
		return attrs[name] == want
	}
}

// AttrWithin matches time attributes inside the closed window [lo, hi].
func AttrWithin(name string, lo, hi time.Time) Predicate {
	return func(_ int64, attrs identity.Attributes) bool {
		ts, ok := attrs[name].(time.Time)
		return ok && !ts.Before(lo) && !ts.After(hi)
	}
}

func And(preds ...Predicate) Predicate {
	return func(key int64, attrs identity.Attributes) bool {
		for _, p := range preds {
			if !p(key, attrs) {
				return false
			}
		}
		return true
	}
}
