package identity

import (
	"fmt"

	"github.com/Rana718/dataforge/internal/table"
)

// Binding ties a generated table to the entity type whose keys it carries.
type Binding struct {
	Table  string
	Entity Entity
	Key    string
	Attrs  []string
	// Shared entities may already have been materialized by a consumer's
	// fallback before the table rendering them exists. Publishing a shared
	// binding is a no-op when the entity is already registered.
	Shared bool
}

// Publish registers the keys (and projected attributes) of t under the
// binding's entity type.
func (s *Space) Publish(t *table.Table, b Binding, provenance Provenance) error {
	if b.Shared && s.Has(b.Entity) {
		return nil
	}

	schema := t.Schema()
	keyIdx := schema.Index(b.Key)
	if keyIdx < 0 || schema.Columns[keyIdx].Kind != table.Int {
		return fmt.Errorf("%w: %s.%s", ErrInvalidKeyColumn, t.Name(), b.Key)
	}

	attrIdx := make([]int, len(b.Attrs))
	for i, name := range b.Attrs {
		attrIdx[i] = schema.Index(name)
		if attrIdx[i] < 0 {
			return fmt.Errorf("binding %s: table %s has no column %s", b.Entity, t.Name(), name)
		}
	}

	keys := make([]int64, 0, t.Len())
	var attrs map[int64]Attributes
	if len(b.Attrs) > 0 {
		attrs = make(map[int64]Attributes, t.Len())
	}

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		key, ok := row[keyIdx].(int64)
		if !ok {
			return fmt.Errorf("%w: %s row %d has null %s", ErrInvalidKeyColumn, t.Name(), i+1, b.Key)
		}
		keys = append(keys, key)
		if attrs != nil {
			a := make(Attributes, len(b.Attrs))
			for j, name := range b.Attrs {
				a[name] = row[attrIdx[j]]
			}
			attrs[key] = a
		}
	}

	return s.Register(b.Entity, keys, provenance, attrs)
}
