// Package integrity verifies that every foreign key written into a table
// points at a key registered in the identity space.
package integrity

import (
	"fmt"
	"strings"

	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/table"
)

// maxReported caps how many violations a ViolationError spells out.
const maxReported = 5

type Violation struct {
	Table  string
	Column string
	Entity string
	Row    int
	Value  int64
	// Unresolved is set when the referenced entity type was never
	// registered, in which case Row and Value are zero.
	Unresolved bool
}

func (v Violation) String() string {
	if v.Unresolved {
		return fmt.Sprintf("%s.%s references unregistered entity %s", v.Table, v.Column, v.Entity)
	}
	return fmt.Sprintf("%s.%s row %d: %d is not a known %s key", v.Table, v.Column, v.Row, v.Value, v.Entity)
}

type ViolationError struct {
	Violations []Violation
}

func (e *ViolationError) Error() string {
	parts := make([]string, 0, maxReported)
	for i, v := range e.Violations {
		if i == maxReported {
			break
		}
		parts = append(parts, v.String())
	}
	msg := fmt.Sprintf("%d foreign key violation(s): %s", len(e.Violations), strings.Join(parts, "; "))
	if len(e.Violations) > maxReported {
		msg += "; ..."
	}
	return msg
}

// Check returns every foreign key value in tables that is not a key of its
// referenced entity in space.
func Check(space *identity.Space, tables []*table.Table) []Violation {
	var out []Violation
	for _, t := range tables {
		schema := t.Schema()
		for _, fk := range schema.ForeignKeys {
			idx := schema.Index(fk.Column)
			entry, err := space.Lookup(identity.Entity(fk.Entity))
			if idx < 0 || err != nil {
				out = append(out, Violation{Table: t.Name(), Column: fk.Column, Entity: fk.Entity, Unresolved: true})
				continue
			}
			for i := 0; i < t.Len(); i++ {
				v, ok := t.Row(i)[idx].(int64)
				if !ok {
					continue
				}
				if !entry.Contains(v) {
					out = append(out, Violation{Table: t.Name(), Column: fk.Column, Entity: fk.Entity, Row: i + 1, Value: v})
				}
			}
		}
	}
	return out
}

// Validate is Check folded into an error.
func Validate(space *identity.Space, tables []*table.Table) error {
	if violations := Check(space, tables); len(violations) > 0 {
		return &ViolationError{Violations: violations}
	}
	return nil
}
