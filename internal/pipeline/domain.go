package pipeline

import (
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/table"
)

// Domain generates the tables of one business area.
type Domain interface {
	Name() string
	// DependsOn names the domains whose entities this domain reads.
	DependsOn() []string
	// Schemas lists the domain's tables in output order.
	Schemas() []table.Schema
	// Bindings declares which tables carry entity keys. The same bindings
	// are used when the domain's tables are read back from disk.
	Bindings() []identity.Binding
	// Generate returns one table per schema, in Schemas order.
	Generate(c *Context) ([]*table.Table, error)
}
