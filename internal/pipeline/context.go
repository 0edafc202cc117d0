package pipeline

import (
	"fmt"

	"github.com/Rana718/dataforge/internal/config"
	"github.com/Rana718/dataforge/internal/fake"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/link"
	"github.com/Rana718/dataforge/internal/table"
)

// Context is everything a domain may touch while it generates. It is
// created per domain and shares the run's random source and identity space.
type Context struct {
	Domain string
	Rand   *fake.Faker
	Space  *identity.Space
	Links  *link.Resolver
	Gen    config.Generation
	Log    Logger

	bindings map[string][]identity.Binding
}

func NewContext(domain string, rand *fake.Faker, space *identity.Space, gen config.Generation, log Logger, bindings []identity.Binding) *Context {
	if log == nil {
		log = Discard()
	}
	byTable := make(map[string][]identity.Binding, len(bindings))
	for _, b := range bindings {
		byTable[b.Table] = append(byTable[b.Table], b)
	}
	return &Context{
		Domain:   domain,
		Rand:     rand,
		Space:    space,
		Links:    link.NewResolver(space, rand),
		Gen:      gen,
		Log:      log,
		bindings: byTable,
	}
}

// Publish registers the entity keys carried by t according to the domain's
// bindings. Publishing a table without a binding is a programming error.
func (c *Context) Publish(t *table.Table) error {
	bs, ok := c.bindings[t.Name()]
	if !ok {
		return fmt.Errorf("%s: table %s has no entity binding", c.Domain, t.Name())
	}
	for _, b := range bs {
		if err := c.Space.Publish(t, b, identity.Upstream); err != nil {
			return fmt.Errorf("%s: %w", c.Domain, err)
		}
	}
	return nil
}
