// Package domains lists every dataset domain the pipeline knows about.
package domains

import (
	"github.com/Rana718/dataforge/internal/domains/crm"
	"github.com/Rana718/dataforge/internal/domains/ecommerce"
	"github.com/Rana718/dataforge/internal/domains/finance"
	"github.com/Rana718/dataforge/internal/domains/marketing"
	"github.com/Rana718/dataforge/internal/domains/web"
	"github.com/Rana718/dataforge/internal/pipeline"
)

// All returns the domains in registration order. Run order is decided by
// their dependencies.
func All() []pipeline.Domain {
	return []pipeline.Domain{
		finance.Domain{},
		ecommerce.Domain{},
		marketing.Domain{},
		web.Domain{},
		crm.Domain{},
	}
}

// Order returns the domain names in dependency order.
func Order() ([]string, error) {
	graph := pipeline.NewDependencyGraph()
	for _, d := range All() {
		graph.Add(d.Name(), d.DependsOn())
	}
	return graph.BuildOrder()
}

func Find(name string) (pipeline.Domain, bool) {
	for _, d := range All() {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}
