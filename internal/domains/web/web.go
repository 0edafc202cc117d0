// Package web generates site analytics: sessions, the pages viewed in them,
// in-page events and the sessions credited with ecommerce orders.
package web

import (
	"github.com/Rana718/dataforge/internal/domains/ecommerce"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/table"
)

const Name = "web"

var (
	Sessions = table.Schema{
		Name: "sessions",
		Columns: []table.Column{
			{Name: "session_id", Kind: table.Int},
			{Name: "user_id", Kind: table.Int},
			{Name: "visit_date", Kind: table.Date},
			{Name: "device", Kind: table.String},
			{Name: "country", Kind: table.String},
			{Name: "traffic_source", Kind: table.String},
			{Name: "landing_page", Kind: table.String},
			{Name: "session_duration", Kind: table.Int},
			{Name: "pages_viewed", Kind: table.Int},
			{Name: "engaged_session", Kind: table.Int},
		},
	}

	Pageviews = table.Schema{
		Name: "pageviews",
		Columns: []table.Column{
			{Name: "pageview_id", Kind: table.Int},
			{Name: "session_id", Kind: table.Int},
			{Name: "page_url", Kind: table.String},
			{Name: "product_id", Kind: table.Int},
			{Name: "timestamp", Kind: table.DateTime},
			{Name: "scroll_depth", Kind: table.Int},
			{Name: "time_on_page", Kind: table.Int},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "session_id", Entity: string(identity.Sessions)},
			{Column: "product_id", Entity: string(identity.Products)},
		},
	}

	Events = table.Schema{
		Name: "events",
		Columns: []table.Column{
			{Name: "event_id", Kind: table.Int},
			{Name: "session_id", Kind: table.Int},
			{Name: "pageview_id", Kind: table.Int},
			{Name: "event_name", Kind: table.String},
			{Name: "event_timestamp", Kind: table.DateTime},
			{Name: "product_id", Kind: table.Int},
			{Name: "value", Kind: table.Float},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "session_id", Entity: string(identity.Sessions)},
			{Column: "pageview_id", Entity: string(identity.Pageviews)},
			{Column: "product_id", Entity: string(identity.Products)},
		},
	}

	Conversions = table.Schema{
		Name: "web_conversions",
		Columns: []table.Column{
			{Name: "conversion_id", Kind: table.Int},
			{Name: "session_id", Kind: table.Int},
			{Name: "order_id", Kind: table.Int},
			{Name: "conversion_timestamp", Kind: table.DateTime},
			{Name: "revenue", Kind: table.Float},
			{Name: "conversion_type", Kind: table.String},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "session_id", Entity: string(identity.Sessions)},
			{Column: "order_id", Entity: string(identity.EcommerceOrders)},
		},
	}
)

type Domain struct{}

func (Domain) Name() string        { return Name }
func (Domain) DependsOn() []string { return []string{ecommerce.Name} }

func (Domain) Schemas() []table.Schema {
	return []table.Schema{Sessions, Pageviews, Events, Conversions}
}

func (Domain) Bindings() []identity.Binding {
	return []identity.Binding{
		{Table: Sessions.Name, Entity: identity.Sessions, Key: "session_id", Attrs: []string{"visit_date"}},
		{Table: Pageviews.Name, Entity: identity.Pageviews, Key: "pageview_id"},
		{Table: Events.Name, Entity: identity.Events, Key: "event_id"},
		{Table: Conversions.Name, Entity: identity.WebConversions, Key: "conversion_id"},
	}
}
