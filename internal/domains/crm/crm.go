// Package crm generates the customer relationship view: enriched customer
// records, touchpoints, support tickets and churn flags.
package crm

import (
	"github.com/Rana718/dataforge/internal/domains/ecommerce"
	"github.com/Rana718/dataforge/internal/domains/finance"
	"github.com/Rana718/dataforge/internal/domains/marketing"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/table"
)

const Name = "crm"

var customerFK = []table.ForeignKey{{Column: "customer_id", Entity: string(identity.Customers)}}

var (
	Customers = table.Schema{
		Name: "crm_customers",
		Columns: []table.Column{
			{Name: "customer_id", Kind: table.Int},
			{Name: "lifecycle_stage", Kind: table.String},
			{Name: "segment", Kind: table.String},
			{Name: "nps_score", Kind: table.Int},
			{Name: "preferred_channel", Kind: table.String},
			{Name: "consent_marketing", Kind: table.Int},
			{Name: "last_order_date", Kind: table.DateTime},
			{Name: "total_orders", Kind: table.Int},
			{Name: "total_spent", Kind: table.Float},
			{Name: "clv_estimate", Kind: table.Float},
			{Name: "lead_count", Kind: table.Int},
		},
		ForeignKeys: customerFK,
	}

	Interactions = table.Schema{
		Name: "crm_interactions",
		Columns: []table.Column{
			{Name: "interaction_id", Kind: table.Int},
			{Name: "customer_id", Kind: table.Int},
			{Name: "interaction_date", Kind: table.Date},
			{Name: "interaction_type", Kind: table.String},
			{Name: "channel", Kind: table.String},
			{Name: "agent_id", Kind: table.Int},
			{Name: "outcome", Kind: table.String},
			{Name: "notes", Kind: table.String},
		},
		ForeignKeys: customerFK,
	}

	Tickets = table.Schema{
		Name: "crm_tickets",
		Columns: []table.Column{
			{Name: "ticket_id", Kind: table.Int},
			{Name: "customer_id", Kind: table.Int},
			{Name: "created_at", Kind: table.Date},
			{Name: "resolved_at", Kind: table.Date},
			{Name: "category", Kind: table.String},
			{Name: "status", Kind: table.String},
			{Name: "priority", Kind: table.String},
			{Name: "resolution_time_days", Kind: table.Int},
		},
		ForeignKeys: customerFK,
	}

	ChurnFlags = table.Schema{
		Name: "crm_churn_flags",
		Columns: []table.Column{
			{Name: "customer_id", Kind: table.Int},
			{Name: "nps_score", Kind: table.Int},
			{Name: "total_orders", Kind: table.Int},
			{Name: "segment", Kind: table.String},
			{Name: "last_order_date", Kind: table.DateTime},
			{Name: "churn_probability", Kind: table.Float},
			{Name: "is_churned", Kind: table.Int},
			{Name: "churn_date", Kind: table.Date},
			{Name: "churn_reason", Kind: table.String},
		},
		ForeignKeys: customerFK,
	}
)

type Domain struct{}

func (Domain) Name() string { return Name }

func (Domain) DependsOn() []string {
	return []string{ecommerce.Name, finance.Name, marketing.Name}
}

func (Domain) Schemas() []table.Schema {
	return []table.Schema{Customers, Interactions, Tickets, ChurnFlags}
}

func (Domain) Bindings() []identity.Binding {
	return []identity.Binding{
		{Table: Interactions.Name, Entity: identity.Interactions, Key: "interaction_id"},
		{Table: Tickets.Name, Entity: identity.Tickets, Key: "ticket_id"},
	}
}
