// Package marketing generates the paid acquisition funnel: campaigns down
// to individual ads, their daily delivery and the leads they produce.
package marketing

import (
	"github.com/Rana718/dataforge/internal/domains/finance"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/table"
)

const Name = "marketing"

// Funnel stage labels, from the furthest stage down.
const (
	StageBuyer    = "Customer (Buyer)"
	StageCustomer = "Customer (No Purchase Yet)"
	StageMQL      = "MQL"
	StageRaw      = "Raw Lead"
)

var (
	Campaigns = table.Schema{
		Name: "campaigns",
		Columns: []table.Column{
			{Name: "campaign_id", Kind: table.Int},
			{Name: "campaign_name", Kind: table.String},
			{Name: "objective", Kind: table.String},
			{Name: "start_date", Kind: table.Date},
			{Name: "end_date", Kind: table.Date},
			{Name: "platform", Kind: table.String},
			{Name: "budget", Kind: table.Float},
		},
	}

	AdGroups = table.Schema{
		Name: "ad_groups",
		Columns: []table.Column{
			{Name: "ad_group_id", Kind: table.Int},
			{Name: "campaign_id", Kind: table.Int},
			{Name: "target_audience", Kind: table.String},
			{Name: "gender", Kind: table.String},
			{Name: "interests", Kind: table.String},
			{Name: "device_type", Kind: table.String},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "campaign_id", Entity: string(identity.Campaigns)},
		},
	}

	Ads = table.Schema{
		Name: "ads",
		Columns: []table.Column{
			{Name: "ad_id", Kind: table.Int},
			{Name: "ad_group_id", Kind: table.Int},
			{Name: "creative_type", Kind: table.String},
			{Name: "copy_length", Kind: table.String},
			{Name: "cta", Kind: table.String},
			{Name: "language", Kind: table.String},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "ad_group_id", Entity: string(identity.AdGroups)},
		},
	}

	DailyPerformance = table.Schema{
		Name: "daily_performance",
		Columns: []table.Column{
			{Name: "ad_id", Kind: table.Int},
			{Name: "date", Kind: table.Date},
			{Name: "impressions", Kind: table.Int},
			{Name: "clicks", Kind: table.Int},
			{Name: "spend", Kind: table.Float},
			{Name: "ctr", Kind: table.Float},
			{Name: "cpc", Kind: table.Float},
			{Name: "cpm", Kind: table.Float},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "ad_id", Entity: string(identity.Ads)},
		},
	}

	Leads = table.Schema{
		Name: "leads",
		Columns: []table.Column{
			{Name: "lead_id", Kind: table.Int},
			{Name: "ad_id", Kind: table.Int},
			{Name: "lead_date", Kind: table.Date},
			{Name: "lead_source", Kind: table.String},
			{Name: "utm_medium", Kind: table.String},
			{Name: "utm_campaign", Kind: table.String},
			{Name: "email", Kind: table.String},
			{Name: "phone", Kind: table.String},
			{Name: "is_mql", Kind: table.Int},
			{Name: "converted_to_customer", Kind: table.Int},
			{Name: "became_buyer", Kind: table.Int},
			{Name: "order_id", Kind: table.Int},
			{Name: "customer_id", Kind: table.Int},
			{Name: "funnel_stage", Kind: table.String},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "ad_id", Entity: string(identity.Ads)},
			{Column: "order_id", Entity: string(identity.Orders)},
			{Column: "customer_id", Entity: string(identity.Customers)},
		},
	}
)

type Domain struct{}

func (Domain) Name() string        { return Name }
func (Domain) DependsOn() []string { return []string{finance.Name} }

func (Domain) Schemas() []table.Schema {
	return []table.Schema{Campaigns, AdGroups, Ads, DailyPerformance, Leads}
}

func (Domain) Bindings() []identity.Binding {
	return []identity.Binding{
		{Table: Campaigns.Name, Entity: identity.Campaigns, Key: "campaign_id", Attrs: []string{"campaign_name"}},
		{Table: AdGroups.Name, Entity: identity.AdGroups, Key: "ad_group_id"},
		{Table: Ads.Name, Entity: identity.Ads, Key: "ad_id"},
		{Table: Leads.Name, Entity: identity.Leads, Key: "lead_id", Attrs: []string{"customer_id", "funnel_stage"}},
	}
}
