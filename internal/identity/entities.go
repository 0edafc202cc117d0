package identity

type Entity string

const (
	Accounts       Entity = "accounts"
	Vendors        Entity = "vendors"
	Customers      Entity = "customers"
	Orders         Entity = "orders"
	Invoices       Entity = "invoices"
	Payments       Entity = "payments"
	Expenses       Entity = "expenses"
	GLTransactions Entity = "gl_transactions"

	Products        Entity = "products"
	EcommerceOrders Entity = "ecommerce_orders"
	OrderItems      Entity = "order_items"
	Returns         Entity = "returns"

	Campaigns Entity = "campaigns"
	AdGroups  Entity = "ad_groups"
	Ads       Entity = "ads"
	Leads     Entity = "leads"

	Sessions       Entity = "sessions"
	Pageviews      Entity = "pageviews"
	Events         Entity = "events"
	WebConversions Entity = "web_conversions"

	Interactions Entity = "crm_interactions"
	Tickets      Entity = "crm_tickets"
)

type Provenance int

const (
	// Upstream keys were produced by the domain that owns the entity, either
	// in this run or in an earlier run whose files were read back.
	Upstream Provenance = iota
	// Synthetic keys were substituted because the owning domain's data was
	// not available.
	Synthetic
)

func (p Provenance) String() string {
	if p == Synthetic {
		return "synthetic"
	}
	return "upstream"
}
