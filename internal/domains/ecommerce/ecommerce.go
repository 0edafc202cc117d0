// Package ecommerce turns finance orders into a storefront: a product
// catalog, customer profiles, enriched order headers, line items and
// returns.
package ecommerce

import (
	"github.com/Rana718/dataforge/internal/domains/finance"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/table"
)

const Name = "ecommerce"

var (
	Products = table.Schema{
		Name: "products",
		Columns: []table.Column{
			{Name: "product_id", Kind: table.Int},
			{Name: "sku", Kind: table.String},
			{Name: "product_name", Kind: table.String},
			{Name: "category", Kind: table.String},
			{Name: "subcategory", Kind: table.String},
			{Name: "brand", Kind: table.String},
			{Name: "base_cost", Kind: table.Float},
			{Name: "list_price", Kind: table.Float},
			{Name: "margin_pct", Kind: table.Float},
			{Name: "active_from", Kind: table.Date},
			{Name: "active_to", Kind: table.Date},
		},
	}

	Customers = table.Schema{
		Name: "customers",
		Columns: []table.Column{
			{Name: "customer_id", Kind: table.Int},
			{Name: "first_name", Kind: table.String},
			{Name: "last_name", Kind: table.String},
			{Name: "full_name", Kind: table.String},
			{Name: "email", Kind: table.String},
			{Name: "signup_date", Kind: table.Date},
			{Name: "country", Kind: table.String},
			{Name: "city", Kind: table.String},
			{Name: "gender", Kind: table.String},
			{Name: "age_group", Kind: table.String},
			{Name: "segment", Kind: table.String},
		},
	}

	Orders = table.Schema{
		Name: "orders",
		Columns: []table.Column{
			{Name: "order_id", Kind: table.Int},
			{Name: "customer_id", Kind: table.Int},
			{Name: "order_date", Kind: table.DateTime},
			{Name: "financial_order_amount", Kind: table.Float},
			{Name: "status", Kind: table.String},
			{Name: "sales_channel", Kind: table.String},
			{Name: "payment_method", Kind: table.String},
			{Name: "shipping_method", Kind: table.String},
			{Name: "shipping_cost", Kind: table.Float},
			{Name: "discount_amount", Kind: table.Float},
			{Name: "currency", Kind: table.String},
			{Name: "items_gross_amount", Kind: table.Float},
			{Name: "net_amount", Kind: table.Float},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "order_id", Entity: string(identity.Orders)},
			{Column: "customer_id", Entity: string(identity.Customers)},
		},
	}

	OrderItems = table.Schema{
		Name: "order_items",
		Columns: []table.Column{
			{Name: "order_item_id", Kind: table.Int},
			{Name: "order_id", Kind: table.Int},
			{Name: "product_id", Kind: table.Int},
			{Name: "quantity", Kind: table.Int},
			{Name: "unit_price", Kind: table.Float},
			{Name: "unit_cost", Kind: table.Float},
			{Name: "line_revenue", Kind: table.Float},
			{Name: "line_cost", Kind: table.Float},
			{Name: "line_margin", Kind: table.Float},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "order_id", Entity: string(identity.EcommerceOrders)},
			{Column: "product_id", Entity: string(identity.Products)},
		},
	}

	Returns = table.Schema{
		Name: "returns",
		Columns: []table.Column{
			{Name: "return_id", Kind: table.Int},
			{Name: "order_id", Kind: table.Int},
			{Name: "order_item_id", Kind: table.Int},
			{Name: "product_id", Kind: table.Int},
			{Name: "customer_id", Kind: table.Int},
			{Name: "return_date", Kind: table.DateTime},
			{Name: "reason", Kind: table.String},
			{Name: "qty_returned", Kind: table.Int},
			{Name: "refund_amount", Kind: table.Float},
			{Name: "restocking_fee", Kind: table.Float},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "order_id", Entity: string(identity.EcommerceOrders)},
			{Column: "order_item_id", Entity: string(identity.OrderItems)},
			{Column: "product_id", Entity: string(identity.Products)},
			{Column: "customer_id", Entity: string(identity.Customers)},
		},
	}
)

type Domain struct{}

func (Domain) Name() string        { return Name }
func (Domain) DependsOn() []string { return []string{finance.Name} }

func (Domain) Schemas() []table.Schema {
	return []table.Schema{Products, Customers, Orders, OrderItems, Returns}
}

func (Domain) Bindings() []identity.Binding {
	return []identity.Binding{
		{Table: Products.Name, Entity: identity.Products, Key: "product_id", Attrs: []string{"list_price", "base_cost"}},
		// Customers are usually materialized by finance before this table
		// exists; the table then renders the existing keys.
		{Table: Customers.Name, Entity: identity.Customers, Key: "customer_id", Shared: true},
		{Table: Orders.Name, Entity: identity.EcommerceOrders, Key: "order_id",
			Attrs: []string{"customer_id", "order_date", "status", "net_amount"}},
		{Table: OrderItems.Name, Entity: identity.OrderItems, Key: "order_item_id",
			Attrs: []string{"order_id", "product_id", "quantity", "unit_price"}},
		{Table: Returns.Name, Entity: identity.Returns, Key: "return_id"},
	}
}
