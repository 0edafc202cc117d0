// Package finance generates the ledger side of the dataset: accounts,
// vendors, customer orders and everything billed or paid against them.
package finance

import (
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/table"
)

const Name = "finance"

const (
	AccountReceivable int64 = 2000
	AccountPayable    int64 = 3000
	AccountRevenue    int64 = 4000
	AccountExpenses   int64 = 5000
)

var (
	ChartOfAccounts = table.Schema{
		Name: "chart_of_accounts",
		Columns: []table.Column{
			{Name: "account_id", Kind: table.Int},
			{Name: "account_name", Kind: table.String},
			{Name: "category", Kind: table.String},
		},
	}

	Vendors = table.Schema{
		Name: "vendors",
		Columns: []table.Column{
			{Name: "vendor_id", Kind: table.Int},
			{Name: "vendor_name", Kind: table.String},
			{Name: "category", Kind: table.String},
			{Name: "payment_terms", Kind: table.String},
		},
	}

	Orders = table.Schema{
		Name: "orders",
		Columns: []table.Column{
			{Name: "order_id", Kind: table.Int},
			{Name: "customer_id", Kind: table.Int},
			{Name: "order_date", Kind: table.DateTime},
			{Name: "order_amount", Kind: table.Float},
			{Name: "status", Kind: table.String},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "customer_id", Entity: string(identity.Customers)},
		},
	}

	Invoices = table.Schema{
		Name: "invoices",
		Columns: []table.Column{
			{Name: "invoice_id", Kind: table.Int},
			{Name: "order_id", Kind: table.Int},
			{Name: "invoice_date", Kind: table.DateTime},
			{Name: "due_date", Kind: table.DateTime},
			{Name: "amount_due", Kind: table.Float},
			{Name: "tax", Kind: table.Float},
			{Name: "discount", Kind: table.Float},
			{Name: "total_amount", Kind: table.Float},
			{Name: "status", Kind: table.String},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "order_id", Entity: string(identity.Orders)},
		},
	}

	Payments = table.Schema{
		Name: "payments",
		Columns: []table.Column{
			{Name: "payment_id", Kind: table.Int},
			{Name: "invoice_id", Kind: table.Int},
			{Name: "order_id", Kind: table.Int},
			{Name: "payment_date", Kind: table.DateTime},
			{Name: "amount_paid", Kind: table.Float},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "invoice_id", Entity: string(identity.Invoices)},
			{Column: "order_id", Entity: string(identity.Orders)},
		},
	}

	Expenses = table.Schema{
		Name: "expenses",
		Columns: []table.Column{
			{Name: "expense_id", Kind: table.Int},
			{Name: "vendor_id", Kind: table.Int},
			{Name: "expense_date", Kind: table.DateTime},
			{Name: "amount", Kind: table.Float},
			{Name: "cost_center", Kind: table.String},
			{Name: "account_id", Kind: table.Int},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "vendor_id", Entity: string(identity.Vendors)},
			{Column: "account_id", Entity: string(identity.Accounts)},
		},
	}

	GLTransactions = table.Schema{
		Name: "gl_transactions",
		Columns: []table.Column{
			{Name: "gl_id", Kind: table.Int},
			{Name: "account_id", Kind: table.Int},
			{Name: "transaction_date", Kind: table.DateTime},
			{Name: "amount", Kind: table.Float},
		},
		ForeignKeys: []table.ForeignKey{
			{Column: "account_id", Entity: string(identity.Accounts)},
		},
	}
)

type Domain struct{}

func (Domain) Name() string        { return Name }
func (Domain) DependsOn() []string { return nil }

func (Domain) Schemas() []table.Schema {
	return []table.Schema{ChartOfAccounts, Vendors, Orders, Invoices, Payments, Expenses, GLTransactions}
}

func (Domain) Bindings() []identity.Binding {
	return []identity.Binding{
		{Table: ChartOfAccounts.Name, Entity: identity.Accounts, Key: "account_id"},
		{Table: Vendors.Name, Entity: identity.Vendors, Key: "vendor_id"},
		{Table: Orders.Name, Entity: identity.Orders, Key: "order_id",
			Attrs: []string{"customer_id", "order_date", "order_amount", "status"}},
		{Table: Invoices.Name, Entity: identity.Invoices, Key: "invoice_id", Attrs: []string{"order_id", "status"}},
		{Table: Payments.Name, Entity: identity.Payments, Key: "payment_id"},
		{Table: Expenses.Name, Entity: identity.Expenses, Key: "expense_id"},
		{Table: GLTransactions.Name, Entity: identity.GLTransactions, Key: "gl_id"},
	}
}
