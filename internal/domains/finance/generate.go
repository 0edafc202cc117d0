package finance

import (
	"fmt"
	"time"

	"github.com/Rana718/dataforge/internal/domains/fallback"
	"github.com/Rana718/dataforge/internal/fake"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/link"
	"github.com/Rana718/dataforge/internal/pipeline"
	"github.com/Rana718/dataforge/internal/table"
)

var (
	Start = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	vendorCategories = []string{"Supplies", "Marketing", "Technology", "HR"}
	paymentTerms     = []string{"Net 30", "Net 45", "Net 60"}
	invoiceStatuses  = []string{"paid", "unpaid", "partial"}
	costCenters      = []string{"Marketing", "Operations", "Tech", "HR"}
)

var accounts = []struct {
	id       int64
	name     string
	category string
}{
	{1000, "Cash", "Asset"},
	{AccountReceivable, "Accounts Receivable", "Asset"},
	{AccountPayable, "Accounts Payable", "Liability"},
	{AccountRevenue, "Revenue", "Revenue"},
	{AccountExpenses, "Operating Expenses", "Expense"},
}

func (Domain) Generate(c *pipeline.Context) ([]*table.Table, error) {
	g := &generator{c: c}
	steps := []func() (*table.Table, error){
		g.chartOfAccounts,
		g.vendors,
		g.orders,
		g.invoices,
		g.payments,
		g.expenses,
		g.glTransactions,
	}

	tables := make([]*table.Table, 0, len(steps))
	for _, step := range steps {
		t, err := step()
		if err != nil {
			return nil, err
		}
		if err := c.Publish(t); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

type invoice struct {
	id, orderID int64
	date        time.Time
	total       float64
	status      string
}

type expense struct {
	date   time.Time
	amount float64
}

// generator carries the rows later finance tables are derived from.
type generator struct {
	c           *pipeline.Context
	orderTable  *table.Table
	invoiceRows []invoice
	expenseRows []expense
}

func (g *generator) chartOfAccounts() (*table.Table, error) {
	b := table.NewBuilder(ChartOfAccounts)
	for _, a := range accounts {
		b.Add(a.id, a.name, a.category)
	}
	return b.Build()
}

func (g *generator) vendors() (*table.Table, error) {
	r := g.c.Rand
	b := table.NewBuilder(Vendors)
	for i := 1; i <= g.c.Gen.Counts.Vendors; i++ {
		b.Add(i, fmt.Sprintf("Vendor_%d", i), r.Pick(vendorCategories), r.Pick(paymentTerms))
	}
	return b.Build()
}

func (g *generator) orders() (*table.Table, error) {
	r := g.c.Rand
	customers, err := g.c.Links.Pool(link.Request{Entity: identity.Customers, Fallback: &fallback.Customers})
	if err != nil {
		return nil, err
	}

	b := table.NewBuilder(Orders)
	for i := 1; i <= g.c.Gen.Counts.FinanceOrders; i++ {
		b.Add(i,
			customers.One(),
			Start.Add(time.Duration(i-1)*time.Hour),
			fake.Round2(r.Uniform(20, 1000)),
			r.Pick(fallback.OrderStatuses),
		)
	}
	t, err := b.Build()
	if err != nil {
		return nil, err
	}
	g.orderTable = t
	return t, nil
}

// invoices bills every order once. Invoice ids follow order ids.
func (g *generator) invoices() (*table.Table, error) {
	r := g.c.Rand
	tax := g.c.Gen.Rates.Tax
	b := table.NewBuilder(Invoices)
	for i := 0; i < g.orderTable.Len(); i++ {
		orderID := g.orderTable.Get(i, "order_id").(int64)
		placed := g.orderTable.Get(i, "order_date").(time.Time)
		amount := g.orderTable.Get(i, "order_amount").(float64)

		date := placed.AddDate(0, 0, r.Between(1, 5))
		due := placed.AddDate(0, 0, r.Between(30, 45))
		taxAmount := fake.Round2(amount * tax)
		discount := fake.Round2(r.Uniform(0, 50))
		total := fake.Round2(amount + taxAmount - discount)
		status := r.Pick(invoiceStatuses)

		b.Add(orderID, orderID, date, due, amount, taxAmount, discount, total, status)
		g.invoiceRows = append(g.invoiceRows, invoice{id: orderID, orderID: orderID, date: date, total: total, status: status})
	}
	return b.Build()
}

func (g *generator) payments() (*table.Table, error) {
	r := g.c.Rand
	b := table.NewBuilder(Payments)
	id := 1
	for _, inv := range g.invoiceRows {
		if inv.status != "paid" {
			continue
		}
		b.Add(id, inv.id, inv.orderID, inv.date.AddDate(0, 0, r.Between(1, 30)), inv.total)
		id++
	}
	return b.Build()
}

func (g *generator) expenses() (*table.Table, error) {
	r := g.c.Rand
	vendors, err := g.c.Links.Pool(link.Request{Entity: identity.Vendors})
	if err != nil {
		return nil, err
	}

	b := table.NewBuilder(Expenses)
	for i := 1; i <= g.c.Gen.Counts.Expenses; i++ {
		date := Start.Add(time.Duration(i-1) * 12 * time.Hour)
		amount := fake.Round2(r.Uniform(50, 8000))
		b.Add(i, vendors.One(), date, amount, r.Pick(costCenters), AccountExpenses)
		g.expenseRows = append(g.expenseRows, expense{date: date, amount: amount})
	}
	return b.Build()
}

// glTransactions posts a revenue/receivable pair per invoice followed by an
// expense/payable pair per expense.
func (g *generator) glTransactions() (*table.Table, error) {
	b := table.NewBuilder(GLTransactions)
	id := 1
	post := func(account int64, date time.Time, amount float64) {
		b.Add(id, account, date, amount)
		id++
	}
	for _, inv := range g.invoiceRows {
		post(AccountRevenue, inv.date, inv.total)
		post(AccountReceivable, inv.date, inv.total)
	}
	for _, e := range g.expenseRows {
		post(AccountExpenses, e.date, -e.amount)
		post(AccountPayable, e.date, e.amount)
	}
	return b.Build()
}
