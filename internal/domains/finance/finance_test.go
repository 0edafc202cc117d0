package finance

import (
	"testing"
	"time"

	"github.com/Rana718/dataforge/internal/config"
	"github.com/Rana718/dataforge/internal/fake"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/integrity"
	"github.com/Rana718/dataforge/internal/pipeline"
	"github.com/Rana718/dataforge/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, space *identity.Space) map[string]*table.Table {
	t.Helper()
	gen := config.DefaultGeneration()
	gen.Counts.Vendors = 5
	gen.Counts.FinanceOrders = 60
	gen.Counts.Expenses = 20

	d := Domain{}
	c := pipeline.NewContext(Name, fake.New(42), space, gen, nil, d.Bindings())
	tables, err := d.Generate(c)
	require.NoError(t, err)
	require.NoError(t, integrity.Validate(space, tables))

	byName := make(map[string]*table.Table, len(tables))
	for _, tbl := range tables {
		byName[tbl.Name()] = tbl
	}
	return byName
}

func TestGenerateTablesInSchemaOrder(t *testing.T) {
	d := Domain{}
	c := pipeline.NewContext(Name, fake.New(1), identity.NewSpace(), config.DefaultGeneration(), nil, d.Bindings())
	tables, err := d.Generate(c)
	require.NoError(t, err)

	schemas := d.Schemas()
	require.Len(t, tables, len(schemas))
	for i, tbl := range tables {
		assert.Equal(t, schemas[i].Name, tbl.Name())
	}
	assert.Equal(t, 2000, tables[2].Len())
	assert.Equal(t, 1000, tables[5].Len())
}

func TestOrdersUseCustomerFallback(t *testing.T) {
	space := identity.NewSpace()
	tables := generate(t, space)

	customers, err := space.Lookup(identity.Customers)
	require.NoError(t, err)
	assert.Equal(t, identity.Synthetic, customers.Provenance)
	assert.Equal(t, 1500, customers.Len())

	orders := tables["orders"]
	assert.Equal(t, Start, orders.Get(0, "order_date"))
	assert.Equal(t, Start.Add(59*time.Hour), orders.Get(59, "order_date"))
}

func TestInvoicesFollowOrders(t *testing.T) {
	tables := generate(t, identity.NewSpace())
	orders, invoices := tables["orders"], tables["invoices"]
	require.Equal(t, orders.Len(), invoices.Len())

	for i := 0; i < invoices.Len(); i++ {
		assert.Equal(t, orders.Get(i, "order_id"), invoices.Get(i, "order_id"))

		placed := orders.Get(i, "order_date").(time.Time)
		days := invoices.Get(i, "invoice_date").(time.Time).Sub(placed).Hours() / 24
		assert.GreaterOrEqual(t, days, 1.0)
		assert.Less(t, days, 5.0)

		amount := invoices.Get(i, "amount_due").(float64)
		tax := invoices.Get(i, "tax").(float64)
		discount := invoices.Get(i, "discount").(float64)
		assert.Equal(t, fake.Round2(amount*0.19), tax)
		assert.InDelta(t, amount+tax-discount, invoices.Get(i, "total_amount").(float64), 0.006)
	}
}

func TestPaymentsOnlyForPaidInvoices(t *testing.T) {
	tables := generate(t, identity.NewSpace())
	invoices, payments := tables["invoices"], tables["payments"]

	paid := map[int64]float64{}
	for i := 0; i < invoices.Len(); i++ {
		if invoices.Get(i, "status") == "paid" {
			paid[invoices.Get(i, "invoice_id").(int64)] = invoices.Get(i, "total_amount").(float64)
		}
	}
	require.Equal(t, len(paid), payments.Len())

	for i := 0; i < payments.Len(); i++ {
		assert.Equal(t, int64(i+1), payments.Get(i, "payment_id"))
		total, ok := paid[payments.Get(i, "invoice_id").(int64)]
		require.True(t, ok)
		assert.Equal(t, total, payments.Get(i, "amount_paid"))
	}
}

func TestGLTransactionsBalance(t *testing.T) {
	tables := generate(t, identity.NewSpace())
	gl := tables["gl_transactions"]

	assert.Equal(t, 2*tables["invoices"].Len()+2*tables["expenses"].Len(), gl.Len())
	assert.Equal(t, AccountRevenue, gl.Get(0, "account_id"))
	assert.Equal(t, AccountReceivable, gl.Get(1, "account_id"))

	first := 2 * tables["invoices"].Len()
	assert.Equal(t, AccountExpenses, gl.Get(first, "account_id"))
	assert.Equal(t, AccountPayable, gl.Get(first+1, "account_id"))
	assert.Equal(t, -gl.Get(first, "amount").(float64), gl.Get(first+1, "amount"))

	for i := 0; i < gl.Len(); i++ {
		assert.Equal(t, int64(i+1), gl.Get(i, "gl_id"))
	}
}

func TestPublishesOrderProjection(t *testing.T) {
	space := identity.NewSpace()
	generate(t, space)

	orders, err := space.Lookup(identity.Orders)
	require.NoError(t, err)
	require.True(t, orders.HasProjection())
	assert.Equal(t, 60, orders.Len())

	attrs := orders.Attributes(1)
	assert.Contains(t, []any{"completed", "pending", "canceled"}, attrs["status"])
	assert.IsType(t, int64(0), attrs["customer_id"])
	assert.IsType(t, time.Time{}, attrs["order_date"])
}
