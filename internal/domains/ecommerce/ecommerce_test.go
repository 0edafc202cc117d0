package ecommerce

import (
	"testing"
	"time"

	"github.com/Rana718/dataforge/internal/config"
	"github.com/Rana718/dataforge/internal/domains/finance"
	"github.com/Rana718/dataforge/internal/fake"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/integrity"
	"github.com/Rana718/dataforge/internal/pipeline"
	"github.com/Rana718/dataforge/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallGeneration() config.Generation {
	gen := config.DefaultGeneration()
	gen.Counts.Vendors = 5
	gen.Counts.FinanceOrders = 200
	gen.Counts.Expenses = 10
	gen.Counts.Products = 40
	return gen
}

func run(t *testing.T, space *identity.Space, gen config.Generation, seed uint64) map[string]*table.Table {
	t.Helper()
	rand := fake.New(seed)
	byName := make(map[string]*table.Table)
	d := Domain{}
	c := pipeline.NewContext(Name, rand, space, gen, nil, d.Bindings())
	tables, err := d.Generate(c)
	require.NoError(t, err)
	require.NoError(t, integrity.Validate(space, tables))
	for _, tbl := range tables {
		byName[tbl.Name()] = tbl
	}
	return byName
}

func withFinance(t *testing.T) *identity.Space {
	t.Helper()
	space := identity.NewSpace()
	f := finance.Domain{}
	c := pipeline.NewContext(finance.Name, fake.New(7), space, smallGeneration(), nil, f.Bindings())
	_, err := f.Generate(c)
	require.NoError(t, err)
	return space
}

func countItems(items *table.Table) map[int64]int {
	out := map[int64]int{}
	for _, id := range items.Ints("order_id") {
		out[id]++
	}
	return out
}

func TestCanceledOrdersHaveNoItems(t *testing.T) {
	space := identity.NewSpace()
	require.NoError(t, space.Register(identity.Customers, []int64{1}, identity.Upstream, nil))
	placed := time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, space.Register(identity.Orders, []int64{100, 101}, identity.Upstream, map[int64]identity.Attributes{
		100: {"customer_id": int64(1), "order_date": placed, "order_amount": 99.5, "status": "completed"},
		101: {"customer_id": int64(1), "order_date": placed, "order_amount": 12.0, "status": "canceled"},
	}))

	tables := run(t, space, smallGeneration(), 3)

	counts := countItems(tables["order_items"])
	assert.GreaterOrEqual(t, counts[100], 1)
	assert.Equal(t, 0, counts[101])

	orders := tables["orders"]
	require.Equal(t, 2, orders.Len())
	assert.Equal(t, int64(101), orders.Get(1, "order_id"))
	assert.Equal(t, 0.0, orders.Get(1, "items_gross_amount"))
	assert.Equal(t, 0.0, orders.Get(1, "net_amount"))
	assert.Greater(t, orders.Get(0, "items_gross_amount").(float64), 0.0)

	assert.Equal(t, 1, tables["customers"].Len())
}

func TestOrdersMirrorFinance(t *testing.T) {
	space := withFinance(t)
	tables := run(t, space, smallGeneration(), 1)

	finOrders, err := space.Lookup(identity.Orders)
	require.NoError(t, err)
	orders := tables["orders"]
	require.Equal(t, finOrders.Len(), orders.Len())

	for i := 0; i < orders.Len(); i++ {
		id := orders.Get(i, "order_id").(int64)
		attrs := finOrders.Attributes(id)
		assert.Equal(t, attrs["customer_id"], orders.Get(i, "customer_id"))
		assert.Equal(t, attrs["status"], orders.Get(i, "status"))
		assert.Equal(t, attrs["order_amount"], orders.Get(i, "financial_order_amount"))
		assert.Equal(t, "USD", orders.Get(i, "currency"))
	}

	counts := countItems(tables["order_items"])
	for i := 0; i < orders.Len(); i++ {
		n := counts[orders.Get(i, "order_id").(int64)]
		if orders.Get(i, "status") == "canceled" {
			assert.Zero(t, n)
		} else {
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, 5)
		}
	}
}

func TestCustomersRenderSharedSpace(t *testing.T) {
	space := withFinance(t)
	tables := run(t, space, smallGeneration(), 1)

	customers, err := space.Lookup(identity.Customers)
	require.NoError(t, err)
	assert.Equal(t, identity.Synthetic, customers.Provenance)
	assert.Equal(t, customers.Keys, tables["customers"].Ints("customer_id"))
	assert.Equal(t, "customer_1@example.com", tables["customers"].Get(0, "email"))
}

func TestReturnsComeFromCompletedOrders(t *testing.T) {
	space := withFinance(t)
	tables := run(t, space, smallGeneration(), 5)

	status := map[int64]any{}
	orders := tables["orders"]
	for i := 0; i < orders.Len(); i++ {
		status[orders.Get(i, "order_id").(int64)] = orders.Get(i, "status")
	}

	items := tables["order_items"]
	quantity := map[int64]int64{}
	for i := 0; i < items.Len(); i++ {
		quantity[items.Get(i, "order_item_id").(int64)] = items.Get(i, "quantity").(int64)
	}

	returns := tables["returns"]
	require.Greater(t, returns.Len(), 0)
	perOrder := map[int64]int{}
	for i := 0; i < returns.Len(); i++ {
		orderID := returns.Get(i, "order_id").(int64)
		assert.Equal(t, "completed", status[orderID])
		perOrder[orderID]++

		qty := returns.Get(i, "qty_returned").(int64)
		assert.GreaterOrEqual(t, qty, int64(1))
		assert.LessOrEqual(t, qty, quantity[returns.Get(i, "order_item_id").(int64)])
	}
	for _, n := range perOrder {
		assert.LessOrEqual(t, n, 2)
	}
}

func TestWithoutFinanceUsesOrderFallback(t *testing.T) {
	space := identity.NewSpace()
	gen := smallGeneration()
	tables := run(t, space, gen, 1)

	orders, err := space.Lookup(identity.Orders)
	require.NoError(t, err)
	assert.Equal(t, identity.Synthetic, orders.Provenance)
	assert.Equal(t, 3000, tables["orders"].Len())
	assert.Equal(t, 1500, tables["customers"].Len())
}

func TestProductsPricing(t *testing.T) {
	tables := run(t, withFinance(t), smallGeneration(), 1)
	products := tables["products"]
	require.Equal(t, 40, products.Len())

	for i := 0; i < products.Len(); i++ {
		cost := products.Get(i, "base_cost").(float64)
		price := products.Get(i, "list_price").(float64)
		assert.GreaterOrEqual(t, cost, 5.0)
		assert.LessOrEqual(t, cost, 200.0)
		assert.Greater(t, price, cost)
		assert.Nil(t, products.Get(i, "active_to"))
	}
	assert.Equal(t, "SKU-00001", products.Get(0, "sku"))
}
