package web

import (
	"strings"
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

func smallGeneration() config.Generation {
	gen := config.DefaultGeneration()
	gen.Counts.Sessions = 300
	return gen
}

func run(t *testing.T, space *identity.Space) map[string]*table.Table {
	t.Helper()
	d := Domain{}
	c := pipeline.NewContext(Name, fake.New(42), space, smallGeneration(), nil, d.Bindings())
	tables, err := d.Generate(c)
	require.NoError(t, err)
	require.NoError(t, integrity.Validate(space, tables))

	byName := make(map[string]*table.Table, len(tables))
	for _, tbl := range tables {
		byName[tbl.Name()] = tbl
	}
	return byName
}

func TestNoOrdersNoConversions(t *testing.T) {
	space := identity.NewSpace()
	tables := run(t, space)

	assert.Equal(t, 300, tables["sessions"].Len())
	assert.Equal(t, 0, tables["web_conversions"].Len())

	orders, err := space.Lookup(identity.EcommerceOrders)
	require.NoError(t, err)
	assert.Equal(t, identity.Synthetic, orders.Provenance)
	assert.Zero(t, orders.Len())

	products, err := space.Lookup(identity.Products)
	require.NoError(t, err)
	assert.Equal(t, 300, products.Len())
}

func TestConversionsStayInWindow(t *testing.T) {
	space := identity.NewSpace()
	inside := time.Date(2023, 3, 15, 13, 0, 0, 0, time.UTC)
	outside := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, space.Register(identity.EcommerceOrders, []int64{1, 2}, identity.Upstream, map[int64]identity.Attributes{
		1: {"customer_id": int64(1), "order_date": inside, "status": "completed", "net_amount": 120.5},
		2: {"customer_id": int64(1), "order_date": outside, "status": "completed", "net_amount": 80.0},
	}))

	tables := run(t, space)
	conversions := tables["web_conversions"]
	require.Equal(t, 1, conversions.Len(), "order outside every session window must be skipped")
	assert.Equal(t, int64(1), conversions.Get(0, "order_id"))
	assert.Equal(t, 120.5, conversions.Get(0, "revenue"))
	assert.Equal(t, inside, conversions.Get(0, "conversion_timestamp"))

	sessions := tables["sessions"]
	sid := conversions.Get(0, "session_id").(int64)
	visit := sessions.Get(int(sid-1), "visit_date").(time.Time)
	assert.LessOrEqual(t, visit.Sub(inside).Abs(), ConversionWindow)
}

func TestPageviewsPerSession(t *testing.T) {
	tables := run(t, identity.NewSpace())
	sessions, pageviews := tables["sessions"], tables["pageviews"]

	want := map[int64]int64{}
	total := 0
	for i := 0; i < sessions.Len(); i++ {
		n := sessions.Get(i, "pages_viewed").(int64)
		want[sessions.Get(i, "session_id").(int64)] = n
		total += int(n)

		engaged := sessions.Get(i, "session_duration").(int64) > 45
		assert.Equal(t, engaged, sessions.Get(i, "engaged_session") == int64(1))
	}
	require.Equal(t, total, pageviews.Len())

	got := map[int64]int64{}
	for i := 0; i < pageviews.Len(); i++ {
		got[pageviews.Get(i, "session_id").(int64)]++
		url := pageviews.Get(i, "page_url").(string)
		if strings.HasPrefix(url, productPage) {
			assert.NotNil(t, pageviews.Get(i, "product_id"))
		} else {
			assert.Nil(t, pageviews.Get(i, "product_id"))
		}
	}
	assert.Equal(t, want, got)
}

func TestEventsReferTheirPageview(t *testing.T) {
	tables := run(t, identity.NewSpace())
	pageviews, events := tables["pageviews"], tables["events"]

	session := map[int64]any{}
	product := map[int64]any{}
	for i := 0; i < pageviews.Len(); i++ {
		id := pageviews.Get(i, "pageview_id").(int64)
		session[id] = pageviews.Get(i, "session_id")
		product[id] = pageviews.Get(i, "product_id")
	}

	perView := map[int64]int{}
	for i := 0; i < events.Len(); i++ {
		pv := events.Get(i, "pageview_id").(int64)
		perView[pv]++
		assert.Equal(t, session[pv], events.Get(i, "session_id"))

		switch events.Get(i, "event_name") {
		case "view_product", "add_to_cart", "purchase":
			assert.NotNil(t, events.Get(i, "product_id"))
			if product[pv] != nil {
				assert.Equal(t, product[pv], events.Get(i, "product_id"))
			}
		default:
			assert.Nil(t, events.Get(i, "product_id"))
		}
	}
	for pv, n := range perView {
		assert.LessOrEqual(t, n, 3, "pageview %d", pv)
	}
}
