package ecommerce

import (
	"errors"
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
	catalogStart = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	signupStart  = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	categories    = []string{"Electronics", "Home", "Fashion", "Beauty", "Sports", "Books"}
	subcategories = map[string][]string{
		"Electronics": {"Phones", "Laptops", "Audio", "Accessories"},
		"Home":        {"Kitchen", "Furniture", "Decor", "Cleaning"},
		"Fashion":     {"Men", "Women", "Shoes", "Accessories"},
		"Beauty":      {"Skincare", "Makeup", "Haircare", "Fragrance"},
		"Sports":      {"Gym", "Outdoor", "Team Sports", "Accessories"},
		"Books":       {"Fiction", "Non-Fiction", "Education", "Comics"},
	}
	brands = []string{"FormuBrand", "DataTech", "InsightPro", "CloudGear", "NeoLife", "UrbanFit"}

	firstNames = []string{"Alex", "Chris", "Sam", "Taylor", "Jordan", "Pat", "Morgan", "Jamie"}
	lastNames  = []string{"Smith", "Johnson", "Garcia", "Martinez", "Brown", "Lopez", "Davis", "Miller"}
	countries  = []string{"Colombia", "Mexico", "USA", "Brazil", "Spain"}
	cities     = map[string][]string{
		"Colombia": {"Bogotá", "Medellín", "Cali", "Barranquilla"},
		"Mexico":   {"CDMX", "Guadalajara", "Monterrey"},
		"USA":      {"New York", "Miami", "Los Angeles"},
		"Brazil":   {"São Paulo", "Rio de Janeiro", "Brasilia"},
		"Spain":    {"Madrid", "Barcelona", "Valencia"},
	}
	genders   = []string{"Male", "Female", "Other"}
	ageGroups = []string{"18-24", "25-34", "35-44", "45-54", "55+"}
	segments  = []string{"New", "Active", "Churn Risk", "VIP"}

	channels        = []string{"web", "mobile_app", "marketplace"}
	paymentMethods  = []string{"credit_card", "debit_card", "cash_on_delivery", "paypal", "bank_transfer"}
	shippingMethods = []string{"standard", "express", "pickup_point"}
	returnReasons   = []string{"Damaged", "Wrong size", "Not as described", "Changed mind"}
)

func (Domain) Generate(c *pipeline.Context) ([]*table.Table, error) {
	g := &generator{c: c}

	products, err := g.products()
	if err != nil {
		return nil, err
	}
	customers, err := g.customers()
	if err != nil {
		return nil, err
	}
	orders, items, err := g.orders()
	if err != nil {
		return nil, err
	}
	returns, err := g.returns()
	if err != nil {
		return nil, err
	}
	return []*table.Table{products, customers, orders, items, returns}, nil
}

type line struct {
	id        int64
	productID int64
	quantity  int
	unitPrice float64
}

type generator struct {
	c *pipeline.Context
	// lines holds the items of every ecommerce order, keyed by order id.
	lines map[int64][]line
}

func (g *generator) products() (*table.Table, error) {
	r := g.c.Rand
	b := table.NewBuilder(Products)
	for id := 1; id <= g.c.Gen.Counts.Products; id++ {
		category := r.Pick(categories)
		subcategory := r.Pick(subcategories[category])
		cost := r.Uniform(5, 200)
		price := cost * r.Uniform(1.2, 2.5)

		b.Add(id,
			fmt.Sprintf("SKU-%05d", id),
			fmt.Sprintf("%s %s Item %d", category, subcategory, id),
			category,
			subcategory,
			r.Pick(brands),
			fake.Round2(cost),
			fake.Round2(price),
			fake.Round2((price-cost)/price*100),
			catalogStart,
			nil,
		)
	}
	return g.publish(b)
}

// customers renders one profile per key of the shared customer space.
func (g *generator) customers() (*table.Table, error) {
	r := g.c.Rand
	entry, err := g.c.Links.Entry(link.Request{Entity: identity.Customers, Fallback: &fallback.Customers})
	if err != nil {
		return nil, err
	}

	b := table.NewBuilder(Customers)
	for _, id := range entry.Keys {
		country := r.Pick(countries)
		city := r.Pick(cities[country])
		first, last := r.Pick(firstNames), r.Pick(lastNames)
		b.Add(id,
			first,
			last,
			first+" "+last,
			fmt.Sprintf("customer_%d@example.com", id),
			r.Day(signupStart, 730),
			country,
			city,
			r.Pick(genders),
			r.Pick(ageGroups),
			r.Pick(segments),
		)
	}
	return g.publish(b)
}

// orders enriches every finance order and prices its items. Canceled orders
// carry no items and zero amounts.
func (g *generator) orders() (*table.Table, *table.Table, error) {
	r := g.c.Rand
	entry, err := g.c.Links.Entry(link.Request{Entity: identity.Orders, Fallback: fallback.Orders(g.c.Space, r)})
	if err != nil {
		return nil, nil, err
	}
	products, err := g.c.Links.Pool(link.Request{Entity: identity.Products})
	if err != nil {
		return nil, nil, err
	}

	g.lines = make(map[int64][]line, entry.Len())
	ob := table.NewBuilder(Orders)
	ib := table.NewBuilder(OrderItems)
	var itemID int64

	for _, orderID := range entry.Keys {
		attrs := entry.Attributes(orderID)
		status, _ := attrs["status"].(string)

		shipping := fake.Round2(r.Uniform(0, 25))
		discount := fake.Round2(r.Uniform(0, 50))
		channel, payment, method := r.Pick(channels), r.Pick(paymentMethods), r.Pick(shippingMethods)

		var gross, net float64
		if status != "canceled" {
			picked, err := products.Sample(r.Between(1, 6), link.WithReplacement)
			if err != nil {
				return nil, nil, err
			}
			for _, pid := range picked {
				itemID++
				pattrs := products.Attributes(pid)
				listPrice, _ := pattrs["list_price"].(float64)
				unitCost, _ := pattrs["base_cost"].(float64)
				quantity := r.Between(1, 5)
				unitPrice := fake.Round2(listPrice * r.Uniform(0.9, 1.05))
				revenue := unitPrice * float64(quantity)
				cost := unitCost * float64(quantity)

				ib.Add(itemID, orderID, pid, quantity, unitPrice, unitCost,
					fake.Round2(revenue), fake.Round2(cost), fake.Round2(revenue-cost))
				g.lines[orderID] = append(g.lines[orderID], line{id: itemID, productID: pid, quantity: quantity, unitPrice: unitPrice})
				gross += revenue
			}
			net = fake.Round2(gross + shipping - discount)
		}

		ob.Add(orderID,
			attrs["customer_id"],
			attrs["order_date"],
			attrs["order_amount"],
			status,
			channel,
			payment,
			method,
			shipping,
			discount,
			"USD",
			fake.Round2(gross),
			net,
		)
	}

	orders, err := g.publish(ob)
	if err != nil {
		return nil, nil, err
	}
	items, err := g.publish(ib)
	if err != nil {
		return nil, nil, err
	}
	return orders, items, nil
}

// returns picks a share of completed orders without replacement and returns
// one or two of their lines.
func (g *generator) returns() (*table.Table, error) {
	r := g.c.Rand
	b := table.NewBuilder(Returns)

	completed, err := g.c.Links.Pool(link.Request{
		Entity: identity.EcommerceOrders,
		Filter: link.AttrEquals("status", "completed"),
	})
	if errors.Is(err, link.ErrEmptyCandidateSet) {
		g.c.Log.Warn("⚠️  No completed orders, skipping returns")
		return g.publish(b)
	}
	if err != nil {
		return nil, err
	}

	returned, err := completed.Sample(int(float64(completed.Len())*g.c.Gen.Rates.Return), link.WithoutReplacement)
	if err != nil {
		return nil, err
	}

	var id int64
	for _, orderID := range returned {
		lines := g.lines[orderID]
		if len(lines) == 0 {
			continue
		}
		attrs := completed.Attributes(orderID)
		placed, _ := attrs["order_date"].(time.Time)

		n := r.Between(1, min(3, len(lines)+1))
		for _, idx := range r.SampleIndexes(len(lines), n) {
			l := lines[idx]
			qty := r.Between(1, l.quantity+1)
			refund := l.unitPrice * float64(qty) * r.Uniform(0.8, 1.0)
			fee := r.Uniform(0, 10)
			id++
			b.Add(id,
				orderID,
				l.id,
				l.productID,
				attrs["customer_id"],
				placed.AddDate(0, 0, r.Between(1, 30)),
				r.Pick(returnReasons),
				qty,
				fake.Round2(refund),
				fake.Round2(fee),
			)
		}
	}
	return g.publish(b)
}

func (g *generator) publish(b *table.Builder) (*table.Table, error) {
	t, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := g.c.Publish(t); err != nil {
		return nil, err
	}
	return t, nil
}
