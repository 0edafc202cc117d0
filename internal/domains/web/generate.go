package web

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Rana718/dataforge/internal/domains/fallback"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/link"
	"github.com/Rana718/dataforge/internal/pipeline"
	"github.com/Rana718/dataforge/internal/table"
)

// ConversionWindow is how far a session may be from its order's date to be
// credited with it.
const ConversionWindow = 3 * 24 * time.Hour

const productPage = "/product/"

var (
	Start = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	Days  = 181

	devices        = []string{"mobile", "desktop", "tablet"}
	countries      = []string{"USA", "Colombia", "Mexico", "Brazil", "Spain"}
	trafficSources = []string{"organic", "paid_search", "paid_social", "email", "direct", "referral"}
	landingPages   = []string{"/home", "/products", "/products/category", "/cart", "/checkout", "/blog", "/contact"}
	pageURLs       = []string{"/home", "/products", "/products/category", productPage, "/cart", "/checkout", "/thank-you", "/blog", "/contact"}
	eventNames     = []string{"view_product", "add_to_cart", "remove_from_cart", "purchase", "click_ad", "search"}
	productEvents  = []string{"view_product", "add_to_cart", "purchase"}

	// eventWeights draws 0, 1, 2 or 3 events per pageview.
	eventWeights = []float64{0.4, 0.3, 0.2, 0.1}
)

func (Domain) Generate(c *pipeline.Context) ([]*table.Table, error) {
	g := &generator{c: c}

	products, err := c.Links.Pool(link.Request{Entity: identity.Products, Fallback: &fallback.Products})
	if err != nil {
		return nil, err
	}
	g.products = products

	sessions, err := g.sessions()
	if err != nil {
		return nil, err
	}
	pageviews, err := g.pageviews()
	if err != nil {
		return nil, err
	}
	events, err := g.events()
	if err != nil {
		return nil, err
	}
	conversions, err := g.conversions()
	if err != nil {
		return nil, err
	}
	return []*table.Table{sessions, pageviews, events, conversions}, nil
}

type session struct {
	id       int64
	visit    time.Time
	duration int
	pages    int
}

type pageview struct {
	id        int64
	sessionID int64
	productID any
	at        time.Time
}

type generator struct {
	c        *pipeline.Context
	products *link.Pool
	visits   []session
	views    []pageview
}

func (g *generator) sessions() (*table.Table, error) {
	r := g.c.Rand
	b := table.NewBuilder(Sessions)
	for id := 1; id <= g.c.Gen.Counts.Sessions; id++ {
		s := session{
			id:    int64(id),
			visit: r.Day(Start, Days),
		}
		user := r.Between(1, 5000)
		device, country := r.Pick(devices), r.Pick(countries)
		source, landing := r.Pick(trafficSources), r.Pick(landingPages)
		s.duration = r.Between(5, 900)
		s.pages = r.Between(1, 12)

		b.Add(s.id, user, s.visit, device, country, source, landing, s.duration, s.pages, s.duration > 45)
		g.visits = append(g.visits, s)
	}
	return g.publish(b)
}

// pageviews renders pages_viewed pages per session. Product pages carry the
// product they show.
func (g *generator) pageviews() (*table.Table, error) {
	r := g.c.Rand
	b := table.NewBuilder(Pageviews)
	var id int64
	for _, s := range g.visits {
		for range s.pages {
			id++
			v := pageview{id: id, sessionID: s.id}
			url := r.Pick(pageURLs)
			if url == productPage {
				pid := g.products.One()
				v.productID = pid
				url = fmt.Sprintf("%s%d", productPage, pid)
			}
			v.at = s.visit.Add(time.Duration(r.Between(0, s.duration)) * time.Second)

			b.Add(id, s.id, url, v.productID, v.at, r.Between(20, 100), r.Between(1, 120))
			g.views = append(g.views, v)
		}
	}
	return g.publish(b)
}

// events fires zero to three events per pageview. Product events reuse the
// viewed product when there is one.
func (g *generator) events() (*table.Table, error) {
	r := g.c.Rand
	b := table.NewBuilder(Events)
	var id int64
	for _, v := range g.views {
		n := r.Weighted(eventWeights)
		for range n {
			id++
			name := r.Pick(eventNames)
			var product any
			if slices.Contains(productEvents, name) {
				product = v.productID
				if product == nil {
					product = g.products.One()
				}
			}
			at := v.at.Add(time.Duration(r.Between(1, 30)) * time.Second)
			b.Add(id, v.sessionID, v.id, name, at, product, r.Uniform(0, 100))
		}
	}
	return g.publish(b)
}

// conversions credits each ecommerce order to one session visited within
// ConversionWindow of the order. Orders without such a session are skipped.
func (g *generator) conversions() (*table.Table, error) {
	b := table.NewBuilder(Conversions)
	orders, err := g.c.Links.Entry(link.Request{Entity: identity.EcommerceOrders, Fallback: &fallback.EcommerceOrders})
	if err != nil {
		return nil, err
	}

	var id int64
	skipped := 0
	for _, orderID := range orders.Keys {
		attrs := orders.Attributes(orderID)
		placed, ok := attrs["order_date"].(time.Time)
		if !ok {
			skipped++
			continue
		}

		sid, err := g.c.Links.One(link.Request{
			Entity: identity.Sessions,
			Filter: link.AttrWithin("visit_date", placed.Add(-ConversionWindow), placed.Add(ConversionWindow)),
		})
		if errors.Is(err, link.ErrEmptyCandidateSet) {
			skipped++
			continue
		}
		if err != nil {
			return nil, err
		}

		id++
		b.Add(id, sid, orderID, placed, attrs["net_amount"], "purchase")
	}
	if skipped > 0 {
		g.c.Log.Info("%d orders had no session within %s", skipped, ConversionWindow)
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
