package marketing

import (
	"errors"
	"fmt"
	"slices"
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
	// Days is the length of the delivery window Jan 1 through Jun 30 2023.
	Days = 181

	objectives  = []string{"Awareness", "Traffic", "Leads", "Sales"}
	platforms   = []string{"Facebook", "Instagram", "Google", "TikTok", "Email"}
	audiences   = []string{"18-24", "25-34", "35-44", "45-54", "55+"}
	genders     = []string{"Male", "Female", "All"}
	interests   = []string{"Tech", "Sports", "Beauty", "Fitness", "Business", "Education"}
	deviceTypes = []string{"Mobile", "Desktop", "Tablet", "All"}
	creatives   = []string{"Image", "Video", "Carousel"}
	copyLengths = []string{"Short", "Medium", "Long"}
	ctas        = []string{"Buy Now", "Learn More", "Sign Up", "Download"}
	languages   = []string{"EN", "ES", "PT"}
	sources     = []string{"Facebook", "Google", "Instagram", "TikTok", "Email"}
	mediums     = []string{"paid_social", "paid_search", "email", "referral"}
)

func (Domain) Generate(c *pipeline.Context) ([]*table.Table, error) {
	g := &generator{c: c}

	campaigns, err := g.campaigns()
	if err != nil {
		return nil, err
	}
	adGroups, err := g.adGroups()
	if err != nil {
		return nil, err
	}
	ads, err := g.ads()
	if err != nil {
		return nil, err
	}
	performance, err := g.dailyPerformance()
	if err != nil {
		return nil, err
	}
	leads, err := g.leads()
	if err != nil {
		return nil, err
	}
	return []*table.Table{campaigns, adGroups, ads, performance, leads}, nil
}

type generator struct {
	c *pipeline.Context
}

func (g *generator) campaigns() (*table.Table, error) {
	r := g.c.Rand
	b := table.NewBuilder(Campaigns)
	for id := 1; id <= g.c.Gen.Counts.Campaigns; id++ {
		start := Start.AddDate(0, 0, 5*(id-1))
		b.Add(id,
			fmt.Sprintf("Campaign_%d", id),
			r.Pick(objectives),
			start,
			start.AddDate(0, 0, 9),
			r.Pick(platforms),
			fake.Round2(r.Uniform(1000, 50000)),
		)
	}
	return g.publish(b)
}

func (g *generator) adGroups() (*table.Table, error) {
	r := g.c.Rand
	campaigns, err := g.c.Links.Pool(link.Request{Entity: identity.Campaigns})
	if err != nil {
		return nil, err
	}
	b := table.NewBuilder(AdGroups)
	for id := 1; id <= g.c.Gen.Counts.AdGroups; id++ {
		b.Add(id, campaigns.One(), r.Pick(audiences), r.Pick(genders), r.Pick(interests), r.Pick(deviceTypes))
	}
	return g.publish(b)
}

func (g *generator) ads() (*table.Table, error) {
	r := g.c.Rand
	groups, err := g.c.Links.Pool(link.Request{Entity: identity.AdGroups})
	if err != nil {
		return nil, err
	}
	b := table.NewBuilder(Ads)
	for id := 1; id <= g.c.Gen.Counts.Ads; id++ {
		b.Add(id, groups.One(), r.Pick(creatives), r.Pick(copyLengths), r.Pick(ctas), r.Pick(languages))
	}
	return g.publish(b)
}

// dailyPerformance runs every ad on a random set of distinct days, listed in
// date order.
func (g *generator) dailyPerformance() (*table.Table, error) {
	r := g.c.Rand
	ads, err := g.c.Links.Candidates(link.Request{Entity: identity.Ads})
	if err != nil {
		return nil, err
	}

	b := table.NewBuilder(DailyPerformance)
	for _, ad := range ads {
		days := r.SampleIndexes(Days, r.Between(30, Days))
		slices.Sort(days)
		for _, day := range days {
			impressions := r.Between(500, 100000)
			clicks := r.Between(0, max(1, impressions/20))
			spend := fake.Round2(r.Uniform(5, 300))

			var cpc any
			if clicks > 0 {
				cpc = spend / float64(clicks)
			}
			b.Add(ad,
				Start.AddDate(0, 0, day),
				impressions,
				clicks,
				spend,
				float64(clicks)/float64(impressions),
				cpc,
				spend/float64(impressions)*1000,
			)
		}
	}
	return b.Build()
}

// leads walks each lead down the funnel. A stage is only drawn for leads
// that reached the previous one.
func (g *generator) leads() (*table.Table, error) {
	r := g.c.Rand
	rates := g.c.Gen.Rates

	ads, err := g.c.Links.Pool(link.Request{Entity: identity.Ads})
	if err != nil {
		return nil, err
	}
	campaigns, err := g.c.Links.Pool(link.Request{Entity: identity.Campaigns})
	if err != nil {
		return nil, err
	}

	buyers := &buyerLinks{c: g.c}
	b := table.NewBuilder(Leads)
	for id := 1; id <= g.c.Gen.Counts.Leads; id++ {
		date := r.Day(Start, Days)
		ad := ads.One()
		source, medium := r.Pick(sources), r.Pick(mediums)
		campaign := campaigns.Attributes(campaigns.One())["campaign_name"]
		phone := r.Phone()

		mql := r.Bernoulli(rates.MQL)
		converted := mql && r.Bernoulli(rates.MQLToCustomer)
		bought := converted && r.Bernoulli(rates.CustomerToBuyer)

		var orderID, customerID any
		if bought {
			orderID, customerID, err = buyers.link()
			if err != nil {
				return nil, err
			}
		}

		b.Add(id,
			ad,
			date,
			source,
			medium,
			campaign,
			fmt.Sprintf("user_%d@example.com", id),
			phone,
			mql,
			converted,
			bought,
			orderID,
			customerID,
			stage(mql, converted, bought),
		)
	}
	return g.publish(b)
}

func stage(mql, converted, bought bool) string {
	switch {
	case bought:
		return StageBuyer
	case converted:
		return StageCustomer
	case mql:
		return StageMQL
	default:
		return StageRaw
	}
}

// buyerLinks attaches buyers to completed orders. The order pool is resolved
// on the first buyer so that runs without buyers never touch orders.
type buyerLinks struct {
	c        *pipeline.Context
	resolved bool
	orders   *link.Pool
}

// link returns the order and customer of one buyer. Both are nil when no
// completed order exists.
func (l *buyerLinks) link() (any, any, error) {
	if !l.resolved {
		l.resolved = true
		pool, err := l.c.Links.Pool(link.Request{
			Entity:   identity.Orders,
			Filter:   link.AttrEquals("status", "completed"),
			Fallback: fallback.Orders(l.c.Space, l.c.Rand),
		})
		switch {
		case errors.Is(err, link.ErrEmptyCandidateSet):
			l.c.Log.Warn("⚠️  No completed orders, buyers stay unlinked")
		case err != nil:
			return nil, nil, err
		default:
			l.orders = pool
		}
	}
	if l.orders == nil {
		return nil, nil, nil
	}

	order := l.orders.One()
	if customer, ok := l.orders.Attributes(order)["customer_id"].(int64); ok {
		return order, customer, nil
	}
	customer, err := l.c.Links.One(link.Request{Entity: identity.Customers, Fallback: &fallback.Customers})
	if errors.Is(err, link.ErrEmptyCandidateSet) {
		return order, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return order, customer, nil
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
