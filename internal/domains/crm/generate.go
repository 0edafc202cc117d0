package crm

import (
	"errors"
	"time"

	"github.com/Rana718/dataforge/internal/domains/fallback"
	"github.com/Rana718/dataforge/internal/fake"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/link"
	"github.com/Rana718/dataforge/internal/pipeline"
	"github.com/Rana718/dataforge/internal/table"
)

const interactionNote = "Synthetic interaction for CRM lab."

var (
	interactionStart = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	ticketStart      = time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	churnStart       = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	// churnDays spans Jun 1 through Dec 31.
	churnDays = 214

	lifecycleStages   = []string{"Lead", "MQL", "Customer", "Active", "Churned"}
	segments          = []string{"New", "Active", "Loyal", "At Risk", "Churned"}
	preferredChannels = []string{"email", "phone", "whatsapp", "sms", "in_app"}

	interactionTypes    = []string{"email", "phone_call", "whatsapp", "meeting", "chatbot"}
	interactionOutcomes = []string{"answered", "no_answer", "follow_up", "resolved", "escalated"}

	ticketCategories = []string{"billing", "technical", "product", "shipping", "other"}
	ticketStatuses   = []string{"open", "in_progress", "resolved", "closed"}
	priorities       = []string{"low", "medium", "high", "urgent"}

	churnReasons = []string{"price", "competitor", "no_need", "bad_experience", "other"}
)

// activity is what finance orders say about one customer.
type activity struct {
	orders    int
	spent     float64
	// lastOrder is nil until an order with a date is seen.
	lastOrder *time.Time
}

type profile struct {
	id      int64
	segment string
	nps     int
	orders  int
	last    any
}

func (Domain) Generate(c *pipeline.Context) ([]*table.Table, error) {
	customers, err := c.Links.Entry(link.Request{Entity: identity.Customers, Fallback: &fallback.Customers})
	if err != nil {
		return nil, err
	}
	byCustomer, fromOrders, err := orderActivity(c)
	if err != nil {
		return nil, err
	}
	leads, err := leadCounts(c)
	if err != nil {
		return nil, err
	}

	crmCustomers, profiles, err := buildCustomers(c, customers.Keys, byCustomer, fromOrders, leads)
	if err != nil {
		return nil, err
	}
	interactions, err := buildInteractions(c, customers.Keys)
	if err != nil {
		return nil, err
	}
	tickets, err := buildTickets(c, customers.Keys)
	if err != nil {
		return nil, err
	}
	churn, err := buildChurnFlags(c, profiles)
	if err != nil {
		return nil, err
	}
	return []*table.Table{crmCustomers, interactions, tickets, churn}, nil
}

// orderActivity aggregates finance orders per customer. The second return
// is false when no real orders are available, in which case spend is drawn
// instead of summed.
func orderActivity(c *pipeline.Context) (map[int64]*activity, bool, error) {
	orders, err := c.Links.Entry(link.Request{Entity: identity.Orders})
	if errors.Is(err, identity.ErrUnknownEntityType) {
		c.Log.Warn("⚠️  No orders available, CRM activity is synthetic")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if orders.Provenance == identity.Synthetic {
		c.Log.Warn("⚠️  Orders are synthetic, CRM activity is synthetic")
		return nil, false, nil
	}

	out := make(map[int64]*activity)
	for _, id := range orders.Keys {
		attrs := orders.Attributes(id)
		customer, ok := attrs["customer_id"].(int64)
		if !ok {
			continue
		}
		a := out[customer]
		if a == nil {
			a = &activity{}
			out[customer] = a
		}
		a.orders++
		if placed, ok := attrs["order_date"].(time.Time); ok && (a.lastOrder == nil || placed.After(*a.lastOrder)) {
			a.lastOrder = &placed
		}
		if amount, ok := attrs["order_amount"].(float64); ok {
			a.spent += amount
		}
	}
	return out, true, nil
}

func leadCounts(c *pipeline.Context) (map[int64]int, error) {
	leads, err := c.Links.Entry(link.Request{Entity: identity.Leads})
	if errors.Is(err, identity.ErrUnknownEntityType) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(map[int64]int)
	for _, id := range leads.Keys {
		if customer, ok := leads.Attributes(id)["customer_id"].(int64); ok {
			out[customer]++
		}
	}
	return out, nil
}

// buildCustomers enriches every customer. With real orders, a customer
// without any has zero orders and null spend; without them spend is drawn.
func buildCustomers(c *pipeline.Context, ids []int64, byCustomer map[int64]*activity, fromOrders bool, leads map[int64]int) (*table.Table, []profile, error) {
	r := c.Rand
	b := table.NewBuilder(Customers)
	profiles := make([]profile, 0, len(ids))

	for _, id := range ids {
		p := profile{id: id}
		stage := r.Pick(lifecycleStages)
		p.segment = r.Pick(segments)
		p.nps = r.Between(0, 11)
		channel := r.Pick(preferredChannels)
		consent := r.Bernoulli(c.Gen.Rates.Consent)

		var spent, clv any
		if !fromOrders {
			s := fake.Round2(r.Uniform(0, 5000))
			spent, clv = s, fake.Round2(s*r.Uniform(1.1, 2.5))
		} else if a := byCustomer[id]; a != nil {
			s := fake.Round2(a.spent)
			p.orders = a.orders
			if a.lastOrder != nil {
				p.last = *a.lastOrder
			}
			spent, clv = s, fake.Round2(s*r.Uniform(1.1, 2.5))
		}

		b.Add(id, stage, p.segment, p.nps, channel, consent, p.last, p.orders, spent, clv, leads[id])
		profiles = append(profiles, p)
	}

	t, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return t, profiles, nil
}

// buildInteractions logs one to fourteen touchpoints per customer, fifteen
// days apart.
func buildInteractions(c *pipeline.Context, ids []int64) (*table.Table, error) {
	r := c.Rand
	b := table.NewBuilder(Interactions)
	var id int64
	for _, customer := range ids {
		n := r.Between(1, 15)
		for k := range n {
			id++
			b.Add(id,
				customer,
				interactionStart.AddDate(0, 0, 15*k),
				r.Pick(interactionTypes),
				r.Pick(preferredChannels),
				r.Between(1, 51),
				r.Pick(interactionOutcomes),
				interactionNote,
			)
		}
	}
	return publish(c, b)
}

func buildTickets(c *pipeline.Context, ids []int64) (*table.Table, error) {
	r := c.Rand
	b := table.NewBuilder(Tickets)
	var id int64
	for _, customer := range ids {
		n := r.Between(0, 5)
		for k := range n {
			id++
			created := ticketStart.AddDate(0, 0, 30*k)
			days := r.Between(1, 15)
			b.Add(id,
				customer,
				created,
				created.AddDate(0, 0, days),
				r.Pick(ticketCategories),
				r.Pick(ticketStatuses),
				r.Pick(priorities),
				days,
			)
		}
	}
	return publish(c, b)
}

// ChurnProbability raises a base rate for detractors and for customers with
// few orders, clipped to [0, 1].
func ChurnProbability(base float64, nps, orders int) float64 {
	p := base + 0.4*float64(10-nps)/10 + 0.3/float64(1+orders)
	return min(max(p, 0), 1)
}

func buildChurnFlags(c *pipeline.Context, profiles []profile) (*table.Table, error) {
	r := c.Rand
	b := table.NewBuilder(ChurnFlags)
	for _, p := range profiles {
		prob := ChurnProbability(r.Uniform(0.05, 0.3), p.nps, p.orders)
		churned := r.Bernoulli(prob)

		var date, reason any
		if churned {
			date, reason = r.Day(churnStart, churnDays), r.Pick(churnReasons)
		}
		b.Add(p.id, p.nps, p.orders, p.segment, p.last, prob, churned, date, reason)
	}
	return b.Build()
}

func publish(c *pipeline.Context, b *table.Builder) (*table.Table, error) {
	t, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := c.Publish(t); err != nil {
		return nil, err
	}
	return t, nil
}
