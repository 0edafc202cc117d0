// Package fallback holds the synthetic key ranges used when the domain that
// owns an entity has not produced it.
package fallback

import (
	"time"

	"github.com/Rana718/dataforge/internal/fake"
	"github.com/Rana718/dataforge/internal/identity"
)

var (
	Customers = identity.Fallback{From: 1, To: 1501}
	Products  = identity.Fallback{From: 1, To: 301}
	// EcommerceOrders is empty: without real orders there is nothing for
	// web conversions to attribute.
	EcommerceOrders = identity.Fallback{From: 1, To: 1}
)

var OrderStatuses = []string{"completed", "pending", "canceled"}

// Orders synthesizes 3000 hourly orders starting 2023-01-01, each placed by
// a customer of the shared customer space.
func Orders(space *identity.Space, rand *fake.Faker) *identity.Fallback {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return &identity.Fallback{
		From: 1,
		To:   3001,
		Project: func(key int64) identity.Attributes {
			var customer any
			if entry, err := space.KeysOrFallback(identity.Customers, Customers); err == nil && entry.Len() > 0 {
				customer = entry.Keys[rand.IntN(entry.Len())]
			}
			return identity.Attributes{
				"customer_id":  customer,
				"order_date":   start.Add(time.Duration(key-1) * time.Hour),
				"order_amount": fake.Round2(rand.Uniform(20, 1500)),
				"status":       rand.Pick(OrderStatuses),
			}
		},
	}
}
