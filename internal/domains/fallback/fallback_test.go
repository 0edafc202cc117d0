package fallback

import (
	"testing"
	"time"

	"github.com/Rana718/dataforge/internal/fake"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersProjection(t *testing.T) {
	space := identity.NewSpace()
	e, err := space.KeysOrFallback(identity.Orders, *Orders(space, fake.New(1)))
	require.NoError(t, err)

	assert.Equal(t, 3000, e.Len())
	assert.Equal(t, identity.Synthetic, e.Provenance)

	customers, err := space.Lookup(identity.Customers)
	require.NoError(t, err)
	assert.Equal(t, identity.Synthetic, customers.Provenance)

	for _, k := range e.Keys {
		attrs := e.Attributes(k)
		assert.True(t, customers.Contains(attrs["customer_id"].(int64)))
		assert.Contains(t, OrderStatuses, attrs["status"])
		amount := attrs["order_amount"].(float64)
		assert.GreaterOrEqual(t, amount, 20.0)
		assert.LessOrEqual(t, amount, 1500.0)
	}
	assert.Equal(t, time.Date(2023, 1, 1, 2, 0, 0, 0, time.UTC), e.Attributes(3)["order_date"])
}

func TestOrdersUsesRegisteredCustomers(t *testing.T) {
	space := identity.NewSpace()
	require.NoError(t, space.Register(identity.Customers, []int64{7}, identity.Upstream, nil))

	e, err := space.KeysOrFallback(identity.Orders, *Orders(space, fake.New(1)))
	require.NoError(t, err)
	assert.Equal(t, int64(7), e.Attributes(1)["customer_id"])
	assert.Equal(t, int64(7), e.Attributes(3000)["customer_id"])
}
