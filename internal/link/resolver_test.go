package link

import (
	"testing"
	"time"

	"github.com/Rana718/dataforge/internal/fake"
	"github.com/Rana718/dataforge/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T) (*Resolver, *identity.Space) {
	t.Helper()
	space := identity.NewSpace()
	return NewResolver(space, fake.New(7)), space
}

func TestOneReturnsRegisteredKey(t *testing.T) {
	r, space := newResolver(t)
	require.NoError(t, space.Register(identity.Vendors, []int64{10, 20, 30}, identity.Upstream, nil))

	for i := 0; i < 50; i++ {
		k, err := r.One(Request{Entity: identity.Vendors})
		require.NoError(t, err)
		assert.Contains(t, []int64{10, 20, 30}, k)
	}
}

func TestUnknownEntityWithoutFallback(t *testing.T) {
	r, _ := newResolver(t)
	_, err := r.One(Request{Entity: identity.Campaigns})
	assert.ErrorIs(t, err, identity.ErrUnknownEntityType)
}

func TestFallbackUsedWhenAbsent(t *testing.T) {
	r, space := newResolver(t)
	fb := &identity.Fallback{From: 1, To: 11}

	k, err := r.One(Request{Entity: identity.Customers, Fallback: fb})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, k, int64(1))
	assert.Less(t, k, int64(11))

	e, err := space.Lookup(identity.Customers)
	require.NoError(t, err)
	assert.Equal(t, identity.Synthetic, e.Provenance)
}

func TestFilterAgainstProjection(t *testing.T) {
	r, space := newResolver(t)
	attrs := map[int64]identity.Attributes{
		1: {"status": "completed"},
		2: {"status": "canceled"},
		3: {"status": "completed"},
	}
	require.NoError(t, space.Register(identity.Orders, []int64{1, 2, 3}, identity.Upstream, attrs))

	keys, err := r.Candidates(Request{Entity: identity.Orders, Filter: AttrEquals("status", "completed")})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, keys)
}

func TestFilterIgnoredWithoutProjection(t *testing.T) {
	r, space := newResolver(t)
	require.NoError(t, space.Register(identity.Products, []int64{1, 2}, identity.Upstream, nil))

	keys, err := r.Candidates(Request{Entity: identity.Products, Filter: AttrEquals("status", "x")})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, keys)
}

func TestEmptyCandidateSet(t *testing.T) {
	r, space := newResolver(t)
	attrs := map[int64]identity.Attributes{1: {"status": "canceled"}}
	require.NoError(t, space.Register(identity.Orders, []int64{1}, identity.Upstream, attrs))

	_, err := r.One(Request{Entity: identity.Orders, Filter: AttrEquals("status", "completed")})
	assert.ErrorIs(t, err, ErrEmptyCandidateSet)

	_, err = r.One(Request{Entity: identity.EcommerceOrders, Fallback: &identity.Fallback{From: 1, To: 1}})
	assert.ErrorIs(t, err, ErrEmptyCandidateSet)
}

func TestSampleWithoutReplacementIsDistinct(t *testing.T) {
	r, space := newResolver(t)
	keys := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, space.Register(identity.Orders, keys, identity.Upstream, nil))

	got, err := r.Sample(Request{Entity: identity.Orders}, 8, WithoutReplacement)
	require.NoError(t, err)
	assert.ElementsMatch(t, keys, got)

	_, err = r.Sample(Request{Entity: identity.Orders}, 9, WithoutReplacement)
	assert.ErrorIs(t, err, ErrSampleTooLarge)
}

func TestSampleWithReplacementMayExceedPool(t *testing.T) {
	r, space := newResolver(t)
	require.NoError(t, space.Register(identity.Products, []int64{4, 5}, identity.Upstream, nil))

	got, err := r.Sample(Request{Entity: identity.Products}, 20, WithReplacement)
	require.NoError(t, err)
	assert.Len(t, got, 20)
	for _, k := range got {
		assert.Contains(t, []int64{4, 5}, k)
	}
}

func TestAttrWithin(t *testing.T) {
	base := time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC)
	pred := AttrWithin("visit_date", base.AddDate(0, 0, -3), base.AddDate(0, 0, 3))

	assert.True(t, pred(1, identity.Attributes{"visit_date": base.AddDate(0, 0, 3)}))
	assert.True(t, pred(1, identity.Attributes{"visit_date": base.AddDate(0, 0, -3)}))
	assert.False(t, pred(1, identity.Attributes{"visit_date": base.AddDate(0, 0, 4)}))
	assert.False(t, pred(1, identity.Attributes{"visit_date": nil}))
}

func TestAnd(t *testing.T) {
	pred := And(AttrEquals("a", 1), AttrEquals("b", "x"))
	assert.True(t, pred(1, identity.Attributes{"a": 1, "b": "x"}))
	assert.False(t, pred(1, identity.Attributes{"a": 1, "b": "y"}))
}

func TestSameSeedSameDraws(t *testing.T) {
	draw := func() []int64 {
		space := identity.NewSpace()
		r := NewResolver(space, fake.New(99))
		out, err := r.Sample(Request{Entity: identity.Customers, Fallback: &identity.Fallback{From: 1, To: 1501}}, 25, WithReplacement)
		require.NoError(t, err)
		return out
	}
	assert.Equal(t, draw(), draw())
}
