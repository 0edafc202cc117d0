package integrity

import (
	"errors"
	"testing"

	"github.com/Rana718/dataforge/internal/identity"
	"github.com/Rana718/dataforge/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemsSchema = table.Schema{
	Name: "order_items",
	Columns: []table.Column{
		{Name: "order_item_id", Kind: table.Int},
		{Name: "order_id", Kind: table.Int},
	},
	ForeignKeys: []table.ForeignKey{{Column: "order_id", Entity: "ecommerce_orders"}},
}

func buildItems(t *testing.T, rows ...[]any) *table.Table {
	t.Helper()
	b := table.NewBuilder(itemsSchema)
	for _, r := range rows {
		b.Add(r...)
	}
	tbl, err := b.Build()
	require.NoError(t, err)
	return tbl
}

func TestCheckPasses(t *testing.T) {
	space := identity.NewSpace()
	require.NoError(t, space.Register(identity.EcommerceOrders, []int64{100, 101}, identity.Upstream, nil))

	items := buildItems(t, []any{1, 100}, []any{2, 100}, []any{3, nil})
	assert.Empty(t, Check(space, []*table.Table{items}))
	assert.NoError(t, Validate(space, []*table.Table{items}))
}

func TestCheckReportsDanglingKey(t *testing.T) {
	space := identity.NewSpace()
	require.NoError(t, space.Register(identity.EcommerceOrders, []int64{100}, identity.Upstream, nil))

	items := buildItems(t, []any{1, 100}, []any{2, 999})
	violations := Check(space, []*table.Table{items})
	require.Len(t, violations, 1)
	assert.Equal(t, Violation{Table: "order_items", Column: "order_id", Entity: "ecommerce_orders", Row: 2, Value: 999}, violations[0])

	err := Validate(space, []*table.Table{items})
	var verr *ViolationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "999 is not a known ecommerce_orders key")
}

func TestCheckReportsUnregisteredEntity(t *testing.T) {
	items := buildItems(t, []any{1, 100})
	violations := Check(identity.NewSpace(), []*table.Table{items})
	require.Len(t, violations, 1)
	assert.True(t, violations[0].Unresolved)
}

func TestViolationErrorTruncates(t *testing.T) {
	space := identity.NewSpace()
	require.NoError(t, space.Register(identity.EcommerceOrders, nil, identity.Upstream, nil))

	var rows [][]any
	for i := 1; i <= 8; i++ {
		rows = append(rows, []any{i, 500 + i})
	}
	err := Validate(space, []*table.Table{buildItems(t, rows...)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "8 foreign key violation(s)")
	assert.Contains(t, err.Error(), "; ...")
}
