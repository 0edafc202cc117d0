package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	Name: "orders",
	Columns: []Column{
		{Name: "order_id", Kind: Int},
		{Name: "amount", Kind: Float},
		{Name: "status", Kind: String},
		{Name: "order_date", Kind: DateTime},
	},
}

func TestBuilderNormalizesValues(t *testing.T) {
	b := NewBuilder(testSchema)
	ts := time.Date(2023, 1, 1, 5, 0, 0, 0, time.UTC)
	b.Add(1, 10, "completed", ts)
	b.Add(int64(2), 2.5, "pending", nil)

	tbl, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	assert.Equal(t, int64(1), tbl.Get(0, "order_id"))
	assert.Equal(t, 10.0, tbl.Get(0, "amount"))
	assert.Nil(t, tbl.Get(1, "order_date"))
	assert.Nil(t, tbl.Get(0, "missing"))
	assert.Equal(t, []int64{1, 2}, tbl.Ints("order_id"))
}

func TestBuilderTruncatesDates(t *testing.T) {
	schema := Schema{Name: "visits", Columns: []Column{{Name: "visit_date", Kind: Date}, {Name: "seen_at", Kind: DateTime}}}
	local := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2023, 3, 15, 1, 30, 0, 0, local)

	b := NewBuilder(schema)
	b.Add(ts, ts)
	tbl, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC), tbl.Get(0, "visit_date"))
	assert.Equal(t, time.Date(2023, 3, 14, 23, 30, 0, 0, time.UTC), tbl.Get(0, "seen_at"))

	parsed, err := Parse(Date, Format(Date, tbl.Get(0, "visit_date")))
	require.NoError(t, err)
	assert.Equal(t, tbl.Get(0, "visit_date"), parsed)
}

func TestBuilderRejectsWrongWidth(t *testing.T) {
	b := NewBuilder(testSchema)
	b.Add(1, 2.0)
	b.Add(2, 3.0, "ok", nil)

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestBuilderRejectsWrongKind(t *testing.T) {
	b := NewBuilder(testSchema)
	b.Add("one", 2.0, "ok", nil)

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_id")
}

func TestFormatParseRoundTrip(t *testing.T) {
	ts := time.Date(2023, 3, 4, 10, 30, 0, 0, time.UTC)
	cases := []struct {
		kind Kind
		v    any
		text string
	}{
		{Int, int64(42), "42"},
		{Float, 19.99, "19.99"},
		{Float, 0.0125, "0.0125"},
		{String, "Net 30", "Net 30"},
		{Date, time.Date(2023, 3, 4, 0, 0, 0, 0, time.UTC), "2023-03-04"},
		{DateTime, ts, "2023-03-04 10:30:00"},
		{Int, nil, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.text, Format(c.kind, c.v))
		got, err := Parse(c.kind, c.text)
		require.NoError(t, err)
		assert.Equal(t, c.v, got)
	}
}
