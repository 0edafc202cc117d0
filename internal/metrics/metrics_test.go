package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.AddRows("finance", "orders", 2000)
	m.AddRows("finance", "orders", 5)
	m.IncFallback("customers")
	m.IncLoaded()
	m.IncIntegrityFailure()

	assert.Equal(t, 2005.0, testutil.ToFloat64(m.RowsGenerated.WithLabelValues("finance", "orders")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("customers")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DomainsLoaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IntegrityFailures))
}

func TestInstancesDoNotShareRegistry(t *testing.T) {
	a, b := New(), New()
	a.IncFallback("orders")
	assert.Equal(t, 0, testutil.CollectAndCount(b.FallbacksTotal))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.AddRows("web", "sessions", 10)
	m.ObserveDomain("web", time.Now())

	path := filepath.Join(t.TempDir(), "dataforge.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `dataforge_rows_generated_total{domain="web",table="sessions"} 10`)
	assert.Contains(t, string(data), "dataforge_domain_duration_seconds_count")
}
