package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOrderRespectsDependencies(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("crm", []string{"ecommerce", "finance", "marketing"})
	g.Add("web", []string{"ecommerce"})
	g.Add("finance", nil)
	g.Add("ecommerce", []string{"finance"})
	g.Add("marketing", []string{"finance"})

	order, err := g.BuildOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"finance", "ecommerce", "marketing", "crm", "web"}, order)
	assert.Equal(t, order, g.GetOrder())
}

func TestBuildOrderDetectsCycle(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("a", []string{"b"})
	g.Add("b", []string{"a"})

	_, err := g.BuildOrder()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestBuildOrderUnknownDependency(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("web", []string{"ecommerce"})

	_, err := g.BuildOrder()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown domain ecommerce")
}

func TestSelection(t *testing.T) {
	order := []string{"finance", "ecommerce"}

	all, err := selection(order, nil)
	require.NoError(t, err)
	assert.True(t, all["finance"])
	assert.True(t, all["ecommerce"])

	some, err := selection(order, []string{"ecommerce"})
	require.NoError(t, err)
	assert.False(t, some["finance"])
	assert.True(t, some["ecommerce"])

	_, err = selection(order, []string{"hr"})
	assert.EqualError(t, err, "unknown domain: hr")
}
