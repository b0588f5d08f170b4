package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountConnectors(t *testing.T) {
	counter := NewConnectorCounter(DefaultConnectorCatalog())

	tests := []struct {
		name     string
		text     string
		basic    int
		advanced int
	}{
		{"multi-word phrase claims its span", "as a result", 0, 1},
		{"basic connectors", "I am tired but I continued because I wanted to finish", 2, 0},
		{"case insensitive", "AND So BECAUSE", 3, 0},
		{"no partial words", "also android sober", 0, 0},
		{"mixed", "However, we left early and, in other words, we missed it.", 1, 2},
		{"phrase inside longer phrase", "on the other hand, thus", 0, 2},
		{"repeated connector", "and and and", 3, 0},
		{"punctuation is a boundary", "(therefore)", 0, 1},
		{"for example and for instance", "For example, cats. For instance, dogs.", 0, 2},
		{"empty text", "", 0, 0},
		{"whitespace only", " \t\n", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := counter.CountConnectors(tt.text)
			assert.Equal(t, tt.basic, got.BasicCount, "basic")
			assert.Equal(t, tt.advanced, got.AdvancedCount, "advanced")
		})
	}
}

func TestCountConnectorsPassOrder(t *testing.T) {
	catalog, err := ParseConnectorCatalog([]byte(`
basic: [and, so]
advanced: [so, and so]
`))
	require.NoError(t, err)
	counter := NewConnectorCounter(catalog)

	assert.Equal(t, ConnectorCountResult{BasicCount: 0, AdvancedCount: 1}, counter.CountConnectors("and so"))
	assert.Equal(t, ConnectorCountResult{BasicCount: 1, AdvancedCount: 0}, counter.CountConnectors("so"))
	assert.Equal(t, ConnectorCountResult{BasicCount: 1, AdvancedCount: 1}, counter.CountConnectors("and so, and"))
}

func TestCountConnectorsIsIdempotent(t *testing.T) {
	counter := NewConnectorCounter(nil)
	text := "Moreover, the plan failed; as a result, and because of that, we stopped."

	first := counter.CountConnectors(text)
	assert.Equal(t, first, counter.CountConnectors(text))
	assert.Equal(t, ConnectorCountResult{BasicCount: 2, AdvancedCount: 2}, first)
	assert.Equal(t, 4, first.Total())
}

func TestParseConnectorCatalog(t *testing.T) {
	catalog := DefaultConnectorCatalog()
	assert.Equal(t, []string{"and", "but", "so", "because"}, catalog.Basic)
	assert.Len(t, catalog.Advanced, 22)
	assert.Len(t, catalog.MultiWordAdvanced(), 8)
	assert.Contains(t, catalog.SingleWordAdvanced(), "nevertheless")

	custom, err := ParseConnectorCatalog([]byte("basic: ['  AND ', '']\nadvanced: ['As   A Result']\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"and"}, custom.Basic)
	assert.Equal(t, []string{"as a result"}, custom.Advanced)

	_, err = ParseConnectorCatalog([]byte("basic: []\n"))
	assert.Error(t, err)

	_, err = ParseConnectorCatalog([]byte("basic: [and"))
	assert.Error(t, err)
}
