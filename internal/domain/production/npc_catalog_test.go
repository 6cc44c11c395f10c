package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawGoodCatalog_DefaultRules(t *testing.T) {
	catalog := NewRawGoodCatalog(nil)

	cases := map[string]string{
		"Coopérative Céréalière de Beauce": "Raw Wheat",
		"Laiterie du Jura":                 "Raw Milk",
		"Pêcherie de Lorient":              "Raw Fish",
		"Raffinerie de Donges":             "Crude Oil",
		"Mine de Lorraine":                 "Iron Ore",
		"Scierie des Bois du Nord":         "Raw Wood",
	}
	for name, want := range cases {
		got, ok := catalog.ItemFor(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestRawGoodCatalog_FirstMatchWins(t *testing.T) {
	catalog := NewRawGoodCatalog([]RawGoodRule{
		{Keyword: "FARM", ItemName: "Raw Wheat"},
		{Keyword: "dairy", ItemName: "Raw Milk"},
	})

	item, ok := catalog.ItemFor("Dairy Farm")
	assert.True(t, ok)
	assert.Equal(t, "Raw Wheat", item, "keywords are matched case-insensitively in rule order")

	_, ok = catalog.ItemFor("Steelworks")
	assert.False(t, ok)
}
