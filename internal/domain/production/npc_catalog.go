package production

import "strings"

// RawGoodRule maps a keyword found in an NPC factory name to the raw good it extracts
type RawGoodRule struct {
	Keyword  string
	ItemName string
}

// DefaultRawGoodRules is the keyword table for Tier-0 factories.
// Rules are checked in order; the first keyword contained in the lowercased
// factory name wins.
var DefaultRawGoodRules = []RawGoodRule{
	{"céréal", "Raw Wheat"},
	{"agricole", "Raw Wheat"},
	{"élevage", "Raw Meat"},
	{"boucherie", "Raw Meat"},
	{"laiterie", "Raw Milk"},
	{"laitière", "Raw Milk"},
	{"fromagerie", "Raw Milk"},
	{"verger", "Raw Fruits"},
	{"fruits", "Raw Fruits"},
	{"maraîcher", "Raw Vegetables"},
	{"légumes", "Raw Vegetables"},
	{"pêcherie", "Raw Fish"},
	{"criée", "Raw Fish"},
	{"poisson", "Raw Fish"},
	{"raffinerie", "Crude Oil"},
	{"biocarburant", "Crude Oil"},
	{"gisement", "Natural Gas"},
	{"carrière", "Raw Stone"},
	{"mine", "Iron Ore"},
	{"minier", "Coal"},
	{"bois", "Raw Wood"},
	{"forêt", "Raw Wood"},
	{"eaux", "Raw Water"},
	{"source", "Raw Water"},
	{"sel", "Raw Salt"},
	{"sucre", "Raw Sugar"},
}

// RawGoodCatalog resolves which raw good an NPC factory produces
type RawGoodCatalog struct {
	rules []RawGoodRule
}

// NewRawGoodCatalog builds a catalog from rules; nil means the defaults
func NewRawGoodCatalog(rules []RawGoodRule) *RawGoodCatalog {
	if rules == nil {
		rules = DefaultRawGoodRules
	}
	normalized := make([]RawGoodRule, 0, len(rules))
	for _, r := range rules {
		normalized = append(normalized, RawGoodRule{Keyword: strings.ToLower(r.Keyword), ItemName: r.ItemName})
	}
	return &RawGoodCatalog{rules: normalized}
}

// ItemFor returns the item name for a factory name, or false when no keyword matches
func (c *RawGoodCatalog) ItemFor(factoryName string) (string, bool) {
	name := strings.ToLower(factoryName)
	for _, r := range c.rules {
		if strings.Contains(name, r.Keyword) {
			return r.ItemName, true
		}
	}
	return "", false
}
