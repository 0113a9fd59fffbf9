package models

import "slices"

// Category is the closed set of place categories.
type Category string

const (
	CategoryRestaurants Category = "restaurants"
	CategoryBars        Category = "bars"
	CategoryShops       Category = "shops"
	CategoryAttractions Category = "attractions"
	CategoryParks       Category = "parks"
)

// Categories lists every place category in display order.
var Categories = []Category{
	CategoryRestaurants,
	CategoryBars,
	CategoryShops,
	CategoryAttractions,
	CategoryParks,
}

// ParseCategory maps a slug onto a Category. ok is false for anything outside the enumeration.
func ParseCategory(slug string) (Category, bool) {
	c := Category(slug)
	return c, c.Valid()
}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Label is the human-readable heading for the category.
func (c Category) Label() string {
	switch c {
	case CategoryRestaurants:
		return "Restaurants"
	case CategoryBars:
		return "Bars & Nightlife"
	case CategoryShops:
		return "Shopping"
	case CategoryAttractions:
		return "Attractions"
	case CategoryParks:
		return "Parks & Beaches"
	}
	return ""
}

// PathPrefix is the site path under which places of this category are served.
func (c Category) PathPrefix() string {
	if !c.Valid() {
		return ""
	}
	return "/" + string(c)
}

// PriceTier is the relative cost of a place, "$" through "$$$$".
type PriceTier string

const (
	PriceBudget     PriceTier = "$"
	PriceModerate   PriceTier = "$$"
	PriceUpscale    PriceTier = "$$$"
	PriceFineDining PriceTier = "$$$$"
)

func (p PriceTier) Valid() bool {
	switch p {
	case PriceBudget, PriceModerate, PriceUpscale, PriceFineDining:
		return true
	}
	return false
}
