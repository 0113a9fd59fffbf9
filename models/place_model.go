package models

// Place is a local point of interest: a restaurant, bar, shop, attraction or park.
type Place struct {
	Slug             string            `json:"slug" bson:"slug"`
	Name             string            `json:"name" bson:"name"`
	Category         Category          `json:"category" bson:"category"`
	Subcategory      string            `json:"subcategory" bson:"subcategory"`
	ShortDescription string            `json:"shortDescription" bson:"shortDescription"`
	Description      string            `json:"description" bson:"description"`
	Address          string            `json:"address" bson:"address"`
	Phone            string            `json:"phone,omitempty" bson:"phone,omitempty"`
	Website          string            `json:"website,omitempty" bson:"website,omitempty"`
	Hours            map[string]string `json:"hours,omitempty" bson:"hours,omitempty"` // keyed by lower-case weekday
	PriceTier        PriceTier         `json:"priceTier,omitempty" bson:"priceTier,omitempty"`
	Features         []string          `json:"features" bson:"features"`
	Neighborhood     string            `json:"nearbyNeighborhood" bson:"nearbyNeighborhood"`
	NearbyPlaces     []string          `json:"nearbyPlaces,omitempty" bson:"nearbyPlaces,omitempty"`
	Image            string            `json:"image,omitempty" bson:"image,omitempty"`
	Location         *GeoPoint         `json:"location,omitempty" bson:"location,omitempty"`
}

// GeoPoint is a GeoJSON point, coordinates ordered [lon, lat].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}
