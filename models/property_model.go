package models

// Property is a real-estate listing, active or sold.
type Property struct {
	ID                string           `json:"id" bson:"id"`
	Slug              string           `json:"slug" bson:"slug"`
	Title             string           `json:"title" bson:"title"`
	Address           string           `json:"address" bson:"address"`
	Neighborhood      string           `json:"neighborhood" bson:"neighborhood"`
	DistanceToBeach   string           `json:"distanceToBeach" bson:"distanceToBeach"`
	Description       string           `json:"description" bson:"description"`
	Specs             PropertySpecs    `json:"specs" bson:"specs"`
	Pricing           PropertyPricing  `json:"pricing" bson:"pricing"`
	Features          PropertyFeatures `json:"features" bson:"features"`
	Featured          bool             `json:"featured" bson:"featured"`
	Images            []string         `json:"images,omitempty" bson:"images,omitempty"`
	RelatedProperties []string         `json:"relatedProperties,omitempty" bson:"relatedProperties,omitempty"`
}

type PropertySpecs struct {
	Bedrooms   int     `json:"bedrooms" bson:"bedrooms"`
	Bathrooms  float64 `json:"bathrooms" bson:"bathrooms"`
	SquareFeet int     `json:"sqft" bson:"sqft"`
	LotSize    string  `json:"lotSize,omitempty" bson:"lotSize,omitempty"`
	YearBuilt  int     `json:"yearBuilt,omitempty" bson:"yearBuilt,omitempty"`
	Floors     int     `json:"floors,omitempty" bson:"floors,omitempty"`
}

// PropertyPricing holds whole-dollar amounts.
type PropertyPricing struct {
	ListPrice    int64  `json:"listPrice" bson:"listPrice"`
	PricePerSqFt int    `json:"pricePerSqft,omitempty" bson:"pricePerSqft,omitempty"`
	DaysOnMarket int    `json:"daysOnMarket" bson:"daysOnMarket"`
	SalePrice    *int64 `json:"salePrice,omitempty" bson:"salePrice,omitempty"`
	SaleDate     string `json:"saleDate,omitempty" bson:"saleDate,omitempty"`
}

type PropertyFeatures struct {
	Highlights []string `json:"highlights" bson:"highlights"`
	Indoor     []string `json:"indoor" bson:"indoor"`
	Outdoor    []string `json:"outdoor" bson:"outdoor"`
	Investment []string `json:"investment,omitempty" bson:"investment,omitempty"`
}

// Sold reports whether the listing carries a closed sale.
func (p Property) Sold() bool {
	return p.Pricing.SalePrice != nil
}

// AllFeatures returns highlights, indoor and outdoor amenities in that order.
func (f PropertyFeatures) AllFeatures() []string {
	out := make([]string, 0, len(f.Highlights)+len(f.Indoor)+len(f.Outdoor))
	out = append(out, f.Highlights...)
	out = append(out, f.Indoor...)
	return append(out, f.Outdoor...)
}
