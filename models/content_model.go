package models

import "time"

type Event struct {
	Slug        string   `json:"slug" bson:"slug"`
	Title       string   `json:"title" bson:"title"`
	Category    string   `json:"category" bson:"category"`
	Month       int      `json:"month" bson:"month"`
	Date        string   `json:"date,omitempty" bson:"date,omitempty"`
	Location    string   `json:"location" bson:"location"`
	Description string   `json:"description" bson:"description"`
	Website     string   `json:"website,omitempty" bson:"website,omitempty"`
	Related     []string `json:"relatedItems,omitempty" bson:"relatedItems,omitempty"`
}

type Activity struct {
	Slug        string   `json:"slug" bson:"slug"`
	Name        string   `json:"name" bson:"name"`
	Category    string   `json:"category" bson:"category"`
	Description string   `json:"description" bson:"description"`
	Duration    string   `json:"duration,omitempty" bson:"duration,omitempty"`
	Season      string   `json:"season,omitempty" bson:"season,omitempty"`
	Related     []string `json:"relatedItems,omitempty" bson:"relatedItems,omitempty"`
}

// BestOfList is a curated ranking such as "best seafood".
type BestOfList struct {
	Slug        string       `json:"slug" bson:"slug"`
	Title       string       `json:"title" bson:"title"`
	Category    string       `json:"category" bson:"category"`
	Description string       `json:"description" bson:"description"`
	Items       []BestOfItem `json:"items" bson:"items"`
}

type BestOfItem struct {
	Rank      int    `json:"rank" bson:"rank"`
	Name      string `json:"name" bson:"name"`
	PlaceSlug string `json:"placeSlug,omitempty" bson:"placeSlug,omitempty"`
	Blurb     string `json:"blurb" bson:"blurb"`
}

type MonthlyGuide struct {
	Slug        string   `json:"slug" bson:"slug"`
	Month       string   `json:"month" bson:"month"`
	MonthNumber int      `json:"monthNumber" bson:"monthNumber"`
	Title       string   `json:"title" bson:"title"`
	Summary     string   `json:"summary" bson:"summary"`
	Weather     string   `json:"weather,omitempty" bson:"weather,omitempty"`
	Highlights  []string `json:"highlights" bson:"highlights"`
	Events      []string `json:"events,omitempty" bson:"events,omitempty"`
}

type LifestyleScenario struct {
	Slug              string   `json:"slug" bson:"slug"`
	Title             string   `json:"title" bson:"title"`
	Category          string   `json:"category" bson:"category"`
	Description       string   `json:"description" bson:"description"`
	Neighborhoods     []string `json:"neighborhoods,omitempty" bson:"neighborhoods,omitempty"`
	RelatedProperties []string `json:"relatedProperties,omitempty" bson:"relatedProperties,omitempty"`
}

type BlogPost struct {
	Slug        string     `json:"slug" bson:"slug"`
	Title       string     `json:"title" bson:"title"`
	Category    string     `json:"category" bson:"category"`
	Excerpt     string     `json:"excerpt" bson:"excerpt"`
	Author      string     `json:"author" bson:"author"`
	PublishedAt time.Time  `json:"publishedAt" bson:"publishedAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// LastModified is the update time when present, otherwise the publish time.
func (b BlogPost) LastModified() time.Time {
	if b.UpdatedAt != nil {
		return *b.UpdatedAt
	}
	return b.PublishedAt
}

type Testimonial struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Location string `json:"location" bson:"location"`
	Quote    string `json:"quote" bson:"quote"`
	Rating   int    `json:"rating" bson:"rating"`
	Featured bool   `json:"featured" bson:"featured"`
}
