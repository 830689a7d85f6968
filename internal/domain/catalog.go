package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogSnapshot is the authoritative menu, pricing and schedule data for a
// single restaurant. It is fetched once per cart session and is read-only to
// the reconciliation and pricing code.
type CatalogSnapshot struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID string             `bson:"restaurant_id" json:"restaurant_id"`
	Name         string             `bson:"name" json:"name"`
	IsAvailable  bool               `bson:"is_available" json:"is_available"`
	Tax          float64            `bson:"tax" json:"tax"`
	MinimumOrder float64            `bson:"minimum_order" json:"minimum_order"`
	DeliveryInfo DeliveryInfo       `bson:"delivery_info" json:"delivery_info"`
	Location     GeoPoint           `bson:"location" json:"location"`
	OpeningTimes []OpeningTimes     `bson:"opening_times" json:"opening_times"`
	Categories   []Category         `bson:"categories" json:"categories"`
	Addons       []Addon            `bson:"addons" json:"addons"`
	Options      []Option           `bson:"options" json:"options"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

type DeliveryInfo struct {
	DeliveryAvailable bool `bson:"delivery_available" json:"delivery_available"`
	PickupAvailable   bool `bson:"pickup_available" json:"pickup_available"`
}

type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// OpeningTimes holds the ordered service windows for one weekday.
// Day uses the three-letter codes SUN..SAT.
type OpeningTimes struct {
	Day   string       `bson:"day" json:"day"`
	Times []TimeWindow `bson:"times" json:"times"`
}

type TimeWindow struct {
	StartHour   int `bson:"start_hour" json:"start_hour"`
	StartMinute int `bson:"start_minute" json:"start_minute"`
	EndHour     int `bson:"end_hour" json:"end_hour"`
	EndMinute   int `bson:"end_minute" json:"end_minute"`
}

type Category struct {
	ID    string `bson:"id" json:"id"`
	Title string `bson:"title" json:"title"`
	Foods []Food `bson:"foods" json:"foods"`
}

type Food struct {
	ID          string      `bson:"id" json:"id"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description" json:"description"`
	Variations  []Variation `bson:"variations" json:"variations"`
	Addons      []string    `bson:"addons" json:"addons"`
}

type Variation struct {
	ID    string  `bson:"id" json:"id"`
	Title string  `bson:"title" json:"title"`
	Price float64 `bson:"price" json:"price"`
}

// Addon is a shared selection group referenced by foods. Options lists the
// ids of the priced choices that belong to the group.
type Addon struct {
	ID              string   `bson:"id" json:"id"`
	Title           string   `bson:"title" json:"title"`
	QuantityMinimum int      `bson:"quantity_minimum" json:"quantity_minimum"`
	QuantityMaximum int      `bson:"quantity_maximum" json:"quantity_maximum"`
	Options         []string `bson:"options" json:"options"`
}

type Option struct {
	ID    string  `bson:"id" json:"id"`
	Title string  `bson:"title" json:"title"`
	Price float64 `bson:"price" json:"price"`
}
