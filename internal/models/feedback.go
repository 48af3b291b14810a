package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Location values the dashboard knows how to chart, in legend order.
const (
	LocationCheckIn   = "Check-in"
	LocationArrivals  = "Arrivals"
	LocationDeparture = "Departure"
)

// Rating values the dashboard knows how to chart, in legend order.
const (
	RatingVeryBad  = "Very Bad"
	RatingBad      = "Bad"
	RatingAverage  = "Average"
	RatingGood     = "Good"
	RatingVeryGood = "Very Good"
)

// Locations is the closed location set in declared order.
var Locations = []string{LocationCheckIn, LocationArrivals, LocationDeparture}

// Ratings is the closed rating set in declared order.
var Ratings = []string{RatingVeryBad, RatingBad, RatingAverage, RatingGood, RatingVeryGood}

// Feedback is one survey response. Location and Rating are stored verbatim;
// the server does not check them against the closed sets.
type Feedback struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Location  string        `bson:"location" json:"location"`
	Rating    string        `bson:"rating" json:"rating"`
	Reasons   string        `bson:"reasons" json:"reasons"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

// IsKnownLocation reports whether loc is one of Locations.
func IsKnownLocation(loc string) bool {
	return contains(Locations, loc)
}

// IsKnownRating reports whether rating is one of Ratings.
func IsKnownRating(rating string) bool {
	return contains(Ratings, rating)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
