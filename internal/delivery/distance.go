package delivery

import (
	"math"

	"github.com/shopspring/decimal"
)

const earthRadiusKm = 6371.0

// Distance returns the geodesic distance in kilometers between two points,
// by the haversine formula.
func Distance(latOrigin, lonOrigin, latDest, lonDest float64) float64 {
	dLat := toRadians(latDest - latOrigin)
	dLon := toRadians(lonDest - lonOrigin)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(latOrigin))*math.Cos(toRadians(latDest))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Charge converts a distance into a delivery fee: the distance is rounded up
// to whole kilometers and multiplied by the per-kilometer rate. The rate
// itself is the floor, so a zero-distance order still pays the base rate.
func Charge(distanceKm, ratePerKm float64) decimal.Decimal {
	amount := math.Ceil(distanceKm) * ratePerKm
	if amount <= 0 {
		amount = ratePerKm
	}
	return decimal.NewFromFloat(amount).Round(2)
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
