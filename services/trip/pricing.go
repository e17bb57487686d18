package trip

import (
	"math"

	"tripbot/models"
)

// TotalCost computes the deterministic trip cost: flight price plus
// nightly price times the stay length. Non-positive stay lengths fall
// back to the default of 3 nights.
func TotalCost(flight models.Flight, hotel models.Hotel, stayNights int) float64 {
	if stayNights <= 0 {
		stayNights = models.DefaultStayNights
	}
	return flight.Price + hotel.PricePerNight*float64(stayNights)
}

// PointsRedeemed caps redemption at both the user's balance and the
// cost-equivalent number of points at the fixed $0.01 rate. The cap is
// computed as cost*100 rather than cost/0.01: dividing by the inexact
// binary 0.01 floors 500/0.01 to 49999.
func PointsRedeemed(balance int, totalCost float64) int {
	redeemable := int(math.Floor(totalCost * 100))
	if balance < redeemable {
		return balance
	}
	return redeemable
}
