package catalog

import (
	"fmt"

	"tripbot/models"
)

// Catalog is the validated candidate inventory for a single request turn.
// It is owned per-request and never persisted across turns.
type Catalog struct {
	Flights []models.Flight
	Hotels  []models.Hotel
	Points  int
}

// FlightByID returns the flight with the given id, if present.
func (c Catalog) FlightByID(id string) (models.Flight, bool) {
	for _, f := range c.Flights {
		if f.ID == id {
			return f, true
		}
	}
	return models.Flight{}, false
}

// HotelByID returns the hotel with the given id, if present.
func (c Catalog) HotelByID(id string) (models.Hotel, bool) {
	for _, h := range c.Hotels {
		if h.ID == id {
			return h, true
		}
	}
	return models.Hotel{}, false
}

// Normalize validates the raw inventory payloads into typed entities.
// Any malformed entry fails the whole batch; there are no partial
// catalogs. The transform is pure.
func Normalize(flights []models.RawFlight, hotels []models.RawHotel, points int) (Catalog, error) {
	cat := Catalog{
		Flights: make([]models.Flight, 0, len(flights)),
		Hotels:  make([]models.Hotel, 0, len(hotels)),
	}

	for i, rf := range flights {
		if rf.ID == "" {
			return Catalog{}, NewEntryError(fmt.Sprintf("flights[%d].id", i), "flight id is required")
		}
		if rf.Departure == "" {
			return Catalog{}, NewEntryError(fmt.Sprintf("flights[%d].departure", i), "flight departure is required")
		}
		if rf.Arrival == "" {
			return Catalog{}, NewEntryError(fmt.Sprintf("flights[%d].arrival", i), "flight arrival is required")
		}
		price, err := rf.Price.Float64()
		if err != nil {
			return Catalog{}, NewEntryError(fmt.Sprintf("flights[%d].price", i), "price must be numeric")
		}
		if price < 0 {
			return Catalog{}, NewEntryError(fmt.Sprintf("flights[%d].price", i), "price must be non-negative")
		}
		cat.Flights = append(cat.Flights, models.Flight{
			ID:            rf.ID,
			Departure:     rf.Departure,
			Arrival:       rf.Arrival,
			DepartureDate: rf.DepartureDate,
			ArrivalDate:   rf.ArrivalDate,
			Price:         price,
		})
	}

	for i, rh := range hotels {
		if rh.ID == "" {
			return Catalog{}, NewEntryError(fmt.Sprintf("hotels[%d].id", i), "hotel id is required")
		}
		if rh.Name == "" {
			return Catalog{}, NewEntryError(fmt.Sprintf("hotels[%d].name", i), "hotel name is required")
		}
		price, err := rh.PricePerNight.Float64()
		if err != nil {
			return Catalog{}, NewEntryError(fmt.Sprintf("hotels[%d].price_per_night", i), "price must be numeric")
		}
		if price < 0 {
			return Catalog{}, NewEntryError(fmt.Sprintf("hotels[%d].price_per_night", i), "price must be non-negative")
		}
		cat.Hotels = append(cat.Hotels, models.Hotel{
			ID:            rh.ID,
			Name:          rh.Name,
			PricePerNight: price,
		})
	}

	if points < 0 {
		return Catalog{}, NewEntryError("user_points", "points balance must be non-negative")
	}
	cat.Points = points

	return cat, nil
}
