package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"tripbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFlights() []models.RawFlight {
	return []models.RawFlight{
		{ID: "F1", Departure: "BER", Arrival: "LIS", Price: json.Number("200")},
	}
}

func validHotels() []models.RawHotel {
	return []models.RawHotel{
		{ID: "H1", Name: "Hotel Lisboa", PricePerNight: json.Number("100")},
	}
}

func TestNormalize_Valid(t *testing.T) {
	cat, err := Normalize(validFlights(), validHotels(), 5000)
	require.NoError(t, err)

	require.Len(t, cat.Flights, 1)
	require.Len(t, cat.Hotels, 1)
	assert.Equal(t, "F1", cat.Flights[0].ID)
	assert.Equal(t, 200.0, cat.Flights[0].Price)
	assert.Equal(t, "Hotel Lisboa", cat.Hotels[0].Name)
	assert.Equal(t, 100.0, cat.Hotels[0].PricePerNight)
	assert.Equal(t, 5000, cat.Points)
}

func TestNormalize_RejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name    string
		flights []models.RawFlight
		hotels  []models.RawHotel
		points  int
		field   string
	}{
		{
			name: "flight missing id",
			flights: []models.RawFlight{
				{Departure: "BER", Arrival: "LIS", Price: json.Number("200")},
			},
			hotels: validHotels(),
			field:  "flights[0].id",
		},
		{
			name: "flight missing departure",
			flights: []models.RawFlight{
				{ID: "F1", Arrival: "LIS", Price: json.Number("200")},
			},
			hotels: validHotels(),
			field:  "flights[0].departure",
		},
		{
			name: "flight missing arrival",
			flights: []models.RawFlight{
				{ID: "F1", Departure: "BER", Price: json.Number("200")},
			},
			hotels: validHotels(),
			field:  "flights[0].arrival",
		},
		{
			name: "flight price not numeric",
			flights: []models.RawFlight{
				{ID: "F1", Departure: "BER", Arrival: "LIS", Price: json.Number("cheap")},
			},
			hotels: validHotels(),
			field:  "flights[0].price",
		},
		{
			name: "flight price negative",
			flights: []models.RawFlight{
				{ID: "F1", Departure: "BER", Arrival: "LIS", Price: json.Number("-1")},
			},
			hotels: validHotels(),
			field:  "flights[0].price",
		},
		{
			name:    "hotel missing name",
			flights: validFlights(),
			hotels: []models.RawHotel{
				{ID: "H1", PricePerNight: json.Number("100")},
			},
			field: "hotels[0].name",
		},
		{
			name:    "hotel nightly price negative",
			flights: validFlights(),
			hotels: []models.RawHotel{
				{ID: "H1", Name: "Hotel", PricePerNight: json.Number("-50")},
			},
			field: "hotels[0].price_per_night",
		},
		{
			name:    "negative points",
			flights: validFlights(),
			hotels:  validHotels(),
			points:  -1,
			field:   "user_points",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := Normalize(tt.flights, tt.hotels, tt.points)
			require.Error(t, err)

			var entryErr *EntryError
			require.True(t, errors.As(err, &entryErr))
			assert.Equal(t, tt.field, entryErr.Field)
			assert.Equal(t, "invalidCatalogEntry", entryErr.Code)

			// No partial catalogs.
			assert.Empty(t, cat.Flights)
			assert.Empty(t, cat.Hotels)
		})
	}
}

func TestNormalize_SecondEntryFailsBatch(t *testing.T) {
	flights := append(validFlights(), models.RawFlight{
		ID: "F2", Departure: "BER", Arrival: "OPO", Price: json.Number("nope"),
	})
	_, err := Normalize(flights, validHotels(), 0)

	var entryErr *EntryError
	require.True(t, errors.As(err, &entryErr))
	assert.Equal(t, "flights[1].price", entryErr.Field)
}

func TestCatalogLookups(t *testing.T) {
	cat, err := Normalize(validFlights(), validHotels(), 0)
	require.NoError(t, err)

	f, ok := cat.FlightByID("F1")
	require.True(t, ok)
	assert.Equal(t, 200.0, f.Price)

	h, ok := cat.HotelByID("H1")
	require.True(t, ok)
	assert.Equal(t, "Hotel Lisboa", h.Name)

	_, ok = cat.FlightByID("F9")
	assert.False(t, ok)
	_, ok = cat.HotelByID("H9")
	assert.False(t, ok)
}
