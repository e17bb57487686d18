package models

import "encoding/json"

// RawFlight is an unvalidated inbound flight entry. Prices arrive as
// json.Number so malformed values are rejected by the normalizer instead
// of being silently zeroed during binding.
type RawFlight struct {
	ID            string      `json:"id"`
	Departure     string      `json:"departure"`
	Arrival       string      `json:"arrival"`
	DepartureDate string      `json:"departure_date,omitempty"`
	ArrivalDate   string      `json:"arrival_date,omitempty"`
	Price         json.Number `json:"price"`
}

// RawHotel is an unvalidated inbound hotel entry.
type RawHotel struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	PricePerNight json.Number `json:"price_per_night"`
}

// ChatRequest is the payload coming from the frontend into /api/ai/chat.
// UserPoints is a pointer so that an absent field and an explicit zero
// balance are distinguishable.
type ChatRequest struct {
	UserID     string      `json:"user_id"` // unique user identifier, defaults to "guest"
	Message    string      `json:"message"` // user's message for this turn
	Flights    []RawFlight `json:"flights"`
	Hotels     []RawHotel  `json:"hotels"`
	UserPoints *int        `json:"user_points"`
	StayNights int         `json:"stay_nights,omitempty"` // optional, defaults to DefaultStayNights
}

// HasPoints reports whether the caller explicitly supplied a points
// balance. A present zero counts as supplied.
func (r *ChatRequest) HasPoints() bool {
	return r.UserPoints != nil
}

// Points returns the supplied balance, or zero when absent.
func (r *ChatRequest) Points() int {
	if r.UserPoints == nil {
		return 0
	}
	return *r.UserPoints
}

// ChatResponse is what the handler returns to the frontend. Itinerary is
// an empty object on gate short-circuits and clarifications.
type ChatResponse struct {
	Message   string     `json:"message"`
	Itinerary *Itinerary `json:"itinerary"`
}

// MarshalJSON renders a nil itinerary as {} rather than null so clients
// can index into the field unconditionally.
func (r ChatResponse) MarshalJSON() ([]byte, error) {
	type alias struct {
		Message   string          `json:"message"`
		Itinerary json.RawMessage `json:"itinerary"`
	}
	out := alias{Message: r.Message, Itinerary: json.RawMessage("{}")}
	if r.Itinerary != nil {
		b, err := json.Marshal(r.Itinerary)
		if err != nil {
			return nil, err
		}
		out.Itinerary = b
	}
	return json.Marshal(out)
}
