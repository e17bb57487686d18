package models

// Flight is one candidate flight supplied with a request turn.
// Values are never mutated after normalization.
type Flight struct {
	ID            string  `json:"id"`
	Departure     string  `json:"departure"`
	Arrival       string  `json:"arrival"`
	DepartureDate string  `json:"departure_date,omitempty"`
	ArrivalDate   string  `json:"arrival_date,omitempty"`
	Price         float64 `json:"price"`
}

// Hotel is one candidate hotel supplied with a request turn.
type Hotel struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
}

// Selection is the selector stage's choice. Both ids must reference
// entries in the catalog of the current turn.
type Selection struct {
	FlightID string `json:"flight_id"`
	HotelID  string `json:"hotel_id"`
}

// Itinerary is the final validated record returned to the user.
// Invariant: PointsUsed * PointValueUSD <= TotalCost.
type Itinerary struct {
	Flight     Flight  `json:"flight"`
	Hotel      Hotel   `json:"hotel"`
	TotalCost  float64 `json:"total_cost"`
	PointsUsed int     `json:"points_used"`
	Notes      string  `json:"notes"`
}

const (
	// PointValueUSD is the fixed redemption rate: $0.01 per point.
	PointValueUSD = 0.01

	// DefaultStayNights is assumed when the caller does not override
	// the stay length.
	DefaultStayNights = 3
)

// Speaker identifies who produced a conversation turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// ConversationTurn is one entry of a session's append-only history.
type ConversationTurn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}
