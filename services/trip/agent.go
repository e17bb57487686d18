package trip

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripbot/models"
	"tripbot/services/catalog"
)

// SelectorAgent returns the stage-agent configuration for the candidate
// selection stage. The model picks which flight and hotel fit the
// conversation; it is not trusted with any arithmetic.
func SelectorAgent() models.AgentConfig {
	return models.AgentConfig{
		Name: "TripBot-Selector",
		Instructions: "You are TripBot, a friendly travel assistant.\n" +
			"You will receive a conversation followed by a catalog of candidate " +
			"flights and hotels and the user's reward-points balance.\n" +
			"Pick the single flight and hotel that best fit the user's request, " +
			"preferring the most economical combination unless the user asked otherwise.\n" +
			"Respond only with JSON, no markdown fences, using exactly this schema:\n" +
			`{"flight_id": "<id from the catalog>", "hotel_id": "<id from the catalog>"}`,
		Output: models.Schema{
			{Name: "flight_id", Kind: models.KindString},
			{Name: "hotel_id", Kind: models.KindString},
		},
	}
}

// FormatterAgent returns the stage-agent configuration for the itinerary
// formatting stage. The numeric fields it proposes are cross-checked and
// overwritten locally.
func FormatterAgent() models.AgentConfig {
	return models.AgentConfig{
		Name: "TripBot-Formatter",
		Instructions: "You are TripBot, a friendly travel assistant.\n" +
			"You will receive a chosen flight, a chosen hotel, the stay length, " +
			"the computed total cost and the points to redeem.\n" +
			"Write a short upbeat message presenting the offer and a one-line note " +
			"about the stay.\n" +
			"Respond only with JSON, no markdown fences, using exactly this schema:\n" +
			`{"message": "...", "notes": "...", "total_cost": <number>, "points_used": <number>}`,
		Output: models.Schema{
			{Name: "message", Kind: models.KindString},
			{Name: "notes", Kind: models.KindString},
			{Name: "total_cost", Kind: models.KindNumber},
			{Name: "points_used", Kind: models.KindNumber},
		},
	}
}

// buildSelectorInput assembles the single text context for the selector
// stage: prior history, the current turn last, then the serialized
// catalog.
func buildSelectorInput(turns []models.ConversationTurn, cat catalog.Catalog) string {
	var sb strings.Builder
	sb.WriteString("Conversation so far:\n")
	for _, t := range turns {
		sb.WriteString(string(t.Speaker))
		sb.WriteString(": ")
		sb.WriteString(t.Text)
		sb.WriteString("\n")
	}
	sb.WriteString("\nCatalog:\n")
	flights, _ := json.Marshal(cat.Flights)
	hotels, _ := json.Marshal(cat.Hotels)
	sb.WriteString("flights: ")
	sb.Write(flights)
	sb.WriteString("\nhotels: ")
	sb.Write(hotels)
	fmt.Fprintf(&sb, "\nuser_points: %d\n", cat.Points)
	return sb.String()
}

// buildFormatterInput describes the resolved selection and the locally
// computed numbers for the formatting stage.
func buildFormatterInput(flight models.Flight, hotel models.Hotel, stayNights int, totalCost float64, pointsUsed int) string {
	fj, _ := json.Marshal(flight)
	hj, _ := json.Marshal(hotel)
	return fmt.Sprintf(
		"flight: %s\nhotel: %s\nstay_nights: %d\ntotal_cost: %.2f\npoints_used: %d\n",
		fj, hj, stayNights, totalCost, pointsUsed,
	)
}
