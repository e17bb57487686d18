package trip

import (
	"context"

	"tripbot/models"
)

// PlannerService turns one conversational turn plus its catalog into a
// chat response. A non-nil error always means malformed inbound data
// (caller bug); conversational failures are absorbed into the response.
type PlannerService interface {
	Chat(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error)
}
