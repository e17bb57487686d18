package trip

import (
	"context"
	"errors"
	"time"

	"tripbot/models"
	"tripbot/services/catalog"
	"tripbot/services/session"
	"tripbot/utils"

	"go.uber.org/zap"
)

// clarifyMessage is the fixed reply for any selector-stage failure. The
// raw model text is never echoed back to the user from here.
const clarifyMessage = "I couldn't put together a valid itinerary from that. " +
	"Could you confirm which flight and hotel you'd like, or rephrase your request?"

// defaultOfferMessage is used when the formatter stage fails; the
// itinerary itself is already locally validated at that point.
const defaultOfferMessage = "Here is your offer!"

// DefaultTripService runs the two-stage pipeline: gate, select, format.
type DefaultTripService struct {
	Gen      Generator
	Sessions *session.Store
	// Timeout bounds each collaborator call; expiry is absorbed into
	// the clarification path.
	Timeout time.Duration
}

func NewDefaultTripService(gen Generator, sessions *session.Store, timeout time.Duration) *DefaultTripService {
	return &DefaultTripService{Gen: gen, Sessions: sessions, Timeout: timeout}
}

// Chat processes one turn. Stages: normalize and gate the catalog, run
// the selector agent, re-validate the selection against this turn's
// catalog, then run the formatter agent. No stage is retried; any
// failure past the gate ends the turn with a clarification and the next
// message starts a fresh pass with the extended history.
func (s *DefaultTripService) Chat(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	logger := utils.GetLogger()

	cat, err := catalog.Normalize(req.Flights, req.Hotels, req.Points())
	if err != nil {
		return models.ChatResponse{}, err
	}

	ready := catalog.Check(cat, req.HasPoints())
	if !ready.Ready {
		// Cheap local check already proves the answer is "ask for
		// more"; no model call, session untouched.
		logger.Debug("Gate short-circuit", zap.Strings("missing", ready.Missing))
		return models.ChatResponse{Message: ready.Message()}, nil
	}

	sess := s.Sessions.GetOrCreate(req.UserID)
	sess.Lock()
	defer sess.Unlock()

	sess.AppendTurn(models.SpeakerUser, req.Message)

	// SELECTING
	out, err := s.generate(ctx, sess.Selector, buildSelectorInput(sess.Turns(), cat))
	if err != nil {
		logger.Warn("Selector stage failed", zap.String("userID", req.UserID), zap.Error(err))
		return models.ChatResponse{Message: clarifyMessage}, nil
	}
	// History reflects what was actually exchanged, not what was
	// understood, so the raw reply is appended before parsing.
	sess.AppendTurn(models.SpeakerAssistant, out.Text)

	res := Reconcile[models.Selection](out, sess.Selector.Output)
	if !res.OK {
		logger.Warn("Malformed selector output", zap.String("userID", req.UserID))
		return models.ChatResponse{Message: clarifyMessage}, nil
	}

	// A selection is only valid against the catalog of this turn; a
	// stale id from a prior turn must not silently apply.
	flight, okF := cat.FlightByID(res.Value.FlightID)
	hotel, okH := cat.HotelByID(res.Value.HotelID)
	if !okF || !okH {
		logger.Warn("Dangling selection reference",
			zap.String("userID", req.UserID),
			zap.String("flightID", res.Value.FlightID),
			zap.String("hotelID", res.Value.HotelID))
		return models.ChatResponse{Message: clarifyMessage}, nil
	}

	// FORMATTING. Cost arithmetic and the redemption cap are computed
	// locally; the model only contributes narrative.
	stayNights := req.StayNights
	if stayNights <= 0 {
		stayNights = models.DefaultStayNights
	}
	totalCost := TotalCost(flight, hotel, stayNights)
	pointsUsed := PointsRedeemed(cat.Points, totalCost)

	itinerary := models.Itinerary{
		Flight:     flight,
		Hotel:      hotel,
		TotalCost:  totalCost,
		PointsUsed: pointsUsed,
	}
	message := defaultOfferMessage

	fmtOut, err := s.generate(ctx, sess.Formatter, buildFormatterInput(flight, hotel, stayNights, totalCost, pointsUsed))
	if err != nil {
		logger.Warn("Formatter stage failed", zap.String("userID", req.UserID), zap.Error(err))
	} else {
		sess.AppendTurn(models.SpeakerAssistant, fmtOut.Text)
		fres := Reconcile[formatterRecord](fmtOut, sess.Formatter.Output)
		if fres.OK {
			if fres.Value.TotalCost != totalCost || int(fres.Value.PointsUsed) != pointsUsed {
				logger.Warn("Formatter numbers disagree with local computation, keeping local values",
					zap.Float64("modelTotal", fres.Value.TotalCost),
					zap.Float64("localTotal", totalCost))
			}
			message = fres.Value.Message
			itinerary.Notes = fres.Value.Notes
		} else {
			logger.Warn("Malformed formatter output", zap.String("userID", req.UserID))
		}
	}

	return models.ChatResponse{Message: message, Itinerary: &itinerary}, nil
}

// formatterRecord is the formatter stage's expected reply. Its numeric
// fields are advisory only.
type formatterRecord struct {
	Message    string  `json:"message"`
	Notes      string  `json:"notes"`
	TotalCost  float64 `json:"total_cost"`
	PointsUsed float64 `json:"points_used"`
}

func (s *DefaultTripService) generate(ctx context.Context, agent models.AgentConfig, input string) (GenerateOutput, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	out, err := s.Gen.Generate(ctx, agent, input)
	if errors.Is(err, context.DeadlineExceeded) {
		return GenerateOutput{}, errors.New("model collaborator timed out")
	}
	return out, err
}
