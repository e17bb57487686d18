package handlers

import (
	"errors"
	"net/http"

	"tripbot/models"
	"tripbot/services/catalog"
	"tripbot/services/trip"
	"tripbot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// defaultUserID is used when the caller omits user_id.
const defaultUserID = "guest"

// ChatHandler exposes the trip planner over HTTP.
type ChatHandler struct {
	Svc trip.PlannerService
}

func NewChatHandler(svc trip.PlannerService) *ChatHandler {
	return &ChatHandler{Svc: svc}
}

// HandleChat processes one conversational turn. Malformed catalog
// payloads are caller bugs and surface as 400s; everything else is a 200
// conversational response, itinerary included only on success.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid chat request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if req.UserID == "" {
		req.UserID = defaultUserID
	}

	resp, err := h.Svc.Chat(c.Request.Context(), req)
	if err != nil {
		var entryErr *catalog.EntryError
		if errors.As(err, &entryErr) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid catalog entry", entryErr.Error())
			return
		}
		logger.Error("Chat processing failed", zap.String("userID", req.UserID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", "failed to process chat turn")
		return
	}

	c.JSON(http.StatusOK, resp)
}
