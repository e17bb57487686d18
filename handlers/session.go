package handlers

import (
	"net/http"

	"tripbot/services/session"
	"tripbot/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes read/clear access to conversational sessions.
type SessionHandler struct {
	Store *session.Store
}

func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{Store: store}
}

// GetHistory returns the ordered turn history for a user.
func (h *SessionHandler) GetHistory(c *gin.Context) {
	userID := c.Param("userID")
	sess, ok := h.Store.Get(userID)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Session not found", userID)
		return
	}

	sess.Lock()
	turns := sess.Turns()
	sess.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"user_id":    sess.UserID,
		"turns":      turns,
		"total":      len(turns),
	})
}

// ClearSession drops a user's session so the next turn starts fresh.
func (h *SessionHandler) ClearSession(c *gin.Context) {
	userID := c.Param("userID")
	h.Store.Clear(userID)
	c.JSON(http.StatusOK, gin.H{"status": "cleared", "user_id": userID})
}
