package routes

import (
	"net/http"
	"time"

	"tripbot/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAIRoutes registers the conversational endpoints.
func RegisterAIRoutes(r *gin.Engine, chat *handlers.ChatHandler, sess *handlers.SessionHandler) {
	api := r.Group("/api/ai")
	{
		api.POST("/chat", chat.HandleChat)
		api.GET("/session/:userID/history", sess.GetHistory)
		api.DELETE("/session/:userID", sess.ClearSession)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm TripBot"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, chat *handlers.ChatHandler, sess *handlers.SessionHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAIRoutes(r, chat, sess)
	RegisterHealthRoute(r)
}
