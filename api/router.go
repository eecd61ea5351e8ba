package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/YongERong/wth-caifan-lovers/api/handlers"
	"github.com/YongERong/wth-caifan-lovers/api/middleware"
	"github.com/YongERong/wth-caifan-lovers/pkg/metrics"
)

// Handlers the handlers that carry dependencies
type Handlers struct {
	Activities *handlers.ActivityHandler
	Swipes     *handlers.SwipeHandler
	Voice      *handlers.VoiceHandler
	Friends    *handlers.FriendHandler
}

// NewRouter a gin engine with the shared middleware
func NewRouter(log *zap.Logger, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	return router
}

// SetupRouter registers every API route
func SetupRouter(router *gin.Engine, h Handlers) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api")
	{
		public.POST("/auth/login", handlers.Login)
		public.POST("/auth/register", handlers.Register)
	}

	authorized := router.Group("/api")
	authorized.Use(middleware.Auth())
	{
		authorized.GET("/user", handlers.GetCurrentUser)
		authorized.PUT("/user", handlers.UpdateUser)
		authorized.POST("/auth/logout", handlers.Logout)

		authorized.GET("/profile", handlers.GetProfile)
		authorized.PUT("/profile", handlers.UpdateProfile)
		authorized.POST("/profile/voice", handlers.ApplyVoiceFields)

		authorized.GET("/activities", h.Activities.ListActivities)
		authorized.GET("/activities/deck", h.Activities.GetDeck)
		authorized.POST("/activities/:id/join", h.Activities.JoinActivity)

		authorized.POST("/swipes", h.Swipes.CreateSwipe)
		authorized.GET("/swipes", h.Swipes.ListSwipes)
		authorized.DELETE("/swipes/:id", h.Swipes.DeleteSwipe)
		authorized.DELETE("/swipes", h.Swipes.ClearSwipes)

		authorized.POST("/voice/transcribe", h.Voice.Transcribe)
		authorized.POST("/voice/extract", h.Voice.Extract)

		authorized.GET("/friends", h.Friends.ListFriends)
		authorized.GET("/friends/suggestions", h.Friends.GetSuggestions)
		authorized.POST("/friends/:id", h.Friends.RequestFriend)
		authorized.POST("/friends/:id/accept", h.Friends.AcceptFriend)
		authorized.DELETE("/friends/:id", h.Friends.RemoveFriend)

		authorized.GET("/rewards", handlers.GetRewards)
		authorized.POST("/rewards/redeem", handlers.RedeemReward)
		authorized.GET("/points/history", handlers.GetPointsHistory)
	}
}
