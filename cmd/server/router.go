package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/ugchub/backend/internal/handlers"
	"github.com/ugchub/backend/internal/middleware"
	"github.com/ugchub/backend/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	matchH *handlers.MatchHandler,
	messageH *handlers.HTTPMessageHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
	}

	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		authorized.GET("/users/me", userH.GetMe)
		authorized.GET("/users/:id", userH.GetUser)

		authorized.POST("/matches", matchH.CreateMatch)
		authorized.GET("/matches", matchH.GetMyMatches)
		authorized.PUT("/matches/:id/status", matchH.UpdateMatchStatus)

		authorized.GET("/messages/unread", messageH.GetUnreadCounts)
		authorized.GET("/messages/:matchId", messageH.GetMatchMessages)
		authorized.POST("/messages", messageH.SendMessage)
		authorized.POST("/messages/:matchId/read", messageH.MarkMessagesRead)
	}

	// Живой канал: токен проверяется при handshake
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
