package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/ugchub/backend/internal/database"
	"github.com/ugchub/backend/internal/handlers"
	"github.com/ugchub/backend/internal/services"
	"github.com/ugchub/backend/internal/websocket"
	"github.com/ugchub/backend/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *websocket.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := websocket.NewHub()
	go hub.Run()

	// Один слой бизнес-логики на оба транспорта
	notifier := services.NewEmailNotifier(dbConn)
	matchSvc := services.NewMatchService(dbConn)
	messageSvc := services.NewMessageService(dbConn, handlers.NewHubDelivery(hub), notifier)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	userH := handlers.NewUserHandler(dbConn, hub)
	matchH := handlers.NewMatchHandler(matchSvc)
	messageH := handlers.NewHTTPMessageHandler(messageSvc)
	eventH := handlers.NewMessageEventHandler(messageSvc, hub)
	wsH := handlers.NewWebSocketHandler(hub, eventH)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, userH, matchH, messageH, wsH)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
