package server

import (
	"context"
	"strings"
	"time"

	"github.com/anusasana/portal/internal/config"
	"github.com/anusasana/portal/internal/handler"
	"github.com/anusasana/portal/internal/middleware"
	"github.com/anusasana/portal/internal/realtime"
	"github.com/anusasana/portal/internal/repository"
	"github.com/anusasana/portal/internal/service"
	"github.com/anusasana/portal/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type Server struct {
	engine *gin.Engine
	hub    *realtime.Hub
}

// New wires the production server over the document store.
func New(cfg *config.Config, db *mongo.Database, rdb *redis.Client, fileStorage storage.FileStorage) *Server {
	return NewWithRepos(cfg, repository.NewMongoSet(db), rdb, fileStorage, service.StubExtractor{})
}

// NewWithRepos is the wiring seam: tests pass in-memory repositories and a
// fake extractor here.
func NewWithRepos(cfg *config.Config, repos repository.Set, rdb *redis.Client, fileStorage storage.FileStorage, extractor service.TextExtractor) *Server {
	authSvc := service.NewAuthService(repos.Users, cfg.JWTSecret, cfg.JWTTTLMinutes)
	assignmentSvc := service.NewAssignmentService(repos.Assignments)
	messageSvc := service.NewMessageService(repos.Messages, rdb, cfg.RateLimitMessage)
	doubtSvc := service.NewDoubtService(repos.Doubts)
	boardSvc := service.NewBoardService(repos.Tasks, repos.Classes, repos.Announcements)
	supportSvc := service.NewSupportService(repos.SupportMessages)
	extractSvc := service.NewExtractService(extractor, fileStorage, cfg.CloudinaryUploadFolder)

	hub := realtime.NewHub(messageSvc, supportSvc, rdb, cfg.SupportReplyDelay)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(authSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	doubtHandler := handler.NewDoubtHandler(doubtSvc)
	boardHandler := handler.NewBoardHandler(boardSvc)
	supportHandler := handler.NewSupportHandler(supportSvc)
	extractHandler := handler.NewExtractHandler(extractSvc)
	wsHandler := handler.NewWSHandler(hub)

	router := gin.New()
	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.NewAuthMiddleware(cfg.JWTSecret).Identify())

	api := router.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		api.GET("/students", userHandler.GetStudents)
		api.GET("/students/:uniqueId", userHandler.GetStudentByUniqueID)
		api.GET("/teachers", userHandler.GetTeachers)
		api.GET("/teachers/:uniqueId", userHandler.GetTeacherByUniqueID)

		api.POST("/messages", messageHandler.Send)
		api.GET("/messages/:userId", messageHandler.ListForUser)
		api.GET("/support-messages/:userId", supportHandler.ListForUser)

		api.GET("/healthcheck", handler.Healthcheck)
		api.GET("/test", handler.Test)
	}

	router.GET("/assignments", assignmentHandler.List)
	router.POST("/assignments", assignmentHandler.Submit)
	router.PATCH("/assignments/:id/grade", assignmentHandler.Grade)

	router.GET("/messages", messageHandler.ListRecent)

	router.GET("/doubts", doubtHandler.List)
	router.POST("/doubts", doubtHandler.Create)
	router.PATCH("/doubts/:id/resolve", doubtHandler.Resolve)

	router.GET("/tasks", boardHandler.ListTasks)
	router.POST("/tasks", boardHandler.CreateTask)
	router.GET("/classes", boardHandler.ListClasses)
	router.POST("/classes", boardHandler.CreateClass)
	router.GET("/announcements", boardHandler.ListAnnouncements)
	router.POST("/announcements", boardHandler.CreateAnnouncement)

	router.POST("/extract-text", extractHandler.ExtractText)

	router.GET("/ws", wsHandler.Handle)

	return &Server{
		engine: router,
		hub:    hub,
	}
}

// Engine exposes the router for httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Hub exposes the realtime hub so main can run it.
func (s *Server) Hub() *realtime.Hub {
	return s.hub
}

func (s *Server) Run(ctx context.Context, addr string) error {
	go s.hub.Run(ctx)
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
