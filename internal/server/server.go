package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/screenroom/backend/config"
	"github.com/screenroom/backend/internal/api"
	"github.com/screenroom/backend/internal/database"
	"github.com/screenroom/backend/internal/middleware"
	"github.com/screenroom/backend/internal/router"
	"github.com/screenroom/backend/internal/service"
	"github.com/screenroom/backend/internal/workflow"
)

// Server wires configuration, storage, services and HTTP together.
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New builds the full application. Redis and object storage are
// optional collaborators; the server starts without them with the
// dependent features disabled.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	var redisClient *redis.Client
	if redisClient, err = database.NewRedisClient(cfg); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	var storage *config.S3Config
	if cfg.S3Bucket != "" {
		storage, err = config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("object storage: %w", err)
		}
	} else {
		log.Printf("[server] no S3 bucket configured, uploads disabled")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	feedbackService := service.NewFeedbackService(db)
	statsService := service.NewStatsService(db)

	var filmService *service.FilmService
	var uploadService service.IUploadService
	if storage != nil {
		filmService = service.NewFilmService(db, storage)
		uploadService = service.NewUploadService(storage)
	} else {
		filmService = service.NewFilmService(db, nil)
	}

	var rateLimit gin.HandlerFunc
	if redisClient != nil {
		rateLimit = middleware.NewFeedbackRateLimiter(redisClient).Middleware()
	}

	sessions := workflow.NewManager()

	authHandler := api.NewAuthHandler(authService)
	filmHandler := api.NewFilmHandler(filmService, feedbackService, statsService, authService)
	feedbackHandler := api.NewFeedbackHandler(feedbackService, sessions, authService, rateLimit)
	uploadHandler := api.NewUploadHandler(uploadService, authService, authService)

	r := router.SetupRouter(cfg, authHandler, filmHandler, feedbackHandler, uploadHandler)

	return &Server{
		cfg:    cfg,
		router: r,
		db:     db,
	}, nil
}

// Start begins serving HTTP. Blocks until the listener fails.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
