// Package server contains the HTTP handlers for the room pages and the read-only JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "roomboard/docs" // swagger docs
	"roomboard/internal/cache"
	"roomboard/internal/config"
	"roomboard/internal/database"
	"roomboard/internal/middleware"
	"roomboard/internal/models"
	"roomboard/internal/repository"
	"roomboard/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	views          fiber.Views
	renderer       Renderer
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	themeRepo      repository.ThemeRepository
	roomRepo       repository.RoomRepository
	commentRepo    repository.CommentRepository
	authService    *service.AuthService
	roomService    *service.RoomService
	commentService *service.CommentService
	userService    *service.UserService
	themeService   *service.ThemeService
}

// Option customizes a Server.
type Option func(*Server)

// WithViews renders pages through a fiber template engine instead of JSON.
func WithViews(views fiber.Views, layout string) Option {
	return func(s *Server) {
		s.views = views
		s.renderer = ViewsRenderer{Layout: layout}
	}
}

// WithRenderer replaces the page renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient = cache.InitRedis(cfg.RedisURL)
	}

	return NewServerWithDeps(cfg, db, redisClient, opts...)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, in which case logout cannot revoke tokens server-side.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts ...Option) (*Server, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		renderer:       JSONRenderer{},
		promMiddleware: middleware.InitMetrics("roomboard"),
		userRepo:       repository.NewUserRepository(db),
		themeRepo:      repository.NewThemeRepository(db),
		roomRepo:       repository.NewRoomRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
	}

	s.authService = service.NewAuthService(s.userRepo, bcryptCost(cfg))
	s.roomService = service.NewRoomService(s.roomRepo, s.themeRepo, s.commentRepo)
	s.commentService = service.NewCommentService(s.commentRepo)
	s.userService = service.NewUserService(s.userRepo, s.roomRepo, s.commentRepo, s.themeRepo)
	s.themeService = service.NewThemeService(s.themeRepo)

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func bcryptCost(cfg *config.Config) int {
	if cfg.Env == "test" {
		return bcrypt.MinCost
	}
	return bcrypt.DefaultCost
}

// NewApp builds the fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "roomboard",
		Views:        s.views,
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// errorHandler answers errors that escaped a handler: JSON under /api, plain text elsewhere.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := models.StatusFor(err)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
			slog.String("path", c.Path()), slog.String("error", err.Error()))
	}

	if strings.HasPrefix(c.Path(), "/api") {
		if fe != nil {
			return c.Status(code).JSON(models.ErrorResponse{Error: fe.Message})
		}
		return models.RespondWithError(c, code, err)
	}
	if fe != nil {
		return c.Status(code).SendString(fe.Message)
	}
	return pageError(c, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:8000,http://127.0.0.1:8000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,HEAD,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	app.Use(s.SessionMiddleware())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Read-only JSON API
	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)
	api.Get("/", s.APIRoutes)
	api.Get("/rooms", s.APIRooms)
	api.Get("/rooms/:id", s.APIRoom)

	// Auth pages
	app.Get("/login", s.LoginPage)
	app.Post("/login", s.LoginPage)
	app.Get("/logout", s.LoginRequired(), s.Logout)
	app.Post("/logout", s.LoginRequired(), s.Logout)
	app.Get("/register", s.RegisterPage)
	app.Post("/register", s.RegisterPage)

	// Public pages
	app.Get("/", s.Home)
	app.Get("/room/:id", s.RoomPage)
	app.Post("/room/:id", s.LoginRequired(), s.RoomPage)
	app.Get("/profile/:id", s.ProfilePage)
	app.Get("/themes", s.ThemesPage)
	app.Get("/activity", s.ActivityPage)

	// Pages that need a session
	loginRequired := s.LoginRequired()
	for _, r := range []struct {
		path    string
		handler fiber.Handler
	}{
		{"/create-room", s.CreateRoom},
		{"/update-room/:id", s.UpdateRoom},
		{"/delete-room/:id", s.DeleteRoom},
		{"/delete-comment/:id", s.DeleteComment},
		{"/update-user", s.UpdateUser},
	} {
		app.Get(r.path, loginRequired, r.handler)
		app.Post(r.path, loginRequired, r.handler)
	}
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis only backs session revocation, so its absence does not fail readiness.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	app := s.NewApp()
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown stops the HTTP server and closes the database and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
