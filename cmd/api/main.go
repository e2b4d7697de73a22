package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/meetwiselabs/meetwise/pkg/validator"

	"github.com/meetwiselabs/meetwise/internal/adapter/handler"
	"github.com/meetwiselabs/meetwise/internal/adapter/repository"
	"github.com/meetwiselabs/meetwise/internal/infrastructure/cache"
	"github.com/meetwiselabs/meetwise/internal/infrastructure/database"
	"github.com/meetwiselabs/meetwise/internal/infrastructure/external/googlecalendar"
	"github.com/meetwiselabs/meetwise/internal/infrastructure/external/oauth"
	"github.com/meetwiselabs/meetwise/internal/usecase/assistant"
	"github.com/meetwiselabs/meetwise/internal/usecase/audit"
	"github.com/meetwiselabs/meetwise/internal/usecase/auth"
	"github.com/meetwiselabs/meetwise/internal/usecase/calendar"
	"github.com/meetwiselabs/meetwise/internal/usecase/dashboard"
	"github.com/meetwiselabs/meetwise/internal/usecase/meeting"
	pkgai "github.com/meetwiselabs/meetwise/pkg/ai"
	"github.com/meetwiselabs/meetwise/pkg/config"
	"github.com/meetwiselabs/meetwise/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("🔄 Applying schema migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize Redis for the audit lock. Demo mode falls back to the
	// in-memory store so a bare `go run` works without Redis.
	var locker cache.Locker
	if cfg.Demo.Enabled {
		log.Println("📦 Demo mode: using in-memory locks")
		locker = cache.NewMemoryLocker(cache.NewMemoryStore())
	} else {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		locker = cache.NewRedisLocker(redisClient)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	flagRepo := repository.NewFlagRepository(db)
	statRepo := repository.NewStatRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	// Initialize OAuth provider
	log.Println("🔐 Initializing OAuth provider...")
	googleProvider := oauth.NewGoogleProvider(
		cfg.OAuth.Google.ClientID,
		cfg.OAuth.Google.ClientSecret,
		cfg.OAuth.Google.RedirectURL,
	)
	stateManager := oauth.NewStateManager(cache.NewMemoryStore())

	// Initialize JWT manager
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Calendar event source: Google in production, the built-in synthetic
	// calendar in demo mode
	var eventSource calendar.EventSource
	var eventDeleter meeting.EventDeleter
	if cfg.Demo.Enabled {
		log.Println("📅 Demo mode: using synthetic calendar source")
		synthetic := calendar.NewSyntheticSource()
		eventSource = synthetic
		eventDeleter = synthetic
	} else {
		googleCalendar := googlecalendar.NewClient(googleProvider, logger)
		eventSource = googleCalendar
		eventDeleter = googleCalendar
	}

	// Agenda/summary generator: OpenAI when a key is configured, canned demo
	// content otherwise
	var generator assistant.Generator
	if cfg.OpenAI.APIKey != "" {
		log.Println("🤖 Using OpenAI for agenda and summary generation")
		openaiClient := pkgai.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, logger)
		generator = assistant.NewOpenAIGenerator(openaiClient)
	} else {
		log.Println("🤖 No OpenAI key configured, using static generation")
		generator = assistant.NewStaticGenerator()
	}

	// Initialize services
	log.Println("✨ Initializing services...")
	oauthService := auth.NewOAuthService(userRepo, googleProvider, stateManager, jwtManager, logger)
	meetingService := meeting.NewService(meetingRepo, flagRepo, statRepo, userRepo, eventDeleter, logger)
	auditService := audit.NewService(meetingRepo, flagRepo, statRepo, locker, logger)
	dashboardService := dashboard.NewService(meetingRepo, statRepo, userRepo, logger)
	calendarService := calendar.NewService(eventSource, meetingRepo, statRepo, userRepo, logger)
	assistantService := assistant.NewService(meetingRepo, summaryRepo, generator, logger)

	// Initialize handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		jwtManager,
		handler.NewAuth(oauthService, logger),
		handler.NewMeeting(meetingService, logger),
		handler.NewAudit(auditService, logger),
		handler.NewDashboard(dashboardService, logger),
		handler.NewAssistant(assistantService, logger),
		handler.NewCalendar(calendarService, logger),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
