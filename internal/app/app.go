package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tfl_backend/database"
	"tfl_backend/internal/calendar"
	"tfl_backend/internal/config"
	"tfl_backend/internal/email"
	"tfl_backend/internal/faq"
	"tfl_backend/internal/handlers"
	"tfl_backend/internal/logger"
	"tfl_backend/internal/middleware"
	"tfl_backend/internal/repositories"
	"tfl_backend/internal/routes"
	"tfl_backend/internal/services"
	"tfl_backend/internal/session"
	"tfl_backend/internal/validator"
	"tfl_backend/pkg/apperrors"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected")

	mailer, err := email.NewProvider(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}

	ginRouter, container, err := SetupRouter(cfg, gormDB, mailer)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := services.SeedFromConfig(ctx, gormDB, container.UserService, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// SetupRouter wires repositories, services and handlers onto a gin engine.
// The database must already be migrated.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, mailer email.Provider) (*gin.Engine, *services.ServiceContainer, error) {
	weekday, err := cfg.EventWeekday()
	if err != nil {
		return nil, nil, err
	}
	entries, err := faq.Load(cfg.Content.FAQPath)
	if err != nil {
		return nil, nil, err
	}

	serviceContainer := initializeServices(cfg, mailer, weekday)
	sessions := session.NewManager(cfg)
	appHandlers := initializeHandlers(cfg, serviceContainer, sessions, entries)

	ginRouter := initializeGinRouter(cfg, gormDB, sessions, serviceContainer.UserService)
	routes.RegisterRoutes(ginRouter, appHandlers, cfg.IsProduction())

	return ginRouter, serviceContainer, nil
}

func initializeServices(cfg *config.Config, mailer email.Provider, weekday time.Weekday) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	eventRepo := repositories.NewEventRepository()
	signupRepo := repositories.NewSignupRepository()
	noticeRepo := repositories.NewNoticeRepository()

	links := services.NewLinks(cfg.Server.Origin)
	production := cfg.IsProduction()
	cal := calendar.New(cfg.Location(), time.Now)

	schedule := services.EventSchedule{
		Weekday:            weekday,
		UpcomingCount:      cfg.Events.UpcomingCount,
		DefaultTitle:       cfg.Events.DefaultTitle,
		DefaultDescription: cfg.Events.DefaultDescription,
		DefaultLocation:    cfg.Events.DefaultLocation,
	}

	return &services.ServiceContainer{
		AuthService:   services.NewAuthService(userRepo, mailer, links, production, time.Now),
		UserService:   services.NewUserService(userRepo, mailer, links, production, time.Now),
		EventService:  services.NewEventService(eventRepo, signupRepo, cal, schedule),
		NoticeService: services.NewNoticeService(noticeRepo, eventRepo, cfg.Events.DefaultTitle),
		EmailService:  mailer,
	}
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, sessions *session.Manager, entries []faq.Entry) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New(), sessions, cfg.IsProduction())

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, svc.AuthService),
		EventHandler:    handlers.NewEventHandler(baseHandler, svc.EventService),
		NoticeHandler:   handlers.NewNoticeHandler(baseHandler, svc.NoticeService, svc.EventService),
		AdminHandler:    handlers.NewAdminHandler(baseHandler, svc.UserService),
		SettingsHandler: handlers.NewSettingsHandler(baseHandler, svc.UserService),
		PublicHandler:   handlers.NewPublicHandler(baseHandler, entries),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, sessions *session.Manager, users services.UserService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.Origin))
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.SessionMiddleware(sessions, users))
	return router
}
