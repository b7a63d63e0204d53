package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skill-connector/internal/backend"
	"github.com/ignatzorin/skill-connector/internal/cache"
	"github.com/ignatzorin/skill-connector/internal/chat"
	"github.com/ignatzorin/skill-connector/internal/config"
	"github.com/ignatzorin/skill-connector/internal/db"
	httpHandlers "github.com/ignatzorin/skill-connector/internal/http/handlers"
	"github.com/ignatzorin/skill-connector/internal/http/middleware"
	httpRouter "github.com/ignatzorin/skill-connector/internal/http/router"
	"github.com/ignatzorin/skill-connector/internal/logger"
	"github.com/ignatzorin/skill-connector/internal/repository"
	"github.com/ignatzorin/skill-connector/internal/service"
	"github.com/ignatzorin/skill-connector/internal/validation"
)

const sweepInterval = 10 * time.Minute

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	if cfg.IsProduction() {
		logger.Init("info")
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}
	mainLog := logger.WithComponent("main")

	if err := validation.RegisterBindingValidators(); err != nil {
		log.Fatalf("main: не удалось зарегистрировать валидаторы: %v", err)
	}

	// Хранилище сессий.
	var (
		dbConn *sqlx.DB
		store  repository.SessionStore
	)
	switch cfg.SessionStore {
	case config.SessionStorePostgres:
		dbConn, err = db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPool)
		if err != nil {
			log.Fatalf("main: ошибка подключения к базе: %v", err)
		}
		defer safeClose("база", dbConn)

		applied, err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath)
		if err != nil {
			log.Fatalf("main: ошибка миграций: %v", err)
		}
		mainLog.WithField("applied", applied).Info("миграции выполнены")
		store = repository.NewSessionRepository(dbConn)
	default:
		mainLog.Warn("сессии хранятся в памяти и теряются при перезапуске")
		store = repository.NewMemorySessionStore()
	}

	// Кэш категорий.
	var (
		categoryCache cache.Cache
		cachePinger   httpHandlers.Pinger
	)
	if cfg.RedisAddr != "" {
		client, err := cache.ConnectRedis(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err != nil {
			log.Fatalf("main: ошибка подключения к redis: %v", err)
		}
		redisCache := cache.NewRedisCache(client)
		defer safeClose("redis", redisCache)
		categoryCache = redisCache
		cachePinger = redisCache
	} else {
		memoryCache := cache.NewMemoryCache(time.Minute)
		defer safeClose("кэш", memoryCache)
		categoryCache = memoryCache
	}

	api := backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout)

	// Сервисы.
	sessions := service.NewSessionService(store, service.NewSessionTokens(cfg.SessionSecret), cfg.SessionTTL)
	if err := sessions.SeedActiveGauge(ctx); err != nil {
		mainLog.WithError(err).Warn("не удалось посчитать сессии в хранилище")
	}
	sessions.StartSweeper(ctx, sweepInterval)

	categories := service.NewCategoryService(api, categoryCache, cfg.CategoryCacheTTL)
	authService := service.NewAuthService(api, sessions)
	browseService := service.NewBrowseService(api, categories, cfg.FanoutLimit)
	dashboardService := service.NewDashboardService(api, categories, sessions)
	chatService := service.NewChatService(api, sessions, chat.NewFormatter(cfg.Location))
	adminService := service.NewAdminService(api, sessions, categories, cfg.FanoutLimit, cfg.Location)

	// HTTP хэндлеры.
	cookies := middleware.NewCookies(cfg.CookieSecure)
	handlers := httpRouter.Handlers{
		Auth:         httpHandlers.NewAuthHandler(authService, sessions, cookies),
		Catalog:      httpHandlers.NewCatalogHandler(browseService, categories),
		Dashboard:    httpHandlers.NewDashboardHandler(dashboardService),
		Conversation: httpHandlers.NewConversationHandler(chatService),
		Admin:        httpHandlers.NewAdminHandler(adminService, sessions, cookies),
		Health:       httpHandlers.NewHealthHandler(api, dbConn, cachePinger),
	}

	engine := httpRouter.SetupRouter(cfg, handlers, sessions, cookies)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			mainLog.WithError(err).Error("ошибка остановки http сервера")
		}
	}()

	mainLog.WithField("port", cfg.HTTPPort).WithField("backend", cfg.BackendBaseURL).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает ресурс и логирует ошибку.
func safeClose(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.WithComponent("main").WithError(err).Warnf("ошибка закрытия: %s", name)
	}
}
