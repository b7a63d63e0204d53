package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const healthTimeout = 5 * time.Second

// BackendPinger проверяет доступность удалённого API.
type BackendPinger interface {
	Health(ctx context.Context) (string, error)
}

// Pinger — любое хранилище с Ping (redis-кэш).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	backend BackendPinger
	db      *sqlx.DB
	cache   Pinger
}

// NewHealthHandler создаёт новый health handler.
// db и cache могут быть nil, если сессии и категории живут в памяти.
func NewHealthHandler(backend BackendPinger, db *sqlx.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{backend: backend, db: db, cache: cache}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if backendStatus, err := h.backend.Health(ctx); err != nil {
		checks["backend"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		checks["backend"] = "healthy"
		if backendStatus != "" {
			checks["backend"] = backendStatus
		}
	}

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "healthy"
		}

		stats := h.db.Stats()
		if stats.MaxOpenConnections > 0 && stats.OpenConnections > stats.MaxOpenConnections {
			checks["connection_pool"] = "warning: too many connections"
		} else {
			checks["connection_pool"] = "healthy"
		}
	}

	// Кэш категорий не критичен: при его отказе каталог ходит в бэкенд напрямую.
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "degraded: " + err.Error()
		} else {
			checks["cache"] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}
