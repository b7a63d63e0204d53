package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignatzorin/skill-connector/internal/config"
	"github.com/ignatzorin/skill-connector/internal/http/handlers"
	"github.com/ignatzorin/skill-connector/internal/http/middleware"
)

// Handlers собирает все хэндлеры портала.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Catalog      *handlers.CatalogHandler
	Dashboard    *handlers.DashboardHandler
	Conversation *handlers.ConversationHandler
	Admin        *handlers.AdminHandler
	Health       *handlers.HealthHandler
}

func SetupRouter(
	cfg *config.Config,
	h Handlers,
	sessions middleware.SessionResolver,
	cookies *middleware.Cookies,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler(cookies))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(gin.Recovery())

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userAuth := middleware.SessionAuth(sessions, middleware.UserRealm, cookies)
	adminAuth := middleware.SessionAuth(sessions, middleware.AdminRealm, cookies)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.WithRealm(middleware.UserRealm))
	{
		authGroup.POST("/signup", middleware.RateLimitMiddleware("signup", cfg.RateLimitLimit, cfg.RateLimitPeriod), h.Auth.Signup)
		authGroup.POST("/login", middleware.RateLimitMiddleware("login", cfg.RateLimitLimit, cfg.RateLimitPeriod), h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/me", userAuth, h.Auth.Me)
	}

	// Публичный каталог
	api.GET("/browse", h.Catalog.Browse)
	api.GET("/categories", h.Catalog.Categories)
	api.GET("/professionals/:id", middleware.UUIDValidator("id"), h.Catalog.Professional)

	protected := api.Group("/")
	protected.Use(userAuth)
	{
		protected.GET("/dashboard", h.Dashboard.Get)
		protected.PUT("/dashboard/profile", h.Dashboard.UpdateProfile)
		protected.PUT("/dashboard/location", h.Dashboard.UpdateLocation)
		protected.POST("/dashboard/skills", h.Dashboard.AddSkill)
		protected.DELETE("/dashboard/skills/:id", middleware.UUIDValidator("id"), h.Dashboard.DeleteSkill)

		protected.GET("/inbox", h.Conversation.Inbox)
		protected.GET("/chat/:partnerId", middleware.UUIDValidator("partnerId"), h.Conversation.Thread)
		protected.POST("/chat/:partnerId",
			middleware.UUIDValidator("partnerId"),
			middleware.RateLimitMiddleware("messages", cfg.RateLimitLimit*4, cfg.RateLimitPeriod),
			h.Conversation.Send,
		)
	}

	adminAPI := r.Group("/admin/api")

	adminPublic := adminAPI.Group("/")
	adminPublic.Use(middleware.WithRealm(middleware.AdminRealm))
	{
		adminPublic.POST("/login", middleware.RateLimitMiddleware("admin_login", cfg.RateLimitLimit, cfg.RateLimitPeriod), h.Admin.Login)
		adminPublic.POST("/logout", h.Admin.Logout)
	}

	admin := adminAPI.Group("/")
	admin.Use(adminAuth)
	{
		admin.GET("/me", h.Admin.Me)
		admin.GET("/stats", h.Admin.Stats)
		admin.GET("/users", h.Admin.Users)
		admin.POST("/users", h.Admin.CreateUser)
		admin.DELETE("/users/:id", middleware.UUIDValidator("id"), h.Admin.DeleteUser)
		admin.GET("/admins", h.Admin.Admins)
		admin.POST("/admins", h.Admin.CreateAdmin)
		admin.DELETE("/admins/:id", middleware.UUIDValidator("id"), h.Admin.DeleteAdmin)
		admin.GET("/skills", h.Admin.Skills)
		admin.GET("/categories", h.Admin.Categories)
		admin.GET("/activity-logs", h.Admin.ActivityLogs)
	}

	return r
}
