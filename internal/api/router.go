package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/heatwatch/heatwave-alerts/internal/api/handler"
	"github.com/heatwatch/heatwave-alerts/internal/api/middleware"
	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
	"github.com/heatwatch/heatwave-alerts/internal/core/service"
	"github.com/heatwatch/heatwave-alerts/internal/infrastructure/config"
	mongodb "github.com/heatwatch/heatwave-alerts/internal/infrastructure/db/mongo"
	redisdb "github.com/heatwatch/heatwave-alerts/internal/infrastructure/db/redis"
	"github.com/heatwatch/heatwave-alerts/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the alert dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("heatwave"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	zoneRepo := mongodb.NewZoneRepository(db)
	waveRepo := mongodb.NewHeatWaveRepository(db)
	notifRepo := mongodb.NewNotificationRepository(db)
	recRepo := mongodb.NewRecommendationRepository(db)
	statRepo := mongodb.NewStatisticRepository(db)

	// --- Services ---
	roles := domain.ParseRoleSet(cfg.Auth.Roles)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, roles, cfg.Auth.RequireActive, log)

	dedup := redisdb.NewAlertDedup(rdb)
	notifService := service.NewNotificationService(notifRepo, userRepo, waveRepo, dedup, log)
	dispatcher := queue.NewDispatcher(cfg.AlertWorkers, notifService, log)

	zoneService := service.NewZoneService(zoneRepo, userRepo, log)
	waveService := service.NewHeatWaveService(waveRepo, zoneRepo, dispatcher, log)
	recService := service.NewRecommendationService(recRepo, zoneRepo)
	statService := service.NewStatisticService(statRepo, waveRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	zoneHandler := handler.NewZoneHandler(zoneService)
	waveHandler := handler.NewHeatWaveHandler(waveService)
	notifHandler := handler.NewNotificationHandler(notifService)
	recHandler := handler.NewRecommendationHandler(recService)
	statHandler := handler.NewStatisticHandler(statService)

	authRequired := middleware.Auth(tokens, userRepo, log)

	// The first configured role is the administrative one.
	adminRole := "ADMIN"
	if len(roles) > 0 {
		adminRole = roles[0]
	}
	adminOnly := middleware.RBAC(adminRole)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authRequired)
	e.GET("/admin/dashboard", authHandler.AdminDashboard, authRequired, adminOnly)

	// --- Resource routes (all behind the auth gate) ---
	zones := e.Group("/zones", authRequired)
	zones.POST("", zoneHandler.Create)
	zones.GET("", zoneHandler.List)
	zones.GET("/:id", zoneHandler.Get)
	zones.PUT("/:id", zoneHandler.Update)
	zones.DELETE("/:id", zoneHandler.Delete)
	zones.POST("/:id/residents", zoneHandler.AddResident)
	zones.DELETE("/:id/residents/:user_id", zoneHandler.RemoveResident)

	waves := e.Group("/heatwaves", authRequired)
	waves.POST("", waveHandler.Create)
	waves.GET("", waveHandler.List)
	waves.GET("/active", waveHandler.ListActive)
	waves.GET("/zone/:zone_id", waveHandler.ListByZone)
	waves.GET("/:id", waveHandler.Get)
	waves.PUT("/:id", waveHandler.Update)
	waves.DELETE("/:id", waveHandler.Delete)

	notifs := e.Group("/notifications", authRequired)
	notifs.POST("", notifHandler.Create)
	notifs.GET("", notifHandler.List)
	notifs.GET("/unread", notifHandler.Unread)
	notifs.GET("/:id", notifHandler.Get)
	notifs.POST("/:id/read", notifHandler.MarkRead)
	notifs.DELETE("/:id", notifHandler.Delete)

	recs := e.Group("/recommendations", authRequired)
	recs.POST("", recHandler.Create)
	recs.GET("", recHandler.List)
	recs.GET("/zone/:zone_id", recHandler.ListByZone)
	recs.GET("/:id", recHandler.Get)
	recs.PUT("/:id", recHandler.Update)
	recs.DELETE("/:id", recHandler.Delete)

	stats := e.Group("/stats", authRequired)
	stats.POST("", statHandler.Create)
	stats.GET("", statHandler.List)
	stats.GET("/summary", statHandler.Summary)
	stats.GET("/heatwave/:heat_wave_id", statHandler.GetByHeatWave)
	stats.GET("/:id", statHandler.Get)
	stats.PUT("/:id", statHandler.Update)
	stats.DELETE("/:id", statHandler.Delete)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher
}
