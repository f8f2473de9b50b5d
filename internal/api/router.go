package api

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cuna-app/cuna/internal/api/handler"
	"github.com/cuna-app/cuna/internal/api/middleware"
	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/service"
	"github.com/cuna-app/cuna/internal/infrastructure/config"
	"github.com/cuna-app/cuna/internal/infrastructure/db/postgres"
	redisstore "github.com/cuna-app/cuna/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sqlx.DB, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// Unmatched paths surface through the domain taxonomy so the 404
	// envelope matches every other error.
	e.RouteNotFound("/*", func(echo.Context) error { return domain.ErrNotFound })

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cuna"))

	// --- Repositories ---
	users := postgres.NewUserRepository(db)
	roles := postgres.NewRoleRepository(db)
	babies := postgres.NewBabyRepository(db)
	meals := postgres.NewMealRepository(db)
	dreams := postgres.NewDreamRepository(db)
	weights := postgres.NewWeightRepository(db)
	stats := postgres.NewStatsRepository(db)

	// --- Core services ---
	projector := service.NewProjector(users, roles, babies)
	sessions := service.NewSessionManager(redisstore.NewSessionStore(rdb), projector, cfg.SessionTTL(), log)
	gate := service.NewGate(babies)
	accounts := service.NewAccountService(users, roles, log)
	babySvc := service.NewBabyService(babies, sessions, log)
	tracker := service.NewTrackerService(gate, meals, dreams, weights, log)
	summaries := service.NewSummaryService(gate, meals, dreams)
	admin := service.NewAdminService(users, roles, babies, stats, gate, sessions, log)

	// --- Handlers ---
	codec := middleware.NewCookieCodec(cfg.CookieSecret, cfg.SessionTTL())
	authHandler := handler.NewAuthHandler(accounts, sessions, babySvc, codec)
	userHandler := handler.NewUserHandler(accounts)
	babyHandler := handler.NewBabyHandler(babySvc)
	trackerHandler := handler.NewTrackerHandler(tracker)
	summaryHandler := handler.NewSummaryHandler(summaries)
	adminHandler := handler.NewAdminHandler(admin)

	// --- Health probes and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- API surface: every request carries a resolved principal ---
	api := e.Group("/api", middleware.Session(codec, sessions, log))

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.Session)

	api.GET("/user/:id", userHandler.Get, middleware.Authenticated())
	api.PATCH("/user/:id", userHandler.Patch, middleware.Authenticated())

	baby := api.Group("/baby", middleware.Authenticated())
	baby.POST("", babyHandler.Create)
	baby.DELETE("/:uuid", babyHandler.Delete)

	baby.GET("/:uuid/meals", trackerHandler.ListMeals)
	baby.POST("/:uuid/meals", trackerHandler.AddMeal)
	baby.GET("/:uuid/meals/summary", summaryHandler.MealSummary)
	baby.GET("/:uuid/meals/summary/range", summaryHandler.MealSummaryRange)

	baby.GET("/:uuid/dreams", trackerHandler.ListDreams)
	baby.POST("/:uuid/dreams", trackerHandler.AddDream)
	baby.GET("/:uuid/dreams/summary", summaryHandler.DreamSummary)
	baby.GET("/:uuid/dreams/summary/range", summaryHandler.DreamSummaryRange)

	baby.GET("/:uuid/weights", trackerHandler.ListWeights)
	baby.POST("/:uuid/weights", trackerHandler.AddWeight)
	baby.PATCH("/:uuid/weights", trackerHandler.PatchWeight)

	adminGroup := api.Group("/admin", middleware.Admin())
	adminGroup.GET("/stats", adminHandler.Stats)
	adminGroup.GET("/roles", adminHandler.Roles)
	adminGroup.PUT("/roles", adminHandler.GrantRole)
	adminGroup.DELETE("/roles", adminHandler.RevokeRole)
	adminGroup.GET("/user", adminHandler.GetUser)
	adminGroup.DELETE("/user", adminHandler.DeleteUser)
	adminGroup.PATCH("/user", adminHandler.PatchUser)
	adminGroup.PUT("/baby", adminHandler.ShareBaby)

	return e
}
