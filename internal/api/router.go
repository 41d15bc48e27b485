package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/dnfmate/character-lookup/docs"
	"github.com/dnfmate/character-lookup/internal/api/handler"
	"github.com/dnfmate/character-lookup/internal/api/middleware"
	"github.com/dnfmate/character-lookup/internal/core/domain"
	"github.com/dnfmate/character-lookup/internal/core/ports"
)

// Dependencies carries everything the router mounts. Web may be nil, in which
// case the /web surface is not registered.
type Dependencies struct {
	JWTSecret     string
	Auth          ports.AuthService
	Registrations ports.RegistrationService
	Characters    ports.CharacterService
	Dispatcher    handler.EnrichDispatcher
	Web           *handler.WebHandler
	HealthChecks  map[string]handler.DependencyCheck

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "dnf",
		Subsystem:  "http",
		Registerer: deps.Registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- Registrations (bearer) ---
	regHandler := handler.NewRegistrationHandler(deps.Registrations, deps.Dispatcher)
	regs := e.Group("/registrations",
		middleware.Auth(deps.JWTSecret),
		middleware.RBAC(domain.RoleUser, domain.RoleAdmin),
	)
	regs.GET("", regHandler.List)
	regs.POST("", regHandler.Add)
	regs.DELETE("/:serverId/:characterId", regHandler.Remove)

	// --- Game data (public) ---
	charHandler := handler.NewCharacterHandler(deps.Characters)
	e.GET("/characters", charHandler.Search)
	e.GET("/character-detail", charHandler.Detail)
	e.GET("/character-detail/equipment", charHandler.Equipment)
	e.GET("/item-image/:itemId", charHandler.ItemImage)

	// --- Session-bound web surface ---
	if deps.Web != nil {
		web := e.Group("/web")
		web.POST("/login", deps.Web.Login)
		web.POST("/logout", deps.Web.Logout)
		web.POST("/refresh", deps.Web.Refresh)
		web.GET("/session", deps.Web.Session)
		web.GET("/my-page", deps.Web.MyPage)
		web.POST("/my-page/characters", deps.Web.AddCharacter)
		web.DELETE("/my-page/characters/:serverId/:characterId", deps.Web.RemoveCharacter)
		web.GET("/search", deps.Web.Search)
		web.GET("/characters/:serverId/:characterId", deps.Web.CharacterDetail)
	}

	return e
}

// requestLogger emits one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
