package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/account-service/docs"
	"github.com/99minutos/account-service/internal/api/handler"
	"github.com/99minutos/account-service/internal/api/middleware"
	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

// APIPrefix is prepended to every account route.
const APIPrefix = "/api/v1"

// Deps are the collaborators the router wires into handlers and guards.
type Deps struct {
	AuthService  ports.AuthService
	UserService  ports.UserService
	Tokens       ports.TokenIssuer
	Revocations  ports.RevocationStore
	HealthChecks map[string]handler.HealthCheck
	SecureCookie bool
	Log          zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry, which also holds the custom metrics.
	Registry *prometheus.Registry
}

// route declares one endpoint and the guards it needs. Role implies Auth.
type route struct {
	Method  string
	Path    string
	Handler echo.HandlerFunc
	Auth    bool
	Role    string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "accounts",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.Tokens.TTL(), d.SecureCookie)
	userHandler := handler.NewUserHandler(d.UserService)
	authMiddleware := middleware.Auth(d.Tokens, d.Revocations, d.Log)

	routes := []route{
		{Method: http.MethodPost, Path: "/auth/signup/admin", Handler: authHandler.AdminSignUp},
		{Method: http.MethodPost, Path: "/auth/login", Handler: authHandler.Login},
		{Method: http.MethodPost, Path: "/auth/signUp", Handler: authHandler.Register},
		{Method: http.MethodPost, Path: "/auth/change-password", Handler: authHandler.ChangePassword, Auth: true},
		{Method: http.MethodPatch, Path: "/user/updateUser", Handler: userHandler.UpdateUser, Auth: true},
		{Method: http.MethodDelete, Path: "/user/delete", Handler: userHandler.Delete, Auth: true},
		{Method: http.MethodGet, Path: "/user/me", Handler: userHandler.Me, Auth: true},
		{Method: http.MethodGet, Path: "/admin/users/:id", Handler: userHandler.AdminGetUser, Auth: true, Role: domain.RoleAdmin},
		{Method: http.MethodGet, Path: "/admin/users/:id/audit", Handler: userHandler.AdminAuditTrail, Auth: true, Role: domain.RoleAdmin},
	}

	v1 := e.Group(APIPrefix)
	for _, r := range routes {
		var chain []echo.MiddlewareFunc
		if r.Auth || r.Role != "" {
			chain = append(chain, authMiddleware)
		}
		if r.Role != "" {
			chain = append(chain, middleware.RequireRole(r.Role))
		}
		v1.Add(r.Method, r.Path, r.Handler, chain...)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.HealthChecks)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operational ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
