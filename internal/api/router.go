package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/nnsolutions/isms/docs"
	"github.com/nnsolutions/isms/internal/api/handler"
	"github.com/nnsolutions/isms/internal/api/middleware"
	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth          ports.AuthService
	Admins        ports.AccountService
	Users         ports.AccountService
	Reports       ports.ReportService
	Logs          ports.LogService
	Tasks         ports.TaskService
	Mentors       ports.MentorService
	Notifications ports.NotificationService
	Activity      handler.ActivityQueue
}

// Options carries the router's non-service dependencies.
type Options struct {
	JWTSecret    string
	LoginLimiter *middleware.RateLimiter
	Readiness    map[string]handler.DependencyCheck
	// Registerer receives the HTTP request metrics. Defaults to
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "isms",
		Subsystem:  "http",
		Registerer: opts.Registerer,
		Skipper:    skipProbes,
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Readiness)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public API: login, logout and the desktop agent ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	activityHandler := handler.NewActivityHandler(svc.Activity)

	api := e.Group("/api")
	if opts.LoginLimiter != nil {
		api.POST("/login", authHandler.Login, opts.LoginLimiter.Middleware())
	} else {
		api.POST("/login", authHandler.Login)
	}
	api.POST("/logout", authHandler.Logout)
	api.POST("/activity", activityHandler.Record)
	e.POST("/activity", activityHandler.Record)

	// --- Authenticated API ---
	authMiddleware := middleware.Auth(opts.JWTSecret)
	superAdmin := middleware.RBAC(domain.RoleSuperAdmin)
	staffManagers := middleware.RBAC(domain.RoleSuperAdmin, domain.RoleAdmin)
	supervisors := middleware.RBAC(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleMentor)

	secured := api.Group("", authMiddleware)

	admins := handler.NewAccountHandler(svc.Admins, domain.KindAdmin)
	adminGroup := secured.Group("/admins", superAdmin)
	adminGroup.GET("", admins.List)
	adminGroup.POST("", admins.Create)
	adminGroup.PUT("/:id", admins.Update)
	adminGroup.DELETE("/:id", admins.Delete)

	users := handler.NewAccountHandler(svc.Users, domain.KindUser)
	secured.GET("/users", users.List, supervisors)
	secured.POST("/users", users.Create, staffManagers)
	secured.PUT("/users/:id", users.Update, staffManagers)
	secured.DELETE("/users/:id", users.Delete, staffManagers)

	daily := handler.NewReportHandler(svc.Reports, domain.ReportDaily)
	weekly := handler.NewReportHandler(svc.Reports, domain.ReportWeekly)
	secured.GET("/daily-reports", daily.List)
	secured.POST("/daily-reports", daily.Create)
	secured.DELETE("/daily-reports/:id", daily.Delete, supervisors)
	secured.GET("/weekly-reports", weekly.List)
	secured.POST("/weekly-reports", weekly.Create)
	secured.DELETE("/weekly-reports/:id", weekly.Delete, supervisors)
	secured.GET("/reports/export", daily.Export, supervisors)

	logs := handler.NewLogHandler(svc.Logs)
	secured.GET("/logs", logs.List, supervisors)
	secured.POST("/logs", logs.Create)
	secured.DELETE("/logs/clear", logs.Clear, superAdmin)

	tasks := handler.NewTaskHandler(svc.Tasks)
	secured.GET("/tasks", tasks.List)
	secured.POST("/tasks", tasks.Create, supervisors)
	secured.PUT("/tasks/:id", tasks.Update)
	secured.DELETE("/tasks/:id", tasks.Delete, supervisors)

	mentors := handler.NewMentorHandler(svc.Mentors)
	secured.GET("/mentors/performance", mentors.Performance, staffManagers)

	notifications := handler.NewNotificationHandler(svc.Notifications)
	secured.POST("/notifications/super-admin", notifications.Notify, supervisors)
	secured.GET("/notifications/super-admin", notifications.List, superAdmin)

	return e
}

func skipProbes(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

// requestLogger writes one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper:      skipProbes,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
