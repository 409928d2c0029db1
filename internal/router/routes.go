package router

import (
	"net"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/people-api/internal/auth"
	"github.com/octobees/people-api/internal/config"
	"github.com/octobees/people-api/internal/entity"
	"github.com/octobees/people-api/internal/handler"
	middlewarepkg "github.com/octobees/people-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth    *handler.AuthHandler
	People  *handler.PeopleHandler
	Session *handler.SessionHandler
}

// Register wires all HTTP routes for the API. people backs the per-request
// account reload behind bearer tokens.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, people middlewarepkg.PersonFinder, handlers Handlers) {
	if e.IPExtractor == nil {
		e.IPExtractor = ClientIPExtractor(cfg.TrustedProxies)
	}

	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	api := e.Group("/api/v1")
	api.POST("/login", handlers.Auth.Login, middlewarepkg.LoginRateLimiter(cfg.RateLimitLogin))
	api.POST("/registration", handlers.Auth.Register)

	jwtAuth := middlewarepkg.JWT(jwtManager, people)
	e.GET("/hello", handlers.Session.Hello, jwtAuth)

	secured := api.Group("", jwtAuth)
	secured.GET("/show", handlers.Session.Show)

	owner := middlewarepkg.RequireSelfOrRole("id", entity.RoleAdmin)
	secured.GET("/user/:id", handlers.People.Get)
	secured.PUT("/user/:id", handlers.People.Update, owner)
	secured.DELETE("/user/:id", handlers.People.Delete, owner)

	admin := secured.Group("/admin", middlewarepkg.RequireRole(entity.RoleAdmin))
	admin.GET("/users", handlers.People.List)
	admin.PATCH("/users/:id/role", handlers.People.ChangeRole)
}

// ClientIPExtractor resolves the caller address used by the login limiter.
// X-Forwarded-For is honoured only when the hop that set it is in trusted;
// without trusted proxies the socket address is used.
func ClientIPExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, ipNet := range trusted {
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
