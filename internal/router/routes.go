package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeoremedies/remedy-finder/api/internal/auth"
	"github.com/homeoremedies/remedy-finder/api/internal/config"
	"github.com/homeoremedies/remedy-finder/api/internal/handler"
	middlewarepkg "github.com/homeoremedies/remedy-finder/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router. Auth, History
// and Favorites are nil when no database is configured; their routes
// are simply not registered in that mode.
type Handlers struct {
	Recommend *handler.RecommendHandler
	Auth      *handler.AuthHandler
	History   *handler.HistoryHandler
	Favorites *handler.FavoritesHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/recommendations",
		handlers.Recommend.Create,
		middlewarepkg.OptionalJWT(jwtManager),
		middlewarepkg.RecommendRateLimiter(cfg.RateLimitRecommend),
	)

	if handlers.Auth != nil {
		e.POST("/auth/register", handlers.Auth.Register)
		e.POST("/auth/login", handlers.Auth.Login)
	}

	if handlers.History != nil || handlers.Favorites != nil {
		secured := e.Group("", middlewarepkg.JWT(jwtManager))
		if handlers.History != nil {
			secured.GET("/history", handlers.History.List)
			secured.DELETE("/history/:id", handlers.History.Delete)
		}
		if handlers.Favorites != nil {
			secured.POST("/favorites", handlers.Favorites.Save)
			secured.GET("/favorites", handlers.Favorites.List)
			secured.DELETE("/favorites/:id", handlers.Favorites.Delete)
		}
	}
}
