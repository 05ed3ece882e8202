package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	openai "github.com/sashabaranov/go-openai"

	"github.com/homeoremedies/remedy-finder/api/internal/auth"
	"github.com/homeoremedies/remedy-finder/api/internal/config"
	"github.com/homeoremedies/remedy-finder/api/internal/database"
	"github.com/homeoremedies/remedy-finder/api/internal/handler"
	"github.com/homeoremedies/remedy-finder/api/internal/maps"
	middlewarepkg "github.com/homeoremedies/remedy-finder/api/internal/middleware"
	"github.com/homeoremedies/remedy-finder/api/internal/repository"
	"github.com/homeoremedies/remedy-finder/api/internal/router"
	"github.com/homeoremedies/remedy-finder/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.AIGatewayKey == "" {
		log.Fatalf("AI_GATEWAY_KEY must be set")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	aiConfig := openai.DefaultConfig(cfg.AIGatewayKey)
	aiConfig.BaseURL = cfg.AIGatewayURL
	aiConfig.HTTPClient = httpClient
	remedyService := service.NewRemedyService(openai.NewClientWithConfig(aiConfig), cfg.AIModel)

	var mapsClient maps.Client
	if cfg.MapsAPIKey != "" {
		mapsClient = maps.NewHTTPClient(httpClient, cfg.MapsBaseURL, cfg.MapsAPIKey)
	} else {
		log.Println("MAPS_API_KEY not set, store lookups disabled")
	}
	storeService := service.NewStoreService(mapsClient)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	handlers := router.Handlers{}

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer pool.Close()

		usersRepo := repository.NewPGXUsersRepository(pool)
		historyRepo := repository.NewPGXHistoryRepository(pool)
		historyService := service.NewHistoryService(historyRepo)

		handlers.Auth = handler.NewAuthHandler(service.NewAuthService(usersRepo, jwtManager))
		handlers.History = handler.NewHistoryHandler(historyService)
		handlers.Favorites = handler.NewFavoritesHandler(service.NewFavoritesService(repository.NewPGXFavoritesRepository(pool)))
		handlers.Recommend = handler.NewRecommendHandler(remedyService, storeService, historyService)
	} else {
		log.Println("DATABASE_URL not set, auth and search history disabled")
		handlers.Recommend = handler.NewRecommendHandler(remedyService, storeService, nil)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.CORS())
	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
