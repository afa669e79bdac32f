package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mkotelnikov/webstore/internal/auth"
	"github.com/mkotelnikov/webstore/internal/config"
	"github.com/mkotelnikov/webstore/internal/events"
	"github.com/mkotelnikov/webstore/internal/httpserver"
	"github.com/mkotelnikov/webstore/internal/logging"
	"github.com/mkotelnikov/webstore/internal/middleware"
	"github.com/mkotelnikov/webstore/internal/repo"
	"github.com/mkotelnikov/webstore/internal/search"
	"github.com/mkotelnikov/webstore/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer events.Producer = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaProducer(cfg.KafkaBrokers)
		defer kp.Close()
		producer = kp
	}

	var searchClient *search.Client
	if cfg.ESURL != "" {
		searchClient, err = search.NewClient(search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			// the store works without full-text search, the catalog
			// falls back to database matching
			logger.Error("search_init_failed", "error", err)
			searchClient = nil
		}
	}

	gormRepo := repo.New(db)
	tokens := auth.NewManager(cfg.JWTSecret)

	deps := &httpserver.Deps{
		Auth:     &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: gormRepo, Tokens: tokens, Producer: producer}},
		Product:  &httpserver.ProductHTTP{Svc: &service.CatalogService{Repo: gormRepo, Search: searchClient, Producer: producer}},
		Category: &httpserver.CategoryHTTP{Svc: &service.CatalogService{Repo: gormRepo, Search: searchClient, Producer: producer}},
		Cart:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: gormRepo}},
		Order:    &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: gormRepo, Producer: producer}},
		Review:   &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: gormRepo}},
		User:     &httpserver.UserHTTP{Svc: &service.UserService{Repo: gormRepo}},
		Admin:    &httpserver.AdminHTTP{Svc: &service.AdminService{Repo: gormRepo}},
		AuthMW:   middleware.NewAuthMiddleware(tokens),
	}

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, deps)

	go func() {
		logger.Info("server_starting", "port", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("server_shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo_shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server_stopped")
}
