package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/canteen/internal/config"
	"github.com/Skotchmaster/canteen/internal/db"
	"github.com/Skotchmaster/canteen/internal/es"
	"github.com/Skotchmaster/canteen/internal/httpserver"
	"github.com/Skotchmaster/canteen/internal/logging"
	"github.com/Skotchmaster/canteen/internal/middleware"
	"github.com/Skotchmaster/canteen/internal/mykafka"
	"github.com/Skotchmaster/canteen/internal/repo"
	"github.com/Skotchmaster/canteen/internal/search"
	"github.com/Skotchmaster/canteen/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("notice: .env not loaded: %v, using process environment", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: gdb}
	orderSvc := &service.OrderService{Repo: gormRepo}
	menuSvc := &service.MenuService{Repo: gormRepo}
	menuHandler := &httpserver.MenuHTTP{Svc: menuSvc}

	var producer *mykafka.Producer
	if cfg.EventsEnabled() {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		orderSvc.Publisher = producer
		logger.Info("order events enabled", "topic", cfg.KafkaOrderTopic)
	}

	if cfg.SearchEnabled() {
		esCtx, esCancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := es.NewClient(esCtx, cfg)
		esCancel()
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		menuIndex := search.NewMenuIndex(client, cfg.ESMenuIndex)
		menuSvc.Indexer = menuIndex
		menuHandler.Search = menuIndex
		logger.Info("menu search enabled", "index", cfg.ESMenuIndex)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(middleware.Common(logger)...)

	httpserver.Register(e, &httpserver.Deps{
		OrderHandler: &httpserver.OrderHTTP{Svc: orderSvc},
		MenuHandler:  menuHandler,
		DB:           gormRepo,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("canteen listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}

	logger.Info("canteen stopped")
}
