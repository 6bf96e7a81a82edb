package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"feedboard/config"
	"feedboard/handlers"
	"feedboard/images"
	"feedboard/logger"
	"feedboard/routes"
	"feedboard/store"
	"feedboard/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_SECRET must be set")
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	users, posts, disconnect := dialStore(cfg)
	defer disconnect()

	imgs, err := images.NewManager(cfg.ImageDir)
	if err != nil {
		logger.Log.Fatalw("failed to prepare image directory", "dir", cfg.ImageDir, "error", err)
	}

	tokens := token.NewManager(cfg.JWTSecret, token.DefaultTTL)

	router := routes.New(
		handlers.NewAuth(users, tokens),
		handlers.NewFeed(posts, users, imgs),
		tokens,
		cfg.ImageDir,
	)

	server := &http.Server{
		Addr:         cfg.RunAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Infow("server started", "addr", cfg.RunAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalw("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("forced shutdown", "error", err)
	}

	logger.Log.Info("server stopped")
}

// dialStore connects to MongoDB with a few retries, or falls back to the
// in-memory store when no URI is configured.
func dialStore(cfg *config.Config) (store.Users, store.Posts, func()) {
	if cfg.MongoURI == "" {
		logger.Log.Warn("MONGODB_URI not set, using in-memory store")
		mem := store.NewMemory()
		return mem.Users, mem.Posts, func() {}
	}

	var (
		db  *store.Mongo
		err error
	)
	for attempt := 1; attempt <= 3; attempt++ {
		db, err = store.Dial(context.Background(), cfg.MongoURI, cfg.MongoName)
		if err == nil {
			break
		}
		logger.Log.Warnw("mongodb connection attempt failed", "attempt", attempt, "error", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logger.Log.Fatalw("failed to connect to mongodb", "error", err)
	}

	logger.Log.Info("connected to mongodb")

	return db.Users, db.Posts, func() {
		if err := db.Disconnect(context.Background()); err != nil {
			logger.Log.Errorw("mongodb disconnect failed", "error", err)
		}
	}
}
