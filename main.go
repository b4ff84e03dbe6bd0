package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"project/config"
	"project/database"
	"project/middleware"
	"project/routes"
	"project/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var store storage.Store
	switch cfg.StoreDriver {
	case "mysql":
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		store, err = storage.NewGormStore(db)
		if err != nil {
			log.Fatalf("failed to initialize mysql store: %v", err)
		}
		log.Println("Using mysql store")
	case "memory":
		store = storage.NewMemStore()
		log.Println("Using in-memory store (volatile; data is lost on restart)")
	default:
		log.Fatalf("unknown STORE_DRIVER %q (want memory or mysql)", cfg.StoreDriver)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to connect redis at %s: %v", cfg.RedisAddr, err)
		}
		log.Printf("Login rate limiting backed by redis at %s", cfg.RedisAddr)
	}

	router := routes.InitRouter(routes.Deps{
		Store: store,
		Cfg:   cfg,
		Redis: rdb,
	})

	handler := middleware.MaxBody(cfg.MaxBodyBytes)(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server exited")
}
