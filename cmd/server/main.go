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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"aodai_back_end/internal/cache"
	"aodai_back_end/internal/config"
	orderhandler "aodai_back_end/internal/handlers/order"
	producthandler "aodai_back_end/internal/handlers/product"
	userhandler "aodai_back_end/internal/handlers/user"
	"aodai_back_end/internal/mailer"
	"aodai_back_end/internal/routes"
	"aodai_back_end/internal/storage"
	"aodai_back_end/internal/store"
)

func main() {
	config.Load()

	ctx := context.Background()

	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		log.Fatal("❌ MONGO_URL is required")
	}

	db, err := store.Open(ctx, mongoURL, config.Get("MONGO_DB", "aodai_shop"))
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}

	rdb := cache.Connect(ctx, os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PASSWORD"))
	uploads := storage.Connect(ctx)
	mail := mailer.FromEnv()

	r := gin.Default()
	r.Use(cors.New(corsConfig()))

	routes.Register(r, routes.Deps{
		Store:    db,
		Cache:    rdb,
		Users:    userhandler.NewHandler(db),
		Products: producthandler.NewHandler(db, rdb, uploads),
		Orders:   orderhandler.NewHandler(db, mail),
	})

	port := config.Get("PORT", "8080")
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.Println("🚀 Server listening on port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("⚠️  Forced shutdown:", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Println("⚠️  Mongo close:", err)
	}
	if err := rdb.Close(); err != nil {
		log.Println("⚠️  Redis close:", err)
	}
	log.Println("👋 Server stopped")
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = []string{origins}
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}
