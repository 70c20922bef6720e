package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "rentdesk/internal/config"
	router "rentdesk/internal/http"
	"rentdesk/internal/http/handlers"
	"rentdesk/internal/maps"
	"rentdesk/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	redisClient := intconfig.NewRedisClient(env)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var routes services.RouteEstimator
	if env.MapsAPIKey != "" {
		rs, err := maps.NewRouteService(env.MapsAPIKey)
		if err != nil {
			log.Printf("warning: route mapping disabled: %v", err)
		} else {
			routes = rs
		}
	}

	handlers.Configure(handlers.Config{
		Redis:        redisClient,
		Routes:       routes,
		FreeKmPerDay: env.FreeKmPerDay,
		JWTSecret:    []byte(env.JWTSecret),
	})

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
