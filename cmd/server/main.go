// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"goldenjack/internal/config"
	"goldenjack/internal/handlers"
	"goldenjack/internal/history"
	"goldenjack/internal/middleware"
	"goldenjack/internal/room"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(config.Getenv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	manager := room.NewManager(logger)

	historian, err := history.FromEnv(context.Background(), logger)
	if err != nil {
		log.Fatalf("history sink init failed: %v", err)
	}
	defer historian.Close()
	manager.OnRoundFinished = historian.Record

	// Idle rooms expire; the janitor sweeps once a minute.
	ttl := time.Duration(config.GetenvInt("ROOM_TTL_MINUTES", 60)) * time.Minute
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n := manager.PruneIdle(ttl); n > 0 {
				logger.WithField("rooms", n).Info("pruned idle rooms")
			}
		}
	}()

	origins := config.AllowedOrigins()
	srv := handlers.NewRoomServer(manager, logger, origins)
	mux := http.NewServeMux()
	srv.Register(mux)

	handler := middleware.CORSMiddleware(origins)(middleware.LogMiddleware(logger)(mux))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
