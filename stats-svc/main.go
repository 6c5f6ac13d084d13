package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"school-meal/config"
	httpapi "school-meal/stats-svc/internal/api/http"
	"school-meal/stats-svc/internal/service"
	"school-meal/stats-svc/internal/storage"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	config.LoadDotEnv()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	topic := config.GetEnv("MENU_VIEWS_TOPIC", "menu-views")
	reader := config.NewKafkaReader(topic, "stats-svc-consumer")
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := storage.NewStore(rdb, 30*24*time.Hour)

	r := mux.NewRouter()
	httpapi.NewHandler(store).RegisterRoutes(r)

	port := config.GetEnv("PORT", "8081")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           cors.Default().Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Stats Service starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	log.Printf("[stats-svc] consuming %s", topic)
	service.NewConsumer(reader, store).Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[stats-svc] shutdown error: %v", err)
	}
}
