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
	httpapi "school-meal/meal-svc/internal/api/http"
	"school-meal/meal-svc/internal/charts"
	"school-meal/meal-svc/internal/neis"
	"school-meal/meal-svc/internal/service"
	"school-meal/meal-svc/internal/storage"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	config.LoadDotEnv()

	port := config.GetEnv("PORT", "8080")
	baseURL := config.GetEnv("PUBLIC_BASE_URL", "http://localhost:"+port)

	var sessions service.SessionStore = storage.NewMemorySessionStore()
	if config.RedisEnabled() {
		rdb := config.MustInitRedis()
		defer rdb.Close()
		sessions = storage.NewRedisSessionStore(rdb, 24*time.Hour)
		log.Println("[meal-svc] popup state stored in Redis")
	}

	var facts service.FactSource = service.StaticFacts(service.DefaultFacts)
	if config.PostgresEnabled() {
		db := config.MustInitPostgres()
		defer db.Close()
		repo := storage.NewPostgresFactRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		facts = repo
		log.Println("[meal-svc] fun facts loaded from Postgres")
	}

	var publisher service.MenuPublisher
	if config.KafkaEnabled() {
		writer := config.NewKafkaWriter(config.GetEnv("MENU_VIEWS_TOPIC", "menu-views"))
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
		log.Println("[meal-svc] publishing menu views to Kafka")
	}

	fetcher := neis.NewClient(neis.DefaultConfig(), &http.Client{})
	menus := service.NewMenuService(fetcher, charts.NewRenderer(), publisher)
	popups := service.NewPopupService(sessions, facts, service.NewRand)

	handler := httpapi.NewHandler(menus, popups, service.DefaultQRGenerator{BaseURL: baseURL})

	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	trustProxy := config.GetEnv("TRUST_PROXY", "false") == "true"
	limited := httpapi.RateLimit(ctx, 5, 10, trustProxy)(r)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpapi.Logging(c.Handler(limited)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Meal Service starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	<-ctx.Done()
	log.Println("[meal-svc] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[meal-svc] shutdown error: %v", err)
	}
}
