package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oasis/auth"
	"oasis/booking"
	"oasis/cabins"
	"oasis/config"
	"oasis/confirmation"
	"oasis/contact"
	"oasis/db"
	"oasis/middleware"
	"oasis/mq"
	"oasis/pgdb"
	"oasis/profile"
	"oasis/ratelim"
	"oasis/rdx"
	"oasis/routes"
	"oasis/settings"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// openStore connects the store named by cfg.StoreDriver.
func openStore(ctx context.Context, cfg config.Config) (db.Store, error) {
	if cfg.StoreDriver == config.DriverPostgres {
		return pgdb.Connect(ctx, cfg.DatabaseURL)
	}
	return db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
}

// setupRouter builds the router with all routes.
func setupRouter(d routes.Deps) *httprouter.Router {
	router := httprouter.New()
	routes.RoutesWrapper(router, d)
	return router
}

func main() {
	cfg := config.Load()
	if missing := cfg.Validate(); len(missing) > 0 {
		log.Fatalf("❌ missing configuration: %v", missing)
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := openStore(connectCtx, cfg)
	if err != nil {
		log.Fatalf("❌ store: %v", err)
	}
	redisClient, err := rdx.Connect(connectCtx, cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("❌ redis: %v", err)
	}
	cancelConnect()
	log.Printf("🗄️  using %s store", cfg.StoreDriver)

	views := rdx.NewViewCache(redisClient)
	emitter := mq.NewEmitter(redisClient)

	// live availability: Redis pub/sub → websocket viewers
	hub := booking.NewHub()
	workerCtx, stopWorker := context.WithCancel(context.Background())
	go mq.StartBookingWorker(workerCtx, redisClient, hub.Deliver)

	bookings := booking.NewService(store, views, emitter)
	bridge := auth.NewBridge(store)
	sessions := &auth.Sessions{
		Bridge:  bridge,
		Tokens:  auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL),
		Revoked: rdx.NewRevocations(redisClient),
	}
	signer, err := confirmation.NewSigner(cfg.ConfirmationSecret)
	if err != nil {
		log.Fatalf("❌ confirmation signer: %v", err)
	}

	router := setupRouter(routes.Deps{
		Auth:        middleware.NewAuthenticator(sessions),
		RateLimiter: ratelim.NewRateLimiter(30, 10),
		Sessions: &auth.Handlers{
			Provider: auth.NewGoogleProvider(cfg.GoogleClientID),
			Bridge:   bridge,
			Sessions: sessions,
		},
		Bookings:      booking.NewHandlers(bookings),
		Hub:           hub,
		Cabins:        cabins.NewHandlers(cabins.NewCatalogue(store, bookings.Resolver, views)),
		Profile:       profile.NewHandlers(profile.NewService(store, views)),
		Settings:      settings.NewHandlers(store),
		Contact:       contact.NewHandlers(store),
		Confirmations: confirmation.NewHandlers(bookings, store, signer),
	})

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := middleware.Logging(middleware.SecurityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("🛑 Closing availability sockets...")
		stopWorker()
		hub.Stop()
	})

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}
	if err := store.Close(ctx); err != nil {
		log.Printf("store close: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
