package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bytebazaar-storefront/internal/cart"
	"bytebazaar-storefront/internal/catalog"
	"bytebazaar-storefront/internal/client"
	"bytebazaar-storefront/internal/config"
	"bytebazaar-storefront/internal/repository"
	"bytebazaar-storefront/internal/server"
	"bytebazaar-storefront/internal/session"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabaseDSN)

	sessionRepo := repository.NewSessionRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)

	identityClient := client.NewIdentityClient(&cfg.Identity)
	sessions := session.NewManager(identityClient, sessionRepo)
	if err := sessions.Restore(context.Background()); err != nil {
		log.Println("could not restore session:", err)
	}

	storefront := client.NewStorefrontClient(&cfg.Storefront, sessions)

	cartHolder := cart.NewHolder(storefront)
	catalogService := catalog.NewService(storefront)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(sessions, storefront, cartHolder, catalogService, prefRepo)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
