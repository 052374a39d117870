// Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hakobu/internal/ai"
	"hakobu/internal/config"
	httptransport "hakobu/internal/http"
	"hakobu/internal/infra"
	"hakobu/internal/maps"
	"hakobu/internal/modules/dispatch"
	"hakobu/internal/modules/estimate"
	"hakobu/internal/modules/fleet"
	"hakobu/internal/modules/quote"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	estimateStore := estimate.NewStore(dbPool, cfg.Pricing.DefaultItemPoints)
	estimateSvc := estimate.NewService(estimateStore, cfg.Pricing.TaxRate)

	var distance quote.DistanceResolver
	if cfg.Maps.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		distance = routeSvc
	}

	quoteStore := quote.NewStore(dbPool)
	quoteSvc := quote.NewService(quoteStore, estimateSvc, distance)

	fleetStore := fleet.NewStore(dbPool)
	fleetSvc := fleet.NewService(fleetStore)

	scheduleStore := dispatch.NewStore(dbPool)
	tokenStore := dispatch.NewRedisTokenStore(redisClient)
	dispatchSvc := dispatch.NewService(fleetSvc, scheduleStore, tokenStore)

	var suggester ai.ManifestSuggester
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiSuggester(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		suggester = gemini
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Quotes:    quoteSvc,
		Estimates: estimateSvc,
		Catalog:   estimateStore,
		Dispatch:  dispatchSvc,
		Fleet:     fleetSvc,
		Intake:    suggester,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
