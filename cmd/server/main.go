package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"gadgetfinder-backend/internal/catalog"
	"gadgetfinder-backend/internal/config"
	"gadgetfinder-backend/internal/database"
	"gadgetfinder-backend/internal/handlers"
	"gadgetfinder-backend/internal/logging"
	"gadgetfinder-backend/internal/policy"
	"gadgetfinder-backend/internal/router"
	"gadgetfinder-backend/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	log.WithField("env", cfg.Env).Info("starting gadgetfinder backend")

	ctx := context.Background()

	// ──── Step 2: Load System Policy ────
	source, closeSource, err := policySource(cfg)
	if err != nil {
		log.WithError(err).Fatal("policy source unavailable")
	}
	defer closeSource()

	policyStore, err := policy.NewStore(ctx, source)
	if err != nil {
		log.WithError(err).Fatal("failed to load system policy")
	}
	log.WithField("source", policyStore.Source()).Info("system policy loaded")

	// ──── Step 3: Initialize Chat Provider ────
	provider, err := services.NewChatProvider(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("chat provider initialization failed")
	}
	if closer, ok := provider.(interface{ Close() }); ok {
		defer closer.Close()
	}
	if err := provider.CheckCredential(); err != nil {
		// Not fatal: the chat endpoint answers with a configuration error.
		log.WithError(err).WithField("provider", provider.Name()).Warn("chat provider credential is not usable")
	} else {
		log.WithField("provider", provider.Name()).Info("chat provider ready")
	}

	// ──── Step 4: Load Site Documents ────
	var catalogHandler *handlers.CatalogHandler
	cat, err := catalog.Load(cfg.SiteConfigPath, cfg.AffiliatesPath)
	if err != nil {
		log.WithError(err).Warn("site documents not loaded, catalog routes disabled")
	} else {
		catalogHandler = handlers.NewCatalogHandler(cat)
		log.WithField("categories", len(cat.Affiliates.Categories)).Info("site documents loaded")
	}

	// ──── Step 5: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(provider, policyStore)
	r := router.New(log, chatHandler, catalogHandler)

	// WriteTimeout stays above the upstream timeout so a slow upstream is
	// reported by the handler rather than cut off by the server.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.UpstreamTimeoutSeconds)*time.Second + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go watchSignals(log, server, policyStore)

	log.WithField("port", cfg.Port).Info("gadgetfinder backend ready")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.WithError(err).Fatal("server error")
	}
}

// policySource picks the policy document location: file, then Redis, then
// the embedded default.
func policySource(cfg *config.Config) (policy.Source, func(), error) {
	switch {
	case cfg.PolicyPath != "":
		return policy.FileSource{Path: cfg.PolicyPath}, func() {}, nil
	case cfg.PolicyRedisKey != "":
		if cfg.RedisURL == "" {
			return nil, nil, fmt.Errorf("POLICY_REDIS_KEY is set but REDIS_URL is empty")
		}
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return policy.RedisSource{Client: client, Key: cfg.PolicyRedisKey}, func() { client.Close() }, nil
	default:
		return policy.Embedded(), func() {}, nil
	}
}

// watchSignals reloads the policy on SIGHUP and shuts down on SIGINT/SIGTERM.
func watchSignals(log logrus.FieldLogger, server *http.Server, store *policy.Store) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for sig := range sigChan {
		if sig == syscall.SIGHUP {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := store.Reload(ctx); err != nil {
				log.WithError(err).Error("policy reload failed, keeping previous policy")
			} else {
				log.WithField("source", store.Source()).Info("system policy reloaded")
			}
			cancel()
			continue
		}

		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		server.Shutdown(ctx)
		cancel()
		return
	}
}
