// Command scheduler runs the group scheduling HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/group-scheduler/internal/application"
	"github.com/example/group-scheduler/internal/auth"
	"github.com/example/group-scheduler/internal/config"
	httptransport "github.com/example/group-scheduler/internal/http"
	"github.com/example/group-scheduler/internal/logging"
	"github.com/example/group-scheduler/internal/metrics"
	"github.com/example/group-scheduler/internal/persistence/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))

	store, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := store.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now
	location := cfg.Location()

	users := sqlite.NewUserRepository(store)
	groups := sqlite.NewGroupRepository(store)
	busy := sqlite.NewBusyRepository(store)
	events := sqlite.NewEventRepository(store)
	invites := sqlite.NewInviteRepository(store)

	tokens := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)

	authService := application.NewAuthServiceWithLogger(users, tokens, idGenerator, now, logger)
	groupService := application.NewGroupServiceWithLogger(groups, users, idGenerator, now, logger)
	busyService := application.NewBusyServiceWithLogger(busy, groups, idGenerator, now, logger)
	eventService := application.NewEventServiceWithLogger(events, groups, idGenerator, now, logger)
	inviteService := application.NewInviteServiceWithLogger(invites, groups, idGenerator, now, logger)
	assistantService := application.NewAssistantServiceWithLogger(nil, groups, users, busy, events, idGenerator, now, location, logger)

	registry := metrics.NewRegistry()

	handler := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:      httptransport.NewAuthHandler(authService, logger),
		Groups:    httptransport.NewGroupHandler(groupService, inviteService, cfg.InviteTTL, logger),
		Busy:      httptransport.NewBusyHandler(busyService, logger),
		Events:    httptransport.NewEventHandler(eventService, logger),
		Assistant: httptransport.NewAssistantHandler(assistantService, registry, logger),
		Calendar:  httptransport.NewCalendarHandler(groupService, eventService, logger),
		Validator: tokens,
		Metrics:   registry,
		Logger:    logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("scheduler API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
