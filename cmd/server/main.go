package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/datascope-labs/authrelay/internal/config"
	"github.com/datascope-labs/authrelay/provider"
	"github.com/datascope-labs/authrelay/server"
	"github.com/datascope-labs/authrelay/sessions"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	ctx := context.Background()
	idp, err := provider.NewOIDC(ctx, c)
	if err != nil {
		return fmt.Errorf("provider.NewOIDC: %w", err)
	}

	sessionRepo, err := newSessionRepo(ctx, c)
	if err != nil {
		return fmt.Errorf("newSessionRepo: %w", err)
	}

	handler, err := server.New(c, idp, sessionRepo)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	srv := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(srv)
	waitForStopSignal()
	return shutdown(srv)
}

func newSessionRepo(ctx context.Context, c config.Config) (sessions.Repo, error) {
	switch c.GetSessionStore() {
	case "redis":
		sealer, err := sessions.NewSealer(c.GetSessionSealKey())
		if err != nil {
			return nil, fmt.Errorf("sessions.NewSealer: %w", err)
		}
		client := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return sessions.NewRedisRepo(client, sealer, c.GetFlowStateTTL(), c.GetSessionTTL())
	case "memory":
		return sessions.NewInMemoryRepo(c.GetFlowStateTTL(), c.GetSessionTTL()), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", c.GetSessionStore())
	}
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
