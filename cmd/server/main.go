package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	directory "github.com/frontdesk/switchboard/internal/adapter/driven/directory/memory"
	"github.com/frontdesk/switchboard/internal/adapter/driven/media/bridge"
	registry "github.com/frontdesk/switchboard/internal/adapter/driven/registry/memory"
	handler "github.com/frontdesk/switchboard/internal/adapter/driving/http"
	"github.com/frontdesk/switchboard/internal/config"
	"github.com/frontdesk/switchboard/internal/core/domain"
	"github.com/frontdesk/switchboard/internal/core/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w := zerolog.ConsoleWriter{Out: os.Stdout}
	log.Logger = zerolog.New(w).With().Timestamp().Caller().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	sessions := registry.NewRegistry()
	dir := directory.NewDirectory()

	media := bridge.NewBridge(bridge.NewLoopbackTransport(), bridge.NullCapture{})
	media.SetFailureHandler(func(roomID domain.RoomID, participant domain.ParticipantID, err error) {
		ch, lookupErr := dir.Lookup(participant)
		if lookupErr != nil {
			return
		}
		_ = ch.Send(domain.NewError(err.Error()))
	})

	callService := service.NewCallService(sessions, dir, media)
	h := handler.NewHandler(callService, dir, cfg.StaticPath, cfg.ReadLimit)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: h.NewRouter(),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
