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
	"github.com/jrsteele09/decap-oauth-bridge/bridge"
	"github.com/jrsteele09/decap-oauth-bridge/content"
	"github.com/jrsteele09/decap-oauth-bridge/internal/config"
	"github.com/jrsteele09/decap-oauth-bridge/internal/logging"
	"github.com/jrsteele09/decap-oauth-bridge/server"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logging.Setup(c.GetEnv(), c.GetLogLevel())
	displayAppname(c.GetAppName())

	handler, err := newHandler(c)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listenAndServe(srv)
	}()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func newHandler(c config.Config) (http.Handler, error) {
	credentials := c.GetCredentials()
	if err := credentials.Validate(); err != nil {
		// Not fatal: the provider rejects requests made with missing credentials.
		log.Warn().Err(err).Msg("OAuth credentials incomplete")
	}
	log.Info().
		Str("client_id", credentials.ClientID).
		Stringer("client_secret", credentials.ClientSecret).
		Str("base_path", c.GetFunctionBasePath()).
		Msg("OAuth bridge configured")

	sources, err := content.LoadSources(c.GetContentSourcesFile())
	if err != nil {
		return nil, fmt.Errorf("content.LoadSources: %w", err)
	}

	b := bridge.New(credentials, bridge.WithBasePath(c.GetFunctionBasePath()))
	site := content.NewHandler(os.DirFS(c.GetSiteDir()), sources)
	return server.New(c, b, site), nil
}

func listenAndServe(srv *http.Server) error {
	log.Info().Str("addr", srv.Addr).Msg("Server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
