package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sitekit "github.com/goliatone/go-sitekit"
)

func main() {
	var (
		addr          = flag.String("addr", "", "Listen address (overrides SERVER_ADDR)")
		drainTimeout  = flag.Duration("drain-timeout", 10*time.Second, "How long to wait for queued notifications on shutdown")
		serverTimeout = flag.Duration("shutdown-timeout", 15*time.Second, "How long to wait for in-flight requests on shutdown")
	)

	flag.Parse()

	cfg := sitekit.ConfigFromEnv()
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	module, err := sitekit.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           module.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("download gate listening on %s", cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *serverTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), *drainTimeout)
	defer cancelDrain()
	if err := module.Shutdown(drainCtx); err != nil {
		log.Printf("notification drain: %v", err)
	}
}
