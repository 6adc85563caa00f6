// Command mock-oracle runs a local chat-completions stub that answers
// every recognition request with a synthetic leaderboard reply. Point
// the service at it with TRIBUTE_ORACLE_BASE_URL=http://localhost:9091
// and any non-empty TRIBUTE_API_KEY.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/tribute/internal/mockoracle"
	"github.com/okian/tribute/pkg/logger"
)

const (
	defaultAddr       = ":9091"
	defaultMembers    = 10
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	var (
		addr    = flag.String("addr", defaultAddr, "Listen address")
		members = flag.Int("members", defaultMembers, "Members per synthetic reply")
		format  = flag.String("format", mockoracle.FormatRandom, "Reply format: json, fenced, text, or random")
		seed    = flag.Int64("seed", 0, "Deterministic seed for generated members")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen := mockoracle.NewGenerator(
		mockoracle.WithMembers(*members),
		mockoracle.WithFormat(*format),
		mockoracle.WithSeed(*seed),
	)

	mux := http.NewServeMux()
	mockoracle.NewHandler(gen).Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "mock oracle listening",
			logger.String("addr", *addr),
			logger.Int("members", *members),
			logger.String("format", *format),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("mock oracle failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "mock oracle shutdown failed", logger.Error(err))
	}
}
