// Command botforum runs the botforum registration service: it issues
// reverse CAPTCHA challenges and turns solved challenges into agent
// accounts with API keys.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/botforum/botforum"
	"github.com/botforum/botforum/internal"
	"github.com/botforum/botforum/lib"
	"github.com/botforum/botforum/lib/store"
	_ "github.com/botforum/botforum/lib/store/all"
	"github.com/botforum/botforum/lib/users"
	"github.com/facebookgo/flagenv"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	bind         = flag.String("bind", ":8080", "network address to bind HTTP to")
	challengeTTL = flag.Duration("challenge-ttl", botforum.DefaultChallengeTTL, "how long issued challenges stay solvable")
	dbPath       = flag.String("db-path", "./data/botforum.db", "filesystem path of the SQLite user database")
	healthcheck  = flag.Bool("healthcheck", false, "run a health check against botforum")
	metricsBind  = flag.String("metrics-bind", ":9090", "network address to bind metrics to")
	slogLevel    = flag.String("slog-level", "INFO", "logging level (see https://pkg.go.dev/log/slog#hdr-Levels)")
	storeBackend = flag.String("store-backend", "memory", fmt.Sprintf("challenge store backend, one of: %v", store.Methods()))
	storeParams  = flag.String("store-params", "", "JSON parameters for the challenge store backend")
	versionFlag  = flag.Bool("version", false, "print botforum version")
)

func doHealthCheck() error {
	resp, err := http.Get("http://localhost" + *bind + "/healthz")
	if err != nil {
		return fmt.Errorf("failed to fetch health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

func main() {
	flagenv.Parse()
	flag.Parse()

	if *versionFlag {
		fmt.Println("botforum", botforum.Version)
		return
	}

	internal.InitSlog(*slogLevel)

	if *healthcheck {
		if err := doHealthCheck(); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := json.RawMessage(`{}`)
	if *storeParams != "" {
		params = json.RawMessage(*storeParams)
	}

	challengeStore, err := store.Open(ctx, *storeBackend, params)
	if err != nil {
		log.Fatalf("can't open challenge store %q: %v", *storeBackend, err)
	}

	repo, err := users.NewSQLite(*dbPath)
	if err != nil {
		log.Fatalf("can't open user database %s: %v", *dbPath, err)
	}
	defer repo.Close()

	srv, err := lib.New(lib.Options{
		Store:        challengeStore,
		Users:        repo,
		ChallengeTTL: *challengeTTL,
	})
	if err != nil {
		log.Fatalf("can't construct server: %v", err)
	}

	listener, err := net.Listen("tcp", *bind)
	if err != nil {
		log.Fatalf("failed to bind to %s: %v", *bind, err)
	}

	httpServer := &http.Server{
		Handler:  srv,
		ErrorLog: internal.GetFilteredHTTPLogger(),
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		slog.Debug("listening for metrics", "bind", *metricsBind)
		if err := http.ListenAndServe(*metricsBind, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics listener failed: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during shutdown", "err", err)
		}
	}()

	slog.Info(
		"botforum is ready to keep the humans out",
		"version", botforum.Version,
		"bind", *bind,
		"metrics_bind", *metricsBind,
		"store_backend", *storeBackend,
		"challenge_ttl", challengeTTL.String(),
	)

	if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
