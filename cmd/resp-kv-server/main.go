// Command resp-kv-server runs the RESP key/value server. It takes no
// flags: the listen and metrics addresses are fixed.
package main

import (
	"context"
	"expvar"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harfangapps/respkv-server/logger"
	"github.com/harfangapps/respkv-server/server"
	"github.com/harfangapps/respkv-server/store"
)

// Build variables, set via -ldflags.
var (
	// git rev-parse --short HEAD
	gitHash string

	// git describe --tags
	version string

	// go version
	goVersion string
)

// overridable by tests, following the teacher's defaultLocalAddr idiom.
var (
	listenAddr  net.Addr = &net.TCPAddr{IP: net.IPv4zero, Port: 6379}
	metricsAddr          = "0.0.0.0:9121"
)

func main() {
	log := logger.New(logger.Options{Stdout: true, Level: logger.LevelInfo})
	log.Infof("starting resp-kv-server git=%s version=%s go=%s", gitHash, version, goVersion)

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-ch
		log.Infof("received signal %v, shutting down", sig)
		cancel()
	}()

	stats := expvar.NewMap("respkv")

	go serveMetrics(log)

	srv := &server.Server{
		Addr:         listenAddr,
		WriteTimeout: 5 * time.Second,
		Store:        store.New(),
		Log:          log,
		Stats:        stats,
	}

	if err := srv.ListenAndServe(ctx); err != nil {
		select {
		case <-ctx.Done():
			log.Infof("server stopped: %v", err)
			os.Exit(0)
		default:
			log.Errorf("server error: %v", err)
			os.Exit(1)
		}
	}
}

func serveMetrics(log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", server.MetricsHandler())
	log.Infof("metrics listening on %s", metricsAddr)
	if err := http.ListenAndServe(metricsAddr, mux); err != nil {
		log.Errorf("metrics server error: %v", fmt.Errorf("listen and serve: %w", err))
	}
}
