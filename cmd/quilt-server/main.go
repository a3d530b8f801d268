// Command quilt-server hosts the browser-based quilt designer: a JSON API
// over named design sessions plus the embedded static frontend.
package main

import (
	"net/http"
	"os"

	"github.com/quiltlab/quilt"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("LOG_PRETTY") == "1" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Up to 64 concurrent designer sessions; the least recently used is
	// evicted beyond that.
	store := quilt.NewSessionStore(64)
	srv := NewServer(store, logger)

	logger.Info().Str("addr", ":"+port).Msg("quilt designer listening")
	if err := http.ListenAndServe(":"+port, srv); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
