// Command server runs the TCP front door over a single gavel order
// book.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gavel/internal/server"
	"gavel/internal/symbol"
)

func main() {
	address := flag.String("address", "0.0.0.0", "address to bind")
	port := flag.Int("port", 9001, "TCP port to listen on")
	sym := flag.String("symbol", "SYM", "ticker symbol this book serves")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := symbol.NewRegistry()
	srv := server.New(*address, *port, registry.Book(*sym))

	go func() {
		if err := srv.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
}
