// Command replay reads a JSON file of requests, runs each one through
// a single in-process order book in order, and prints the resulting
// (request, MatchingResult) pairs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gavel/internal/feed"
	"gavel/internal/orderbook"
)

func main() {
	path := flag.String("file", "", "path to a JSON file containing a request array")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *path == "" {
		log.Fatal().Msg("missing required -file flag")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("failed to open feed file")
	}
	defer f.Close()

	requests, err := feed.DecodeRequests(f)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to decode feed")
	}

	book := orderbook.New()
	for i, req := range requests {
		result := book.MatchRequest(req)
		fmt.Println(feed.RenderPair(req, result))
		log.Debug().Int("index", i).Int("trades", len(result.MarketActions)).Msg("request processed")
	}
}
