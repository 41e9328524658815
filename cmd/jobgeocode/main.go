package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fr4nk3nst1ner/jobmap/internal/client"
	"github.com/fr4nk3nst1ner/jobmap/internal/geocode"
	"github.com/fr4nk3nst1ner/jobmap/internal/ui"
)

func main() {
	in := flag.String("in", "", "CSV file of job listings to read")
	out := flag.String("out", "", "Where to write the CSV with coordinates filled in")
	region := flag.String("region", "id", "Region bias for lookups (ccTLD)")
	rate := flag.Int("rate", 10, "Maximum geocoding requests per second")
	delimiter := flag.String("delimiter", ",", "Field delimiter of the CSV file")
	proxyURL := flag.String("proxy", "", "Proxy URL to use")
	progress := flag.Bool("progress", false, "Show a progress bar while reading the input")
	silence := flag.Bool("silence", false, "Silence the banner")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	ui.PrintBanner(*silence)

	if *in == "" || *out == "" {
		log.Fatal().Msg("both -in and -out are required")
	}
	if len([]rune(*delimiter)) != 1 {
		log.Fatal().Str("delimiter", *delimiter).Msg("delimiter must be a single character")
	}

	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("no .env file found")
	}
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		log.Fatal().Msg("GOOGLE_API_KEY is not set")
	}

	httpClient, err := client.CreateHTTPClient(*proxyURL)
	if err != nil {
		log.Fatal().Err(err).Msg("create http client")
	}
	geocoder, err := geocode.NewGoogleGeocoder(apiKey, *region, *rate, httpClient)
	if err != nil {
		log.Fatal().Err(err).Msg("create geocoder")
	}

	src, err := os.Open(*in)
	if err != nil {
		log.Fatal().Err(err).Msg("open input")
	}
	defer src.Close()

	var size int64
	if info, err := src.Stat(); err == nil {
		size = info.Size()
	}

	dst, err := os.Create(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("create output")
	}
	defer dst.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, done := ui.ProgressReader(src, size, *progress)
	res, err := geocode.FillCoordinates(ctx, geocoder, r, dst, []rune(*delimiter)[0])
	done()
	if err != nil {
		log.Fatal().Err(err).Msg("fill coordinates")
	}

	log.Info().
		Int("rows", res.Rows).
		Int("filled", res.Filled).
		Int("failed", res.Failed).
		Int("lookups", res.Lookups).
		Str("out", *out).
		Msg("geocoding finished")
}
