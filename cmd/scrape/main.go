// Command scrape drives the C10 dispatcher directly from the CLI: a
// one-shot run over the given venues/sources, printing a running tally
// as progress events arrive. Renamed and rebuilt from the teacher's
// discovery-import (JSON-file -> DiscoveryService.ImportFromJSON) to
// drive the scrape pipeline itself rather than replay a prior run's
// output file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"culturefeed-backend/db"
	"culturefeed-backend/internal/config"
	"culturefeed-backend/internal/dispatch"
	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/extract/aggregator"
	"culturefeed-backend/internal/extract/site"
	"culturefeed-backend/internal/ingest"
)

func main() {
	cityID := flag.Uint("city", 0, "City ID to scrape")
	venueIDs := flag.String("venues", "", "Comma-separated venue IDs")
	sourceIDs := flag.String("sources", "", "Comma-separated source IDs")
	timeRange := flag.String("time-range", "all", "today|tomorrow|this_week|next_week|this_month|next_month|all")
	envFile := flag.String("env", "", "Path to .env file (optional, defaults to .env.development)")
	flag.Parse()

	if *cityID == 0 || (*venueIDs == "" && *sourceIDs == "") {
		fmt.Println("Usage: scrape -city <id> [-venues 1,2,3] [-sources 4,5] [-time-range this_week]")
		os.Exit(1)
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("Failed to load env file %s: %v", *envFile, err)
		}
	} else if err := godotenv.Load(".env.development"); err != nil {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	engine := ingest.NewEngine(db.GetDB(), ingest.DefaultBatchSize)
	scraper := site.New()
	aggregatorClient := aggregator.NewClient(os.Getenv("AGGREGATOR_BASE_URL"))
	dispatcher := dispatch.NewDispatcher(db.GetDB(), scraper, aggregatorClient, engine)

	req := dispatch.Request{
		CityID:                 *cityID,
		TimeRange:              extract.TimeRange(*timeRange),
		VenueIDs:               parseUintList(*venueIDs),
		SourceIDs:              parseUintList(*sourceIDs),
		MaxExhibitionsPerVenue: cfg.Ingest.MaxExhibitionsPerVenue,
		MaxEventsPerVenue:      cfg.Ingest.MaxEventsPerVenue,
	}
	if !req.Valid() {
		log.Fatal(dispatch.InvalidRequestMessage(req))
	}

	var eventsAdded, errorCount int
	for ev := range dispatcher.Dispatch(context.Background(), req) {
		switch ev.Type {
		case dispatch.ProgressTypeProgress:
			log.Printf("[%3d%%] %s", ev.Percentage, ev.Message)
		case dispatch.ProgressTypeEvent:
			eventsAdded++
			if ev.Event != nil {
				log.Printf("  + %s", ev.Event.Title)
			}
		case dispatch.ProgressTypeError:
			errorCount++
			log.Printf("  ERROR: %s", ev.Message)
		case dispatch.ProgressTypeComplete:
			log.Printf("done: %s", ev.Message)
		}
	}

	fmt.Printf("\nevents added: %d, errors: %d\n", eventsAdded, errorCount)
	if errorCount > 0 {
		os.Exit(1)
	}
}

func parseUintList(raw string) []uint {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, uint(n))
	}
	return out
}
