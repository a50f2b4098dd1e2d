// cmd/predictions/main.go
// Prints the prediction history kept in the configured store.
//
// Usage:
//
//	DEBUG=true go run ./cmd/predictions
//	DEBUG=true STORE_BACKEND=redis go run ./cmd/predictions -json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/padraicbc/playcall/config"
	"github.com/padraicbc/playcall/game"
	applog "github.com/padraicbc/playcall/logger"
	"github.com/padraicbc/playcall/store"
)

func main() {
	asJSON := flag.Bool("json", false, "print the history as JSON")
	flag.Parse()

	cfg := config.Load()
	logger, err := applog.New(applog.Options{Debug: cfg.Debug, Level: cfg.LogLevel, Name: "cli"})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	slot, closeSlot, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open store failed", zap.Error(err))
	}
	defer func() { _ = closeSlot() }()

	hist := game.NewHistory(store.New(slot, cfg.StoreKey, logger).Load(ctx))
	if *asJSON {
		err = printJSON(os.Stdout, hist)
	} else {
		err = printTable(os.Stdout, hist)
	}
	if err != nil {
		logger.Fatal("print history failed", zap.Error(err))
	}
}

func printJSON(w io.Writer, h game.History) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(h)
}

func printTable(w io.Writer, h game.History) error {
	if h.Empty() {
		_, err := fmt.Fprintln(w, "No predictions yet")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "QUARTER\tTIME\tPLAY\tRESULT\tPOINTS")
	for _, p := range h.Predictions {
		fmt.Fprintf(tw, "Q%d\t%s\t%s\t%s\t+%d\n", p.Quarter, p.Timestamp, p.PlayType, p.Result, p.Points)
	}
	fmt.Fprintf(tw, "\t\t\tTOTAL (%d)\t%d\n", h.Count, h.TotalPoints)
	return tw.Flush()
}
