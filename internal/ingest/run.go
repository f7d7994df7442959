package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"alpenworks.io/resort-services/internal/common"
	database "alpenworks.io/resort-services/internal/db"
	"alpenworks.io/resort-services/internal/log"
	"alpenworks.io/resort-services/internal/store"
)

func Run(cfg Config, stdOut io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.InitProductionLogger()

	benchmarker := common.NewBenchmarker("extract " + cfg.Area)
	defer benchmarker.Close()

	lifts, bounds, err := NewExtractor().ExtractLifts(ctx, cfg.Area)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(stdOut, "Extracted %d lifts for %q (bbox lon %f..%f lat %f..%f)\n",
		len(lifts), cfg.Area, bounds.MinLon, bounds.MaxLon, bounds.MinLat, bounds.MaxLat)

	switch {
	case cfg.DryRun:
		for _, l := range lifts {
			fmt.Fprintf(stdOut, "  %-16s %-28s %-12s %s (%d points)\n",
				l.ID, l.Name, l.Type, l.Difficulty, len(l.Path))
		}

	case cfg.SeedOutPath != "":
		if err := store.WriteSeedFile(cfg.SeedOutPath, lifts); err != nil {
			panic(err)
		}
		fmt.Fprintf(stdOut, "Wrote seed file %s\n", cfg.SeedOutPath)

	default:
		db, err := database.NewDatabaseConnection(ctx, cfg.DatabaseConnection)
		if err != nil {
			panic(err)
		}
		defer db.Close()

		if err := EnsureSchema(ctx, db); err != nil {
			panic(err)
		}
		if err := InsertLifts(ctx, db, lifts); err != nil {
			panic(err)
		}
		fmt.Fprintf(stdOut, "Upserted %d lifts\n", len(lifts))
	}

	return 0
}
