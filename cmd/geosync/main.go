// Package main implements the geosync binary: a schema-guarded nightly
// sync of map-service layers into an enterprise geodatabase.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/geosync/geosync/internal/archive"
	"github.com/geosync/geosync/internal/config"
	geoerrors "github.com/geosync/geosync/internal/errors"
	"github.com/geosync/geosync/internal/geostore"
	"github.com/geosync/geosync/internal/mapservice"
	"github.com/geosync/geosync/internal/schema"
	"github.com/geosync/geosync/internal/sync"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	var (
		configFile  string
		workspace   string
		filter      string
		showVersion bool
	)

	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.StringVar(&workspace, "workspace", "", "Path to the geodatabase file (working root)")
	flag.StringVar(&filter, "filter", "", "Attribute filter applied to every row export")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "geosync - schema-guarded map-service to geodatabase sync\n\n")
		fmt.Fprintf(os.Stderr, "Usage: geosync [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  geosync --config /etc/geosync/config.yaml\n")
		fmt.Fprintf(os.Stderr, "  geosync --config sync.yaml --workspace /data/prod.db\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  GEOSYNC_WORKSPACE       Path to the geodatabase file\n")
		fmt.Fprintf(os.Stderr, "  GEOSYNC_FILTER          Attribute filter for row exports\n")
		fmt.Fprintf(os.Stderr, "  GEOSYNC_HTTP_TIMEOUT    Map-service request timeout\n")
		fmt.Fprintf(os.Stderr, "  GEOSYNC_ARCHIVE_*       Run-report archive settings\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("geosync %s (%s)\n", version, commit)
		return
	}

	// Optional .env next to the binary; absence is not an error.
	_ = godotenv.Load()

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadFromFile(configFile)
		if err != nil {
			log.Fatalf("geosync: %v", err)
		}
		cfg = loaded
	}
	config.LoadFromEnv(cfg)
	if workspace != "" {
		cfg.Workspace = workspace
	}
	if filter != "" {
		cfg.Filter = filter
	}
	cfg.Resolve()

	// Configuration errors abort the run before any pair is processed.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("geosync: %v", err)
	}

	ctx := context.Background()

	store, err := geostore.Open(cfg.Workspace)
	if err != nil {
		log.Fatalf("geosync: %v", geoerrors.NewWorkspaceError(
			fmt.Sprintf("workspace %s", cfg.Workspace), err))
	}
	defer store.Close()
	log.Printf("geosync: workspace: %s", cfg.Workspace)

	client := mapservice.NewClient(cfg.HTTP.Timeout).WithPageSize(cfg.HTTP.PageSize)

	orch := sync.NewOrchestrator(store,
		schema.NewAllowList(cfg.AllowedExtraInTarget),
		sync.WithFilter(cfg.Filter),
	)
	runner := sync.NewRunner(orch, func(locator string) sync.LayerSource {
		return client.Layer(locator)
	})

	pairs := make([]sync.Pair, 0, len(cfg.Pairs))
	for _, p := range cfg.Pairs {
		pairs = append(pairs, sync.Pair{Source: p.Source, Target: p.Target})
	}

	startedAt := time.Now()
	results := runner.Run(ctx, pairs)
	log.Printf("geosync: %s", runner.Stats().Snapshot().Summary())

	if cfg.Archive.Enabled {
		archiveReport(ctx, cfg, startedAt, results)
	}

	// Per-pair skips and failures are reported above but do not affect
	// the exit status; only configuration and workspace errors do.
}

// archiveReport writes the run report to the configured backend. Archival
// failures are logged but never change the run outcome.
func archiveReport(ctx context.Context, cfg *config.Config, startedAt time.Time, results []sync.PairResult) {
	var store archive.ObjectStore
	var err error
	switch cfg.Archive.Type {
	case "s3":
		store, err = archive.NewS3Store(ctx, cfg.Archive.S3.Bucket, archive.S3Config{
			Region:       cfg.Archive.S3.Region,
			Endpoint:     cfg.Archive.S3.Endpoint,
			UsePathStyle: cfg.Archive.S3.UsePathStyle,
		})
	default:
		store, err = archive.NewLocalStore(cfg.Archive.Path)
	}
	if err != nil {
		log.Printf("geosync: report archival unavailable: %v", err)
		return
	}

	report := archive.NewRunReport(uuid.NewString(), startedAt, results)
	writer := archive.NewWriter(store, cfg.Archive.Prefix)
	path, err := writer.Write(ctx, report)
	if err != nil {
		log.Printf("geosync: failed to archive run report: %v", err)
		return
	}
	log.Printf("geosync: run report archived at %s", path)
}
