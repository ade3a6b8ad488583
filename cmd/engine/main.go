package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"jobradar-engine/internal/config"
	"jobradar-engine/internal/dedup"
	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/fetch"
	"jobradar-engine/internal/match"
	"jobradar-engine/internal/report"
	"jobradar-engine/internal/scheduler"
	"jobradar-engine/internal/source"
	"jobradar-engine/internal/source/indeed"
	"jobradar-engine/internal/source/linkedin"
	"jobradar-engine/internal/store"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "path to config.yml (defaults used when empty)")
		role     = flag.String("role", "", "override search.role")
		location = flag.String("location", "", "override search.location")
		maxJobs  = flag.Int("max", 0, "override search.max_jobs")
		minScore = flag.Float64("min-score", -1, "override scoring.min_match_score")
		output   = flag.String("out", "", "override output path for the JSON artifact")
		every    = flag.Duration("every", 0, "rerun on this interval (0 runs once)")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *role != "" {
		cfg.Search.Role = *role
	}
	if *location != "" {
		cfg.Search.Location = *location
	}
	if *maxJobs > 0 {
		cfg.Search.MaxJobs = *maxJobs
	}
	if *minScore >= 0 {
		cfg.Scoring.MinMatchScore = *minScore
	}
	if *output != "" {
		cfg.App.Output = *output
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			log.Printf("[config] error: %s", e)
		}
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second invocation should bail out rather
	// than race the store and the boards.
	lock := flock.New(filepath.Join(cfg.App.DataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock: %v", err)
	}
	if !locked {
		log.Fatalf("another run is already using %s", cfg.App.DataDir)
	}
	defer lock.Unlock()

	db, err := store.Open(filepath.Join(cfg.App.DataDir, "jobradar.db"))
	if err != nil {
		log.Fatalf("store open: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *every > 0 {
		scheduler.Every(ctx, *every, "run", func(ctx context.Context) error {
			return runOnce(ctx, cfg, db)
		})
		return
	}
	if err := runOnce(ctx, cfg, db); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

func runOnce(ctx context.Context, cfg config.Config, db *store.DB) error {
	registry := dedup.NewRegistry()
	seen, err := db.SeenIDs(ctx)
	if err != nil {
		return err
	}
	registry.Seed(seen)
	log.Printf("[dedup] seeded %d previously stored postings", len(seen))

	limiter := source.NewHostLimiter(cfg.Fetch.HostRPS, 2)
	var sources []source.Source
	if cfg.Sources.Indeed.Enabled {
		sources = append(sources, indeed.New(limiter))
	}
	if cfg.Sources.LinkedIn.Enabled {
		sources = append(sources, linkedin.New(limiter))
	}

	index := match.NewSkillIndex(cfg.Scoring.Vocabulary)
	log.Printf("[match] indexed %d vocabulary terms", index.Size())

	orch, err := fetch.New(
		index,
		source.NewRouter(sources...),
		cfg.Fetch.Concurrency,
		time.Duration(cfg.Fetch.TimeoutMs)*time.Millisecond,
		pacerFor(cfg),
	)
	if err != nil {
		return err
	}

	query := source.Query{Role: cfg.Search.Role, Location: cfg.Search.Location, MaxJobs: cfg.Search.MaxJobs}

	var stubs []domain.JobStub
	for _, s := range sources {
		listed, err := s.ListStubs(ctx, query)
		if err != nil {
			// listing failure is fatal to the run, unlike per-item fetches
			return fmt.Errorf("listing %s: %w", s.Name(), err)
		}
		fresh := 0
		for _, stub := range listed {
			if registry.RegisterIfNew(stub.DedupKey()) {
				stubs = append(stubs, stub)
				fresh++
			}
		}
		log.Printf("[%s] listed %d stubs, %d new", s.Name(), len(listed), fresh)
	}

	records, runErr := orch.Run(ctx, stubs)
	log.Printf("[run] attempted %d, succeeded %d", len(stubs), len(records))

	added := 0
	for _, rec := range records {
		ok, err := db.InsertRecordIfNew(ctx, rec)
		if err != nil {
			log.Printf("[store] insert %s: %v", rec.DedupKey(), err)
			continue
		}
		if ok {
			added++
		}
	}
	log.Printf("[store] stored %d new records", added)

	out := cfg.App.Output
	if out == "" {
		out = filepath.Join(cfg.App.DataDir, report.DefaultFilename(time.Now()))
	}
	if err := report.WriteJSON(out, records); err != nil {
		return err
	}
	log.Printf("[report] wrote %s", out)

	report.Summary(os.Stdout, records, cfg.Scoring.MinMatchScore, 10)
	return runErr
}

func pacerFor(cfg config.Config) fetch.Pacer {
	interval := time.Duration(cfg.Fetch.PacingMs) * time.Millisecond
	switch cfg.Fetch.Pacing {
	case "bucket":
		return fetch.NewTokenBucketPacer(interval, 1)
	default:
		return fetch.FixedDelayPacer{Delay: interval}
	}
}
