package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/gait.report/internal/api"
	"github.com/banshee-data/gait.report/internal/config"
	"github.com/banshee-data/gait.report/internal/db"
	"github.com/banshee-data/gait.report/internal/eventplot"
	"github.com/banshee-data/gait.report/internal/gait"
	"github.com/banshee-data/gait.report/internal/monitoring"
	"github.com/banshee-data/gait.report/internal/synthetic"
	"github.com/banshee-data/gait.report/internal/version"
)

var (
	dbPath      = flag.String("db", "gait.db", "SQLite database file")
	configPath  = flag.String("config", "", "Gait tuning JSON file (defaults when empty)")
	recordingID = flag.String("recording", "", "Recording id to analyse")
	devMode     = flag.Bool("dev", false, "Seed a synthetic walking recording and analyse it")
	height      = flag.Float64("height", -1, "Subject height in metres, overriding the stored value (negative = not set)")
	plotDir     = flag.String("plot-dir", "", "Write per-bout event plots to this directory")
	listen      = flag.String("listen", "", "Serve the API and admin routes on this address after analysis")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

type options struct {
	dbPath      string
	configPath  string
	recordingID string
	dev         bool
	height      float64
	plotDir     string
	listen      string
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, options{
		dbPath:      *dbPath,
		configPath:  *configPath,
		recordingID: *recordingID,
		dev:         *devMode,
		height:      *height,
		plotDir:     *plotDir,
		listen:      *listen,
	})
	if err != nil {
		log.Fatal(err)
	}
}

// run opens the database, analyses the selected recording and optionally
// serves the API until ctx is cancelled.
func run(ctx context.Context, opts options) error {
	if !opts.dev && opts.recordingID == "" && opts.listen == "" {
		return errors.New("one of -recording, -dev or -listen is required")
	}

	store, err := db.NewDB(opts.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if opts.dev || opts.recordingID != "" {
		r, err := analyse(store, opts)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		log.Printf("saved run %s: %d bout(s), %d stride(s)", r.RunID, r.BoutCount, r.StrideCount)
	}

	if opts.listen != "" {
		if err := serve(ctx, store, opts.listen); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}
	return nil
}

func loadConfig(path string) (gait.Config, error) {
	if path == "" {
		return gait.DefaultConfig(), nil
	}
	tuning, err := config.LoadGaitTuning(path)
	if err != nil {
		return gait.Config{}, err
	}
	return tuning.ToGaitConfig(), nil
}

// seedDevRecording stores a synthetic walk and returns its id.
func seedDevRecording(store *db.DB) (string, error) {
	data, labels := synthetic.Walk(synthetic.DefaultWalk())
	h := 1.75
	rec := &db.StoredRecording{
		Recording: db.Recording{Subject: "synthetic", Height: &h},
		Data:      data,
		Labels:    labels,
	}
	if err := store.InsertRecording(rec); err != nil {
		return "", fmt.Errorf("seed synthetic recording: %w", err)
	}
	monitoring.Logf("seeded synthetic recording %s", rec.RecordingID)
	return rec.RecordingID, nil
}

// analyse runs the gait pipeline over one stored recording and saves the
// result table as a new run.
func analyse(store *db.DB, opts options) (*db.Run, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	id := opts.recordingID
	if opts.dev {
		if id, err = seedDevRecording(store); err != nil {
			return nil, err
		}
	}

	rec, err := store.LoadRecording(id)
	if err != nil {
		return nil, err
	}
	if opts.height >= 0 {
		h := opts.height
		rec.Data.Height = &h
	}
	if rec.HeightIsLegLength {
		cfg.LegLength = true
	}

	g := gait.New(cfg, gait.LabelClassifier(rec.Labels))

	var plotter *eventplot.Plotter
	if opts.plotDir != "" {
		if plotter, err = eventplot.New(opts.plotDir); err != nil {
			return nil, err
		}
		g.SetObserver(plotter)
	}

	res, err := g.Predict(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("recording %s: %w", id, err)
	}
	if plotter != nil {
		if err := plotter.Err(); err != nil {
			monitoring.Warnf("some bout plots failed: %v", err)
		}
		monitoring.Logf("wrote %d plot(s) to %s", len(plotter.Files()), opts.plotDir)
	}

	return store.SaveRun(id, cfg, res)
}

func serve(ctx context.Context, store *db.DB, addr string) error {
	mux := api.NewServer(store).ServeMux()
	if err := store.AttachAdminRoutes(mux); err != nil {
		return err
	}

	server := &http.Server{
		Addr:    addr,
		Handler: api.LoggingMiddleware(mux),
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		return server.Close()
	}
	return nil
}
