package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/yumyai/recombar/internal/util"
	"github.com/yumyai/recombar/logger"
	"github.com/yumyai/recombar/pkg/barcode"
	"github.com/yumyai/recombar/pkg/config"
	mydb "github.com/yumyai/recombar/pkg/db"
	"github.com/yumyai/recombar/pkg/pipeline"
	"github.com/yumyai/recombar/pkg/query"
	"github.com/yumyai/recombar/pkg/recombination"
	"github.com/yumyai/recombar/pkg/render"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

type options struct {
	BarcodeCSV string
	DatasetDB  string
	Profiles   string
	Reference  string
	ConfigFile string
	Output     string
	Format     string
	Threads    int
}

func parseFlags() options {
	var opt options

	flag.StringVar(&opt.BarcodeCSV, "barcodes", "", "barcode table CSV (lineage,mutations), plain or .xz")
	flag.StringVar(&opt.DatasetDB, "dataset", "", "sqlite dataset with a barcodes(lineage, mutation) table")
	flag.StringVar(&opt.Profiles, "profiles", "", "sample profiles TSV (sample, reference, mutations), plain or .xz")
	flag.StringVar(&opt.Reference, "reference", "", "reference coordinate system name (default $RECOMBAR_REFERENCE)")
	flag.StringVar(&opt.ConfigFile, "config", "", "YAML run configuration (optional)")
	flag.StringVar(&opt.Output, "output", "-", "output path, - for stdout")
	flag.StringVar(&opt.Format, "format", "tsv", "output format: tsv or json")
	flag.IntVar(&opt.Threads, "threads", 0, "worker count, 0 = all CPUs")
	flag.Parse()

	return opt
}

func main() {

	// Establish logger
	VERSION := "0.1.0"
	logLevel := logger.ParseLevel(os.Getenv("RECOMBAR_LOG_LEVEL"))

	if err := logger.InitLogger(logLevel); err != nil {
		panic(err)
	}

	// Try load env
	dotenvErr := godotenv.Load()

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	opt := parseFlags()

	if opt.Reference == "" {
		opt.Reference = os.Getenv("RECOMBAR_REFERENCE")
	}
	if opt.Reference == "" {
		logger.Warn("No reference name given (-reference / RECOMBAR_REFERENCE), coordinate system checks are disabled")
	}

	runID := uuid.New()
	logger.Info("Start:", zap.String("Version", VERSION), zap.String("RunID", runID.String()))

	cfg := config.Default()
	if opt.ConfigFile != "" {
		var err error
		cfg, err = config.Load(opt.ConfigFile)
		if err != nil {
			logger.Fatal("Failed to load config", zap.Error(err))
		}
	}
	if opt.Threads > 0 {
		cfg.Threads = opt.Threads
	}

	if err := checkPaths(opt); err != nil {
		logger.Fatal("Bad input path", zap.Error(err))
	}

	bdb, err := loadBarcodes(opt)
	if err != nil {
		logger.Fatal("Failed to build barcode database", zap.Error(err))
	}
	logger.Info("Barcode database ready", zap.Int("lineages", bdb.Len()), zap.String("reference", bdb.Reference))

	if opt.Profiles == "" {
		logger.Fatal("No profile input (-profiles)")
	}
	profiles, err := query.LoadFile(opt.Profiles)
	if err != nil {
		logger.Fatal("Failed to load profiles", zap.Error(err))
	}
	logger.Info("Profiles loaded", zap.Int("samples", len(profiles)))

	caller := recombination.NewCaller(bdb, cfg)
	calls, err := pipeline.RunBatch(context.Background(), pipeline.Config{Threads: cfg.Threads}, caller, profiles)
	if err != nil {
		logger.Fatal("Detection failed", zap.Error(err))
	}

	counts := map[recombination.Status]int{}
	for _, call := range calls {
		counts[call.Status]++
	}
	logger.Info("Detection finished",
		zap.Int("non_recombinant", counts[recombination.StatusNonRecombinant]),
		zap.Int("recombinant", counts[recombination.StatusRecombinant]),
		zap.Int("unresolved", counts[recombination.StatusUnresolved]))

	if err := writeOutput(opt, calls); err != nil {
		logger.Fatal("Failed to write output", zap.Error(err))
	}
}

// checkPaths validates input and output locations before any loading, so a
// typo fails fast with a path error instead of mid-pipeline.
func checkPaths(opt options) error {
	for _, in := range []string{opt.BarcodeCSV, opt.DatasetDB, opt.Profiles} {
		if in != "" && !util.FileExists(in) {
			return fmt.Errorf("input file does not exist: %s", in)
		}
	}
	if opt.Output != "-" {
		if dir := filepath.Dir(opt.Output); !util.DirExists(dir) {
			return fmt.Errorf("output directory does not exist: %s", dir)
		}
	}
	return nil
}

func loadBarcodes(opt options) (*barcode.Database, error) {
	switch {
	case opt.DatasetDB != "":
		sqldb, err := mydb.Open(opt.DatasetDB)
		if err != nil {
			return nil, err
		}
		defer sqldb.Close()
		logger.Info("Loading barcodes from sqlite", zap.String("dataset", opt.DatasetDB))
		return mydb.LoadBarcodes(sqldb, opt.Reference)
	case opt.BarcodeCSV != "":
		logger.Info("Loading barcodes from csv", zap.String("barcodes", opt.BarcodeCSV))
		return barcode.LoadCSVFile(opt.BarcodeCSV, opt.Reference)
	default:
		return nil, fmt.Errorf("no barcode source: use -barcodes or -dataset")
	}
}

func writeOutput(opt options, calls []recombination.Call) error {
	out := os.Stdout
	if opt.Output != "-" {
		f, err := os.Create(opt.Output)
		if err != nil {
			return fmt.Errorf("failed to create output %s: %w", opt.Output, err)
		}
		defer f.Close()
		out = f
	}

	switch opt.Format {
	case "json":
		return render.WriteJSON(out, calls)
	case "tsv", "":
		return render.WriteTSV(out, calls)
	default:
		return fmt.Errorf("unknown output format %q", opt.Format)
	}
}
