package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/lox/crimereport/internal/analysis"
	"github.com/lox/crimereport/internal/ingest"
	"github.com/lox/crimereport/internal/models"
	"github.com/lox/crimereport/internal/narrative"
	"github.com/lox/crimereport/internal/report"
	"github.com/lox/crimereport/internal/store"
)

type columnFlags struct {
	TimestampColumn string `default:"Date" help:"Name of the timestamp column."`
	PrimaryColumn   string `default:"Primary Type" help:"Name of the primary category column."`
	LocationColumn  string `default:"Location Description" help:"Name of the location description column."`
	ArrestColumn    string `default:"Arrest" help:"Name of the boolean arrest column."`
}

func (c columnFlags) options() ingest.Options {
	return ingest.Options{
		TimestampColumn: c.TimestampColumn,
		PrimaryColumn:   c.PrimaryColumn,
		LocationColumn:  c.LocationColumn,
		ArrestColumn:    c.ArrestColumn,
	}
}

type fetchCmd struct {
	columnFlags
	URL string `arg:"" help:"Dataset URL (http, https or ftp) or local CSV path."`
}

type reportCmd struct {
	columnFlags
	Out       string `default:"report" help:"Output directory for figures and the manifest."`
	Input     string `help:"Analyze a local CSV directly instead of the cache." type:"existingfile"`
	TopN      int    `default:"10" help:"Ranking length for category views."`
	SampleCap int    `default:"20000" help:"Maximum spatial sample size."`
	Seed      int64  `default:"1" help:"Seed for the reproducible spatial sample."`
	GridSize  int    `default:"80" help:"Density grid resolution."`
	Narrative bool   `help:"Generate an OpenAI narrative summary (requires OPENAI_API_KEY)."`
}

type cli struct {
	DB          string `default:"data/crimereport.db" help:"Path to the SQLite incident cache."`
	MetricsAddr string `env:"METRICS_ADDR" help:"Serve Prometheus metrics on this address while running."`

	Fetch  fetchCmd  `cmd:"" help:"Download an incident dataset and cache it locally."`
	Report reportCmd `cmd:"" help:"Compute the derived views and render the report."`
}

type runCtx struct {
	store *store.Store
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("crimereport"),
		kong.Description("Derived-view aggregation and chart report generator for incident datasets."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	if c.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(c.MetricsAddr, mux); err != nil {
				log.Printf("metrics listener: %v", err)
			}
		}()
	}

	if dir := filepath.Dir(c.DB); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("create data dir: %v", err)
		}
	}

	db, err := sql.Open("sqlite", c.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx.FatalIfErrorf(ctx.Run(&runCtx{store: st}))
}

func (c *fetchCmd) Run(rc *runCtx) error {
	path := c.URL
	if u, err := url.Parse(c.URL); err == nil && u.Scheme != "" && u.Scheme != "file" {
		tmp, err := os.CreateTemp("", "crimereport-*.csv")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		log.Printf("downloading %s", c.URL)
		if err := ingest.Download(c.URL, tmp.Name()); err != nil {
			return fmt.Errorf("download: %w", err)
		}
		path = tmp.Name()
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := ingest.ReadCSV(f, c.options())
	if err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}

	if err := rc.store.ReplaceIncidents(ds.Records, ds.Geo != nil); err != nil {
		return fmt.Errorf("cache dataset: %w", err)
	}

	log.Printf("cached %d incidents (geo columns: %v)", len(ds.Records), ds.Geo != nil)
	return nil
}

func (c *reportCmd) Run(rc *runCtx) error {
	records, hasGeo, err := c.loadRecords(rc)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		log.Println("no incidents to analyze; run fetch first or pass --input")
	}

	table := analysis.Normalize(records, hasGeo)
	res := analysis.Run(table, analysis.Config{
		TopN:       c.TopN,
		SampleCap:  c.SampleCap,
		SampleSeed: c.Seed,
		GridSize:   c.GridSize,
	})

	log.Printf("analyzed %d rows (%d with timestamp, %d geocoded)", res.TotalRows, res.WithTimestamp, res.Geocoded)

	figs, err := report.Build(res, c.Out)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	var summary string
	if c.Narrative {
		gen, err := narrative.NewGenerator()
		if err != nil {
			return fmt.Errorf("narrative: %w", err)
		}
		summary, err = gen.Summarize(context.Background(), res)
		if err != nil {
			return fmt.Errorf("narrative: %w", err)
		}
	}

	if err := report.WriteManifest(c.Out, res, figs, summary); err != nil {
		return err
	}

	log.Printf("wrote %d figures and report.md to %s", len(figs), c.Out)
	return nil
}

func (c *reportCmd) loadRecords(rc *runCtx) ([]models.IncidentRecord, bool, error) {
	if c.Input != "" {
		f, err := os.Open(c.Input)
		if err != nil {
			return nil, false, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()

		ds, err := ingest.ReadCSV(f, c.options())
		if err != nil {
			return nil, false, fmt.Errorf("parse input: %w", err)
		}
		return ds.Records, ds.Geo != nil, nil
	}

	records, err := rc.store.LoadIncidents()
	if err != nil {
		return nil, false, fmt.Errorf("load cached incidents: %w", err)
	}
	hasGeo, err := rc.store.HasGeo()
	if err != nil {
		return nil, false, fmt.Errorf("load dataset meta: %w", err)
	}
	return records, hasGeo, nil
}
