package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Storage configuration
	DataDir string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory for the published events and meta JSON files"`
	DBPath  string `long:"db-path" env:"DB_PATH" default:"./data/archive.db" description:"Path to the SQLite archive database"`

	// Application configuration
	FeedsFile     string `long:"feeds" env:"FEEDS_FILE" description:"YAML file with feed sources (built-in defaults when omitted)"`
	Port          string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount   int    `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of background workers for task processing"`
	FetchInterval int    `long:"fetch-interval" env:"FETCH_INTERVAL" default:"900" description:"Seconds between ingest runs"`
	FetchTimeout  int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15" description:"Per-request feed fetch timeout in seconds"`
	APIAccessKey  string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	Once          bool   `long:"once" env:"ONCE" description:"Run a single ingest cycle and exit"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"DebtOfWar/2.0 (conflict-cost-tracker; educational)" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DataDir:       raw.DataDir,
		DBPath:        raw.DBPath,
		FeedsFile:     raw.FeedsFile,
		Port:          raw.Port,
		WorkerCount:   raw.WorkerCount,
		FetchInterval: raw.FetchInterval,
		FetchTimeout:  raw.FetchTimeout,
		APIAccessKey:  raw.APIAccessKey,
		Once:          raw.Once,
		UserAgent:     raw.UserAgent,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
