package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sot/schedule-view/internal/derive"
	"github.com/sot/schedule-view/internal/loads"
	"github.com/sot/schedule-view/internal/schedules"
)

const (
	// DefaultStart is the earliest date shown on the page
	DefaultStart = "2020:110"
	// DefaultOutDir is where index.html is written
	DefaultOutDir = "."
	// DefaultSKA is used when $SKA is not set
	DefaultSKA = "/proj/sot/ska"
)

// Config holds all configuration for the application
type Config struct {
	GitHubToken string

	Start  string
	OutDir string

	CmdsDB        string
	CmdEvents     string
	SchedDir      string
	SchedPatterns []string
	StarcheckBase string

	MetricsFile string
	Verbose     bool
	Quiet       bool
}

// File is the optional YAML config file. Empty fields leave the value alone.
type File struct {
	Start         string   `yaml:"start"`
	OutDir        string   `yaml:"outdir"`
	CmdsDB        string   `yaml:"cmds_db"`
	CmdEvents     string   `yaml:"cmd_events"`
	SchedDir      string   `yaml:"sched_dir"`
	SchedPatterns []string `yaml:"sched_patterns"`
	StarcheckBase string   `yaml:"starcheck_base"`
	MetricsFile   string   `yaml:"metrics_file"`
}

// Flags are the command line values. Empty strings were not given.
type Flags struct {
	ConfigPath  string
	Start       string
	OutDir      string
	MetricsFile string
	Verbose     bool
	Quiet       bool
}

// Defaults returns the configuration used when nothing overrides it
func Defaults() *Config {
	ska := os.Getenv("SKA")
	if ska == "" {
		ska = DefaultSKA
	}
	return &Config{
		Start:         DefaultStart,
		OutDir:        DefaultOutDir,
		CmdsDB:        filepath.Join(ska, "data", "kadi", "cmds2.db"),
		CmdEvents:     filepath.Join(ska, "data", "kadi", "cmd_events.csv"),
		SchedDir:      schedules.DefaultDir,
		SchedPatterns: append([]string(nil), schedules.DefaultPatterns...),
		StarcheckBase: loads.DefaultStarcheckBase,
	}
}

// LoadFile reads a YAML config file
func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &f, nil
}

// Apply overlays the non-empty file values onto c
func (f *File) Apply(c *Config) {
	setIf(&c.Start, f.Start)
	setIf(&c.OutDir, f.OutDir)
	setIf(&c.CmdsDB, f.CmdsDB)
	setIf(&c.CmdEvents, f.CmdEvents)
	setIf(&c.SchedDir, f.SchedDir)
	setIf(&c.StarcheckBase, f.StarcheckBase)
	setIf(&c.MetricsFile, f.MetricsFile)
	if len(f.SchedPatterns) > 0 {
		c.SchedPatterns = append([]string(nil), f.SchedPatterns...)
	}
}

// FromEnvAndFlags creates a Config from defaults, the optional config file,
// environment variables and CLI flags, later sources winning
func FromEnvAndFlags(flags Flags) (*Config, error) {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	config := Defaults()

	if flags.ConfigPath != "" {
		f, err := LoadFile(flags.ConfigPath)
		if err != nil {
			return nil, err
		}
		f.Apply(config)
	}

	config.GitHubToken = os.Getenv("GITHUB_TOKEN")
	setIf(&config.CmdsDB, os.Getenv("SCHEDULE_VIEW_CMDS_DB"))
	setIf(&config.CmdEvents, os.Getenv("SCHEDULE_VIEW_CMD_EVENTS"))
	setIf(&config.SchedDir, os.Getenv("SCHEDULE_VIEW_SCHED_DIR"))
	setIf(&config.StarcheckBase, os.Getenv("SCHEDULE_VIEW_STARCHECK_BASE"))

	setIf(&config.Start, flags.Start)
	setIf(&config.OutDir, flags.OutDir)
	setIf(&config.MetricsFile, flags.MetricsFile)
	config.Quiet = flags.Quiet
	config.Verbose = flags.Verbose && !flags.Quiet // verbose is disabled if quiet is set

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the values every run needs
func (c *Config) Validate() error {
	if derive.ParseDate(c.Start) == nil {
		return fmt.Errorf("invalid start date %q: expected YYYY:DDD[:hh:mm[:ss[.fff]]]", c.Start)
	}
	if c.CmdsDB == "" {
		return errors.New("commands database path is required")
	}
	if c.CmdEvents == "" {
		return errors.New("command events location is required")
	}
	if c.OutDir == "" {
		return errors.New("output directory is required")
	}
	if len(c.SchedPatterns) == 0 {
		return errors.New("at least one schedule page pattern is required")
	}
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
