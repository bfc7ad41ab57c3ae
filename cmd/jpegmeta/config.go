package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	formatJSON = "json"
	formatText = "text"
)

var errUsage = errors.New("usage")

type config struct {
	XMP         bool     `toml:"xmp"`
	Concurrency int      `toml:"concurrency"`
	Format      string   `toml:"format"`
	Tags        []string `toml:"tags"`
	Verbose     bool     `toml:"verbose"`
}

func defaultConfig() config {
	return config{
		Concurrency: runtime.NumCPU(),
		Format:      formatJSON,
	}
}

// loadConfig decodes the TOML file at path over the defaults. Unknown keys are rejected.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("reading config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Format != formatJSON && c.Format != formatText {
		return fmt.Errorf("unknown format %q, expected %q or %q", c.Format, formatJSON, formatText)
	}
	return nil
}

// parseArgs reads the config file, if any, then overrides it with the flags that were set.
// It returns the configuration and the files to process.
func parseArgs(args []string, stderr io.Writer) (config, []string, error) {
	fs := flag.NewFlagSet("jpegmeta", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: jpegmeta [flags] <file.jpg>...")
		fs.PrintDefaults()
	}

	defaults := defaultConfig()
	configPath := fs.String("config", "", "path to a TOML config file")
	withXMP := fs.Bool("xmp", defaults.XMP, "extract the XMP packet")
	concurrency := fs.Int("concurrency", defaults.Concurrency, "number of files processed at once")
	format := fs.String("format", defaults.Format, "output format: json or text")
	tags := fs.String("tags", "", "comma-separated EXIF tag names to keep (default: all)")
	verbose := fs.Bool("verbose", defaults.Verbose, "log debug messages")

	if err := fs.Parse(args); err != nil {
		return config{}, nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return config{}, nil, fmt.Errorf("%w: no file given", errUsage)
	}

	cfg := defaults
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return config{}, nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "xmp":
			cfg.XMP = *withXMP
		case "concurrency":
			cfg.Concurrency = *concurrency
		case "format":
			cfg.Format = *format
		case "tags":
			cfg.Tags = splitTags(*tags)
		case "verbose":
			cfg.Verbose = *verbose
		}
	})

	if err := cfg.validate(); err != nil {
		return config{}, nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	return cfg, fs.Args(), nil
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
