// Command jpegmeta prints the EXIF, IPTC and XMP metadata of JPEG files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/fedragon/jpeg-metadata/metadata"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, paths, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		return exitFailure
	}

	logger := newLogger(cfg.Verbose, stderr)
	defer func() { _ = logger.Sync() }()

	results, err := extractAll(ctx, cfg, paths, logger)
	if err != nil {
		logger.Error("extraction interrupted", zap.Error(err))
		return exitFailure
	}

	write := writeJSON
	if cfg.Format == formatText {
		write = writeText
	}
	if err := write(stdout, results); err != nil {
		logger.Error("writing output", zap.Error(err))
		return exitFailure
	}

	for _, r := range results {
		if r.Error != "" {
			return exitFailure
		}
	}
	return exitOK
}

// extractAll processes paths concurrently, up to cfg.Concurrency at a time.
// A file that cannot be read or is not a JPEG is reported in its result and does not stop the others.
func extractAll(ctx context.Context, cfg config, paths []string, logger *zap.Logger) ([]result, error) {
	results := make([]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = extractFile(cfg, path, logger.With(zap.String("file", path)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func extractFile(cfg config, path string, logger *zap.Logger) result {
	res := result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("cannot read file", zap.Error(err))
		res.Error = err.Error()
		return res
	}

	opts := []metadata.Option{
		metadata.WithXMP(cfg.XMP),
		metadata.WithLogger(logger),
	}
	if len(cfg.Tags) > 0 {
		opts = append(opts, metadata.WithTags(cfg.Tags...))
	}

	record, err := metadata.Extract(data, opts...)
	if err != nil {
		logger.Warn("cannot extract metadata", zap.Error(err))
		res.Error = err.Error()
		return res
	}

	res.Record = record
	for _, p := range multierr.Errors(record.Problems) {
		res.Problems = append(res.Problems, p.Error())
	}
	logger.Debug("metadata extracted",
		zap.Int("exif", len(record.Exif)),
		zap.Int("iptc", len(record.IPTC)),
		zap.Bool("xmp", record.XMP != nil),
		zap.Int("problems", len(res.Problems)),
	)

	return res
}

// newLogger returns a development logger when verbose, a production logger limited to warnings otherwise.
// Both write to w.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	var (
		encoder zapcore.Encoder
		level   zapcore.Level
	)
	if verbose {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level = zapcore.DebugLevel
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		level = zapcore.WarnLevel
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core)
}
