package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/danmuck/glbctl/internal/config"
	"github.com/danmuck/glbctl/internal/inspect"
	"github.com/danmuck/glbctl/internal/logging"
	"github.com/danmuck/glbctl/internal/server"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

type options struct {
	mode     string
	config   string
	output   string
	force    bool
	skipJSON bool
	files    []string
}

func main() {
	logging.ConfigureRuntime()
	opts := parseFlags(os.Args[1:])

	var err error
	switch opts.mode {
	case "inspect":
		err = runInspect(opts, os.Stdout)
	case "serve":
		err = runServe(opts)
	case "config":
		err = runConfig(opts)
	default:
		err = fmt.Errorf("unknown mode %q (supported: inspect, serve, config)", opts.mode)
	}
	if err != nil {
		log.Error().Err(err).Str("mode", opts.mode).Msg("glbctl failed")
		os.Exit(1)
	}
}

func parseFlags(args []string) options {
	var opts options
	fs := flag.NewFlagSet("glbctl", flag.ExitOnError)
	fs.StringVar(&opts.mode, "mode", "inspect", "mode: inspect|serve|config")
	fs.StringVar(&opts.config, "config", "", "server config path (serve); defaults apply when empty")
	fs.StringVar(&opts.output, "output", "glbctl.toml", "output path for the config template (config)")
	fs.BoolVar(&opts.force, "force", false, "overwrite an existing config template (config)")
	fs.BoolVar(&opts.skipJSON, "skip-json", false, "do not parse the JSON chunk (inspect)")
	_ = fs.Parse(args)
	opts.files = fs.Args()
	return opts
}

// runInspect writes one JSON report per file. Plain files go through the
// in-memory decoder; files ending in .zst are streamed through zstd into the
// scratch-buffer decoder.
func runInspect(opts options, out io.Writer) error {
	if len(opts.files) == 0 {
		return errors.New("inspect: no input files")
	}
	in := inspect.New(inspect.Options{PoolSize: 1, SkipJSON: opts.skipJSON, Logger: log.Logger})
	enc := json.NewEncoder(out)

	var failed int
	for _, path := range opts.files {
		report, err := inspectFile(in, path)
		if err != nil {
			failed++
			log.Error().Str("file", path).Str("kind", inspect.Kind(err)).Err(err).Msg("inspect failed")
			continue
		}
		report.Name = path
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("inspect: %d of %d files failed", failed, len(opts.files))
	}
	return nil
}

func inspectFile(in *inspect.Inspector, path string) (inspect.Report, error) {
	if !strings.HasSuffix(path, ".zst") {
		data, err := os.ReadFile(path)
		if err != nil {
			return inspect.Report{}, err
		}
		return in.Bytes(data)
	}

	f, err := os.Open(path)
	if err != nil {
		return inspect.Report{}, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return inspect.Report{}, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()
	return in.Reader(dec)
}

func runServe(opts options) error {
	cfg := config.DefaultServerConfig()
	if opts.config != "" {
		loaded, err := config.LoadServerConfig(opts.config)
		if err != nil {
			return err
		}
		cfg = loaded
		log.Info().Str("path", opts.config).Msg("loaded server config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(cfg, log.Logger).Serve(ctx)
}

func runConfig(opts options) error {
	if err := config.WriteTemplate(opts.output, opts.force); err != nil {
		return err
	}
	log.Info().Str("path", opts.output).Msg("wrote server config template")
	return nil
}
