package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/h3-runtime/dispatch"
	"github.com/wippyai/h3-runtime/libh3"
	"github.com/wippyai/h3-runtime/metrics"
)

func main() {
	var cfg Config
	flag.StringVar(&cfg.Call, "call", "", "Operation to call")
	flag.StringVar(&cfg.Args, "args", "", "JSON array of arguments")
	flag.StringVar(&cfg.Schema, "schema", "", "Print the JSON schema of an operation's arguments")
	flag.StringVar(&cfg.Format, "format", "", "Output format: json, text, geojson, wkt (env "+envFormat+")")
	flag.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn, error (env "+envLogLevel+")")
	flag.StringVar(&cfg.EnvFile, "env", "", "Load environment from a .env file")
	flag.BoolVar(&cfg.List, "list", false, "List operations and exit")
	flag.BoolVar(&cfg.Interactive, "i", false, "Interactive mode with TUI")
	flag.BoolVar(&cfg.Metrics, "metrics", false, "Print call metrics to stderr")
	flag.Parse()

	if err := cfg.resolve(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Usage: h3 -call <op> [-args '[...]'] [-format json|text|geojson|wkt]")
		fmt.Fprintln(os.Stderr, "       h3 -list")
		fmt.Fprintln(os.Stderr, "       h3 -schema <op>")
		fmt.Fprintln(os.Stderr, "       h3 -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(&cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func run(cfg *Config, stdout, stderr io.Writer) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	lib, err := libh3.Open()
	if err != nil {
		return err
	}
	logger.Debug("libh3 opened", zap.String("version", libh3.Version()))

	opts := []dispatch.Option{dispatch.WithLogger(logger)}
	var reg *prometheus.Registry
	if cfg.Metrics {
		reg = prometheus.NewRegistry()
		obs, err := metrics.NewObserver(reg, "h3")
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		opts = append(opts, dispatch.WithObserver(obs))
	}

	tbl, err := dispatch.New(lib, opts...)
	if err != nil {
		return fmt.Errorf("dispatch table: %w", err)
	}

	if cfg.Interactive {
		return runInteractive(tbl)
	}

	p := &printer{w: stdout, format: cfg.Format, styled: isTerminal(stdout)}
	if err := execute(cfg, tbl, p); err != nil {
		return err
	}
	if reg != nil {
		return writeMetrics(stderr, reg)
	}
	return nil
}

// execute performs the one-shot list, schema or call request.
func execute(cfg *Config, tbl *dispatch.Table, p *printer) error {
	switch {
	case cfg.List:
		p.list(tbl)
		return nil
	case cfg.Schema != "":
		d, ok := tbl.Lookup(cfg.Schema)
		if !ok {
			return fmt.Errorf("unknown operation %q", cfg.Schema)
		}
		return p.schema(d)
	}

	args, err := parseArgs(cfg.Args)
	if err != nil {
		return err
	}
	result, err := tbl.Call(cfg.Call, args...)
	if err != nil {
		return err
	}
	return p.result(result)
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
