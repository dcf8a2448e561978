package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ginjaninja78/receipt-desk/internal/config"
	"github.com/ginjaninja78/receipt-desk/internal/exporter"
	"github.com/ginjaninja78/receipt-desk/internal/loader"
	"github.com/ginjaninja78/receipt-desk/internal/logging"
	"github.com/ginjaninja78/receipt-desk/internal/printer"
	"github.com/ginjaninja78/receipt-desk/internal/receipt"
	"github.com/ginjaninja78/receipt-desk/internal/session"
	"github.com/rs/zerolog"
)

// runtimeEnv carries the loaded configuration and logger to the commands.
type runtimeEnv struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func newRuntime(cfgPath, formatOverride string, verbose bool) (*runtimeEnv, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	format := cfg.LogFormat
	if formatOverride != "" {
		format = formatOverride
	}

	logger, err := logging.New(os.Stderr, logging.Options{
		Level:   cfg.LogLevel,
		Format:  format,
		Verbose: verbose,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("config", cfgPath).Str("name_column", cfg.NameColumn).Msg("configuration loaded")
	return &runtimeEnv{cfg: cfg, logger: logger}, nil
}

// newSession returns an empty session for the configured name column.
func (r *runtimeEnv) newSession() *session.Session {
	return session.New(r.cfg.NameColumn, loader.Options{Sheet: r.cfg.Sheet}, r.logger)
}

// loadSession loads path into a new session and reports warnings on stderr.
func (r *runtimeEnv) loadSession(path string) (*session.Session, error) {
	s := r.newSession()
	warnings, err := s.Load(path)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w.Message)
	}
	return s, nil
}

// newExporter wires the renderer and, when withPrint is true, the dispatcher.
func (r *runtimeEnv) newExporter(withPrint bool) (*exporter.Exporter, error) {
	renderer := receipt.New(receipt.Options{
		Title:      r.cfg.Receipt.Title,
		Fields:     r.cfg.Receipt.Fields,
		LogoLeft:   r.cfg.Receipt.LogoLeft,
		LogoCenter: r.cfg.Receipt.LogoCenter,
	}, r.logger)

	opts := exporter.Options{
		Print:        withPrint && r.cfg.PrintEnabled(),
		WriteSummary: r.cfg.Export.WriteSummary,
	}
	if !opts.Print {
		return exporter.New(renderer, nil, r.logger, opts), nil
	}

	backend, err := printer.Select(r.cfg.Print.Backend, nil)
	if err != nil {
		return nil, err
	}
	return exporter.New(renderer, printer.NewDispatcher(backend, r.logger), r.logger, opts), nil
}

// parseRows parses a comma separated list of row indices such as "0,2,5".
func parseRows(list string) ([]int, error) {
	var rows []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid row index %q", part)
		}
		rows = append(rows, n)
	}
	return rows, nil
}
