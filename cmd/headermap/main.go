package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pumscli/internal/config"
	apperrors "pumscli/internal/errors"
	"pumscli/internal/exporter"
	"pumscli/internal/infrastructure"
	"pumscli/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, logger, os.Stderr)
	if err != nil {
		logger.Error("Failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := infrastructure.EnsureRunID(context.Background())
	code := run(ctx, cfg, os.Stdout, logger)

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Tracing shutdown failed", slog.String("error", err.Error()))
	}
	cancel()

	if code != 0 {
		infrastructure.CloseLogFile()
		os.Exit(code)
	}
}

type filePair struct {
	label    string
	original string
	updated  string
}

// run prints the header mapping for each original/rewritten file pair and
// returns the process exit code.
func run(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) int {
	if cfg.Rewrite.InPlace || cfg.Rewrite.OutputSuffix == "" {
		err := apperrors.NewConfigError("header mapping needs rewritten copies; in-place mode leaves nothing to compare", nil)
		logger.ErrorContext(ctx, "Cannot build header mapping", slog.String("error", err.Error()))
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	paths := config.NewPaths(cfg.Data, cfg.Rewrite)
	paths.LogPathResolution(logger)

	pairs := []filePair{
		{"Housing", paths.HousingCSV, paths.OutputFor(paths.HousingCSV)},
		{"Person", paths.PersonCSV, paths.OutputFor(paths.PersonCSV)},
	}

	v := validation.NewFileValidator(logger)
	for _, p := range pairs {
		for _, path := range []string{p.original, p.updated} {
			if err := v.ValidateCSVFile(path); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				return 1
			}
		}
	}

	ctx, span := infrastructure.StartSpan(ctx, "headermap.run")
	defer span.End()

	mappings := make([]*exporter.HeaderMapping, 0, len(pairs))
	for _, p := range pairs {
		m, err := loadMapping(p)
		if err != nil {
			infrastructure.RecordError(ctx, err)
			logger.ErrorContext(ctx, "Failed to read headers",
				slog.String("file", p.original),
				slog.String("error_type", string(apperrors.TypeOf(err))),
				slog.String("error", err.Error()))
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}

		if m.OriginalCount != m.UpdatedCount {
			logger.WarnContext(ctx, "Column count differs between original and rewritten file",
				slog.String("original", p.original),
				slog.Int("original_columns", m.OriginalCount),
				slog.String("updated", p.updated),
				slog.Int("updated_columns", m.UpdatedCount))
		}

		if err := m.WriteTable(out, cfg.Report.MaxColumns); err != nil {
			logger.ErrorContext(ctx, "Failed to write mapping table", slog.String("error", err.Error()))
			return 1
		}
		mappings = append(mappings, m)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintln(out, "Summary:")
	for i, p := range pairs {
		m := mappings[i]
		fmt.Fprintf(out, "- %s file: %d columns, %d renamed\n", p.label, m.OriginalCount, m.ChangedCount())
	}

	if cfg.Report.XLSXPath != "" {
		xlsxPath := cfg.Report.XLSXPath
		if !filepath.IsAbs(xlsxPath) {
			xlsxPath = filepath.Join(cfg.Data.BaseDir, xlsxPath)
		}
		if err := v.ValidateOutputDirectory(filepath.Dir(xlsxPath)); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}
		if err := exporter.WriteMappingWorkbook(xlsxPath, mappings); err != nil {
			infrastructure.RecordError(ctx, err)
			logger.ErrorContext(ctx, "Failed to write mapping workbook",
				slog.String("path", xlsxPath),
				slog.String("error", err.Error()))
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}
		logger.InfoContext(ctx, "Wrote mapping workbook", slog.String("path", xlsxPath))
		fmt.Fprintf(out, "- Mapping workbook written to %s\n", xlsxPath)
	}

	return 0
}

func loadMapping(p filePair) (*exporter.HeaderMapping, error) {
	original, err := exporter.ReadHeader(p.original)
	if err != nil {
		return nil, err
	}
	updated, err := exporter.ReadHeader(p.updated)
	if err != nil {
		return nil, err
	}
	return exporter.BuildHeaderMapping(filepath.Base(p.original), original, updated), nil
}
