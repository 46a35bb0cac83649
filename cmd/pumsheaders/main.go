package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"pumscli/internal/config"
	"pumscli/internal/dictionary"
	apperrors "pumscli/internal/errors"
	"pumscli/internal/headers"
	"pumscli/internal/infrastructure"
	"pumscli/internal/validation"
)

// exampleCount is how many parsed descriptions are echoed after parsing.
const exampleCount = 5

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

// run performs one header update pass and returns the process exit code.
func run(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) int {
	paths := config.NewPaths(cfg.Data, cfg.Rewrite)
	paths.LogPathResolution(logger)

	logger.InfoContext(ctx, "Starting header update", slog.String("config", cfg.String()))

	v := validation.NewFileValidator(logger)
	inputs := paths.Inputs()
	if err := v.ValidateInputs(inputs[0], inputs[1:]...); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, "Parsing PUMS data dictionary...")
	dict, report, err := dictionary.LoadFile(ctx, paths.DictionaryFile, cfg.Data.Encoding)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to parse data dictionary",
			slog.String("path", paths.DictionaryFile),
			slog.String("error_type", string(apperrors.TypeOf(err))),
			slog.String("error", err.Error()))
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	logger.InfoContext(ctx, "Parsed data dictionary",
		slog.Int("lines", report.LinesScanned),
		slog.Int("definitions", report.Definitions),
		slog.Int("entries", dict.Len()),
		slog.Int("missing_descriptions", report.MissingDescriptions),
		slog.Int("code_lines_skipped", report.CodeLinesSkipped),
		slog.Any("duplicates", report.Duplicates))

	fmt.Fprintf(out, "Found %d variable descriptions\n", dict.Len())
	fmt.Fprintln(out, "\nExample variable descriptions:")
	for _, e := range dict.Head(exampleCount) {
		fmt.Fprintf(out, "  %s: %s\n", e.Name, e.Description)
	}

	rw := headers.NewRewriter(dict, logger, headers.Options{BOMPrefix: cfg.Rewrite.BOMPrefix})

	targets := []struct {
		label string
		path  string
	}{
		{"housing", paths.HousingCSV},
		{"person", paths.PersonCSV},
	}

	failed := 0
	for _, target := range targets {
		fmt.Fprintf(out, "\nUpdating %s file headers...\n", target.label)

		result, err := rw.RewriteFile(ctx, target.path, paths.OutputFor(target.path))
		if errors.Is(err, apperrors.ErrEmptyInput) {
			logger.WarnContext(ctx, "Skipping empty CSV file",
				slog.String("file", target.path),
				slog.String("error", err.Error()))
			fmt.Fprintf(out, "Error: %s is empty\n", target.path)
			continue
		}
		if err != nil {
			logger.ErrorContext(ctx, "Failed to update CSV headers",
				slog.String("file", target.path),
				slog.String("error_type", string(apperrors.TypeOf(err))),
				slog.String("error", err.Error()))
			fmt.Fprintf(out, "Error: %v\n", err)
			failed++
			continue
		}

		logger.InfoContext(ctx, "Updated CSV headers",
			slog.String("input", result.Input),
			slog.String("output", result.Output),
			slog.Int("rows", result.Rows),
			slog.Int("matched", result.Matched),
			slog.Int("total", result.Total))
		fmt.Fprintf(out, "Updated headers in %s\n", result.Output)
		fmt.Fprintf(out, "Found %d out of %d columns in dictionary\n", result.Matched, result.Total)
	}

	if failed > 0 {
		return 1
	}

	fmt.Fprintln(out, "\nHeader update complete!")
	return 0
}
