package headers

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	apperrors "pumscli/internal/errors"
	"pumscli/internal/exporter"
	"pumscli/internal/infrastructure"
)

// Descriptions looks up the description recorded for a variable name.
type Descriptions interface {
	Description(name string) (string, bool)
}

// Column describes what happened to one header column.
type Column struct {
	Index     int
	Original  string
	Rewritten string
	Matched   bool
}

// Result reports one rewritten file.
type Result struct {
	Input  string
	Output string
	// Rows counts every row written, header included.
	Rows    int
	Total   int
	Matched int
	Columns []Column
}

// Header returns the rewritten header row.
func (r *Result) Header() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.Rewritten
	}
	return out
}

// RewriteHeader returns a copy of header with described columns renamed.
// The input slice is not modified.
func RewriteHeader(header []string, descs Descriptions) ([]string, []Column, int) {
	rewritten := make([]string, len(header))
	columns := make([]Column, len(header))
	matched := 0

	for i, name := range header {
		col := Column{Index: i, Original: name, Rewritten: name}
		if desc, ok := descs.Description(name); ok {
			col.Rewritten = name + "_" + Sanitize(desc)
			col.Matched = true
			matched++
		}
		rewritten[i] = col.Rewritten
		columns[i] = col
	}

	return rewritten, columns, matched
}

// Options configures a Rewriter.
type Options struct {
	// BOMPrefix forces a UTF-8 BOM on output; a BOM present on input is always kept.
	BOMPrefix bool
}

// Rewriter rewrites header rows of CSV files against one set of descriptions.
type Rewriter struct {
	descs  Descriptions
	writer *exporter.CSVWriter
	logger *slog.Logger
	opts   Options
}

// NewRewriter creates a Rewriter. A nil logger falls back to the global logger.
func NewRewriter(descs Descriptions, logger *slog.Logger, opts Options) *Rewriter {
	logger = infrastructure.WithComponent(logger, "header_rewriter")
	return &Rewriter{
		descs:  descs,
		writer: exporter.NewCSVWriter(logger),
		logger: logger,
		opts:   opts,
	}
}

// RewriteFile reads input completely, rewrites row 0 and copies every byte
// after it to output unchanged. An empty output path overwrites input. A file with no data rows
// yields an EMPTY_INPUT error and nothing is written.
func (r *Rewriter) RewriteFile(ctx context.Context, input, output string) (*Result, error) {
	if output == "" {
		output = input
	}

	ctx, span := infrastructure.StartSpan(ctx, "headers.rewrite_file",
		attribute.String("csv.input", input),
		attribute.String("csv.output", output))
	defer span.End()

	data, err := exporter.ReadCSV(input)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	if data.Header == nil || data.DataRows == 0 {
		reason := "no rows"
		if data.Header != nil {
			reason = "header only"
		}
		err := apperrors.NewEmptyInputError(input).WithContext("reason", reason)
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	header, columns, matched := RewriteHeader(data.Header, r.descs)

	if err := r.writer.WriteCSV(output, exporter.WriteOptions{
		Header:    header,
		Body:      data.Body,
		BOMPrefix: r.opts.BOMPrefix || data.HasBOM,
		UseCRLF:   data.HeaderCRLF,
	}); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	result := &Result{
		Input:   input,
		Output:  output,
		Rows:    data.DataRows + 1,
		Total:   len(header),
		Matched: matched,
		Columns: columns,
	}

	span.SetAttributes(
		attribute.Int("csv.rows", result.Rows),
		attribute.Int("csv.columns", result.Total),
		attribute.Int("csv.columns_matched", result.Matched))

	r.logger.DebugContext(ctx, "Rewrote CSV header",
		slog.String("input", input),
		slog.String("output", output),
		slog.Int("rows", result.Rows),
		slog.Int("matched", matched),
		slog.Int("total", result.Total))

	return result, nil
}
