package exporter

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "pumscli/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVData is a CSV file split into its parsed header record and the raw
// bytes that follow it. Body is never re-encoded.
type CSVData struct {
	// Header is nil when the file holds no records.
	Header []string
	Body   []byte
	// DataRows counts records after the header, blank lines included.
	DataRows int
	// HasBOM reports whether the file started with a UTF-8 BOM.
	HasBOM bool
	// HeaderCRLF reports whether the header record ended with \r\n.
	HeaderCRLF bool
}

// ReadCSV loads the file at path and closes it before returning. Only the
// header record is parsed; everything after it is kept byte for byte.
func ReadCSV(path string) (*CSVData, error) {
	f, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	content, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read CSV", err).WithContext("path", path)
	}

	data := &CSVData{}
	if bytes.HasPrefix(content, utf8BOM) {
		content = content[len(utf8BOM):]
		data.HasBOM = true
	}

	reader := newReader(bytes.NewReader(content))
	header, err := reader.Read()
	if err == io.EOF {
		return data, nil
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV header", err).WithContext("path", path)
	}

	end := reader.InputOffset()
	data.Header = header
	data.HeaderCRLF = bytes.HasSuffix(content[:end], []byte("\r\n"))
	data.Body = content[end:]

	data.DataRows, err = countRecords(data.Body)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV", err).WithContext("path", path)
	}
	return data, nil
}

// countRecords counts the records in body the way a row-by-row reader sees
// them: every blank line is an empty record.
func countRecords(body []byte) (int, error) {
	reader := newReader(bytes.NewReader(body))
	reader.ReuseRecord = true

	count := 0
	var prev int64
	for {
		_, err := reader.Read()
		if err == io.EOF {
			return count + blankLines(body[prev:]), nil
		}
		if err != nil {
			return 0, err
		}
		next := reader.InputOffset()
		// csv.Reader silently skips blank lines before a record.
		count += blankLines(body[prev:next]) + 1
		prev = next
	}
}

// blankLines counts the empty lines at the start of b.
func blankLines(b []byte) int {
	n := 0
	for {
		switch {
		case bytes.HasPrefix(b, []byte("\n")):
			b = b[1:]
		case bytes.HasPrefix(b, []byte("\r\n")):
			b = b[2:]
		default:
			return n
		}
		n++
	}
}

// ReadHeader returns only the first row of the file at path.
func ReadHeader(path string) ([]string, error) {
	f, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br, _ := stripUTF8BOM(bufio.NewReader(f))
	header, err := newReader(br).Read()
	if err == io.EOF {
		return nil, apperrors.NewEmptyInputError(path)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV header", err).WithContext("path", path)
	}
	return header, nil
}

func openCSV(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, apperrors.NewNotFoundError("CSV file").WithContext("path", path)
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open CSV", err).WithContext("path", path)
	}
	return f, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	// Rows pass through untouched, so ragged rows and stray quotes are accepted as-is.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func stripUTF8BOM(r *bufio.Reader) (*bufio.Reader, bool) {
	b, err := r.Peek(len(utf8BOM))
	if err == nil && b[0] == utf8BOM[0] && b[1] == utf8BOM[1] && b[2] == utf8BOM[2] {
		_, _ = r.Discard(len(utf8BOM))
		return r, true
	}
	return r, false
}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Header []string
	// Body is written verbatim after the header record.
	Body      []byte
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
	UseCRLF   bool // Terminate the header record with \r\n
}

// WriteCSV truncates or creates filePath and writes the header record
// followed by the raw body.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Debug("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("header_columns", len(options.Header)),
		slog.Int("body_bytes", len(options.Body)))

	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewStorageError("failed to create directory", err).WithContext("path", dir)
		}
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return apperrors.NewStorageError("failed to open file", err).WithContext("path", filePath)
	}

	if err := writeContent(file, options); err != nil {
		file.Close()
		return apperrors.NewStorageError("failed to write CSV", err).WithContext("path", filePath)
	}

	if err := file.Close(); err != nil {
		return apperrors.NewStorageError("failed to close CSV", err).WithContext("path", filePath)
	}
	return nil
}

func writeContent(out io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	if options.Header != nil {
		writer := csv.NewWriter(out)
		writer.UseCRLF = options.UseCRLF
		if err := writer.Write(options.Header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return err
		}
	}

	if _, err := out.Write(options.Body); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}
