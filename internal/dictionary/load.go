package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	apperrors "pumscli/internal/errors"
	"pumscli/internal/infrastructure"
)

// Supported dictionary encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin-1"
	EncodingWindows1252 = "windows-1252"
)

// decoderFor returns the decoding for name. UTF-8 input may start with a BOM.
// The empty name means UTF-8.
func decoderFor(name string) (encoding.Encoding, error) {
	switch name {
	case "", EncodingUTF8:
		return unicode.UTF8BOM, nil
	case EncodingLatin1:
		return charmap.ISO8859_1, nil
	case EncodingWindows1252:
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// Parse decodes r with the named encoding and parses it line by line.
func Parse(r io.Reader, enc string) (*Dictionary, *ParseReport, error) {
	e, err := decoderFor(enc)
	if err != nil {
		return nil, nil, apperrors.NewValidationError("cannot decode dictionary", err)
	}

	reader := bufio.NewReader(transform.NewReader(r, e.NewDecoder()))

	// Lines of any length are read; only I/O and decoding failures are errors.
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, apperrors.NewParsingError("failed to read dictionary", err)
		}
	}

	dict, report := ParseLines(lines)
	return dict, report, nil
}

// LoadFile reads and parses the dictionary at path.
func LoadFile(ctx context.Context, path, enc string) (*Dictionary, *ParseReport, error) {
	ctx, span := infrastructure.StartSpan(ctx, "dictionary.load",
		attribute.String("dictionary.path", path),
		attribute.String("dictionary.encoding", enc))
	defer span.End()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = apperrors.NewNotFoundError("data dictionary").WithContext("path", path)
		} else {
			err = apperrors.NewStorageError("failed to open dictionary", err).WithContext("path", path)
		}
		infrastructure.RecordError(ctx, err)
		return nil, nil, err
	}
	defer f.Close()

	dict, report, err := Parse(f, enc)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("dictionary.lines", report.LinesScanned),
		attribute.Int("dictionary.entries", dict.Len()))
	return dict, report, nil
}
