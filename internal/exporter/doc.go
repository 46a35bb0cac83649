// Package exporter reads and writes the CSV files the header tools operate on
// and renders header mapping reports.
//
// This package contains two main components:
//
// CSVWriter and ReadCSV: header-only CSV rewriting. Reading strips a leading
// UTF-8 BOM, parses the header record and keeps the rest of the file as raw
// bytes, so data rows are written back exactly as they were read.
//
// HeaderMapping: a positional pairing of original and rewritten header names,
// rendered as a fixed-width text table or exported to an XLSX workbook.
//
// Example usage:
//
//	data, err := exporter.ReadCSV("psam_h12.csv")
//	writer := exporter.NewCSVWriter(logger)
//	err = writer.WriteCSV("psam_h12_updated_headers.csv", exporter.WriteOptions{
//		Header:    newHeader,
//		Body:      data.Body,
//		BOMPrefix: data.HasBOM,
//		UseCRLF:   data.HeaderCRLF,
//	})
//
//	mapping := exporter.BuildHeaderMapping("psam_h12.csv", original, updated)
//	err = mapping.WriteTable(os.Stdout, 15)
package exporter
