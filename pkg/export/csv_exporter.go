package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// utf8BOM is prepended so spreadsheet applications detect UTF-8 and render
// Hebrew correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Dataset defines tabular export content.
type Dataset struct {
	// Label titles the section when several datasets are rendered together.
	Label   string
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for a single dataset, BOM included.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Write(utf8BOM)
	if err := e.writeDataset(buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderSections produces one CSV document containing each dataset under its
// label, separated by blank lines. Used for the combined statistics export.
func (e *CSVExporter) RenderSections(sections []Dataset) ([]byte, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("csv requires at least one section")
	}
	buf := &bytes.Buffer{}
	buf.Write(utf8BOM)
	for i, section := range sections {
		if i > 0 {
			buf.WriteString("\n")
		}
		if section.Label != "" {
			buf.WriteString(fmt.Sprintf("=== %s ===\n", section.Label))
		}
		if err := e.writeDataset(buf, section); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (e *CSVExporter) writeDataset(buf *bytes.Buffer, data Dataset) error {
	if len(data.Headers) == 0 {
		return fmt.Errorf("csv requires at least one header")
	}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
