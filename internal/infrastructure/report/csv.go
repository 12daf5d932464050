// Package report renders the bulk user export. The renderer is deliberately
// shaped as a narrow collaborator: fields in, records in, bytes out.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
)

// CSVRenderer renders records as RFC 4180 CSV with a header row.
type CSVRenderer struct{}

func NewCSVRenderer() CSVRenderer {
	return CSVRenderer{}
}

// Render writes the field names as a header followed by one row per record.
// It fails when there are no records or when a record lacks one of the
// requested fields.
func (CSVRenderer) Render(fields []string, records []map[string]string) ([]byte, error) {
	if len(fields) == 0 {
		return nil, errors.New("render report: no fields")
	}
	if len(records) == 0 {
		return nil, errors.New("render report: no records")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(fields); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	row := make([]string, len(fields))
	for _, rec := range records {
		for i, f := range fields {
			v, ok := rec[f]
			if !ok {
				return nil, fmt.Errorf("render report: record missing field %q", f)
			}
			row[i] = v
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("render report: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
