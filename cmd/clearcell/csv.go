package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/clearcell/clearcell/internal/dataset"
)

// readCSV decodes a headered CSV file into a Dataset. Values are
// sniffed per cell: empty → null, integer, float, otherwise text.
// Decoding lives out here with the rest of the collaborator code; the
// core only ever sees the resulting Dataset.
func readCSV(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return dataset.New(), nil
	}

	header := records[0]
	columns := make([]dataset.Column, len(header))
	for i, name := range header {
		columns[i] = dataset.Column{
			Name:   name,
			Values: make([]dataset.Value, 0, len(records)-1),
		}
	}

	for rowNum, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, expected %d", rowNum+2, len(record), len(header))
		}
		for i, field := range record {
			columns[i].Values = append(columns[i].Values, sniffValue(field))
		}
	}

	ds := dataset.New(columns...)
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

func sniffValue(field string) dataset.Value {
	if field == "" {
		return dataset.Null()
	}
	if i, err := strconv.ParseInt(field, 10, 64); err == nil {
		return dataset.Int(i)
	}
	if f, err := strconv.ParseFloat(field, 64); err == nil {
		return dataset.Float(f)
	}
	return dataset.Text(field)
}

// writeCSV encodes a Dataset back to a headered CSV file, canonical
// text per cell.
func writeCSV(path string, ds *dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ds.ColumnNames()); err != nil {
		return err
	}

	rows := ds.RowCount()
	record := make([]string, ds.ColumnCount())
	for r := 0; r < rows; r++ {
		for c, col := range ds.Columns {
			record[c] = col.Values[r].Canonical()
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
