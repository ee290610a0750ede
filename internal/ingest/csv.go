package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// StreamCSV reads a CSV source whose first line names the columns. Each
// following line becomes an ordered map of column name to cell text; short
// lines are padded with empty cells and extra cells are dropped.
func StreamCSV(r io.Reader, fn RowFunc) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv: %w", err)
		}
		row := orderedmap.New[string, any]()
		for i, name := range header {
			var cell string
			if i < len(rec) {
				cell = rec[i]
			}
			row.Set(name, cell)
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

// LoadCSV reads every row of a CSV source.
func LoadCSV(r io.Reader) ([]any, error) {
	var rows []any
	err := StreamCSV(r, func(row any) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
