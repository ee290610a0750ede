package ingest

import (
	"database/sql"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	_ "modernc.org/sqlite"
)

// DefaultTable is the table read when none is named.
const DefaultTable = "results"

// StreamSQLite iterates over every row of table, calling fn for each one as
// an ordered map of column name to value. Only one row is alive at a time.
// TEXT and BLOB columns are delivered as strings and NULL as nil.
func StreamSQLite(dbPath, table string, fn RowFunc) error {
	if table == "" {
		table = DefaultTable
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.Query("SELECT * FROM " + quoteIdent(table))
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("columns of %s: %w", table, err)
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		row := orderedmap.New[string, any]()
		for i, c := range cols {
			v := vals[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row.Set(c, v)
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

// LoadSQLite reads every row of table into a slice.
// Prefer StreamSQLite for large tables.
func LoadSQLite(dbPath, table string) ([]any, error) {
	var records []any
	err := StreamSQLite(dbPath, table, func(row any) error {
		records = append(records, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
