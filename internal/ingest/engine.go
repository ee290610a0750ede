package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentic-research/regroup/internal/graph"
)

// ErrUnsupportedSource is returned when a file named directly has no loader.
// Unsupported files found while walking a directory are skipped.
var ErrUnsupportedSource = errors.New("unsupported source")

// Engine feeds rows read from files into a graph.
type Engine struct {
	Graph *graph.Graph

	// Selector is an optional JSONPath applied to JSON and YAML documents.
	Selector string
	// Table is the SQLite table to read; DefaultTable when empty.
	Table string

	Logger *slog.Logger
}

func NewEngine(g *graph.Graph) *Engine {
	return &Engine{
		Graph:  g,
		Logger: slog.Default(),
	}
}

// Ingest processes a file or directory.
func (e *Engine) Ingest(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return filepath.Walk(path, func(p string, d os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			load := e.loaderFor(p)
			if load == nil {
				e.logger().Debug("skipping unsupported file", "path", p)
				return nil
			}
			return e.ingestFile(p, load)
		})
	}

	load := e.loaderFor(path)
	if load == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
	}
	return e.ingestFile(path, load)
}

// IngestRecords adds in-memory rows.
func (e *Engine) IngestRecords(rows []any) {
	e.Graph.Add(rows...)
}

// Supported reports whether path has a loader.
func Supported(path string) bool {
	return (&Engine{}).loaderFor(path) != nil
}

func (e *Engine) ingestFile(path string, load Loader) error {
	n := 0
	err := load(path, func(row any) error {
		e.Graph.Add(row)
		n++
		return nil
	})
	if err != nil {
		return fmt.Errorf("ingest %s: %w", path, err)
	}
	e.logger().Debug("ingested", "path", path, "rows", n)
	return nil
}

func (e *Engine) loaderFor(path string) Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSVFile
	case ".json", ".jsonl", ".ndjson":
		return e.documentLoader(true)
	case ".yaml", ".yml":
		return e.documentLoader(false)
	case ".db", ".sqlite", ".sqlite3":
		return func(p string, fn RowFunc) error {
			return StreamSQLite(p, e.Table, fn)
		}
	default:
		return nil
	}
}

func (e *Engine) documentLoader(isJSON bool) Loader {
	return func(path string, fn RowFunc) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rows, err := LoadDocument(data, isJSON, e.Selector)
		if err != nil {
			return err
		}
		for _, r := range rows {
			if err := fn(r); err != nil {
				return err
			}
		}
		return nil
	}
}

func loadCSVFile(path string, fn RowFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }() // safe to ignore
	return StreamCSV(f, fn)
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}
