package ingest

// RowFunc receives one raw row. Rows are delivered in source order.
type RowFunc func(row any) error

// Loader streams every row of the source at path into fn.
type Loader func(path string, fn RowFunc) error
