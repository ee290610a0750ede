package record

// Set is the append-only list of every Record ingested, in arrival order.
type Set struct {
	records []*Record
}

func NewSet() *Set {
	return &Set{}
}

// Add wraps raw in a Record and appends it.
func (s *Set) Add(raw any) *Record {
	r := New(raw)
	s.records = append(s.records, r)
	return r
}

// Rows returns the raw payloads in ingestion order.
func (s *Set) Rows() []any {
	rows := make([]any, len(s.records))
	for i, r := range s.records {
		rows[i] = r.data
	}
	return rows
}

// Records returns the wrapped rows in ingestion order.
func (s *Set) Records() []*Record {
	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Set) Len() int {
	return len(s.records)
}
