package graph

import (
	"errors"

	"github.com/agentic-research/regroup/internal/key"
	"github.com/agentic-research/regroup/internal/record"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrMissingIDKey is returned when a Category is built without identifying fields.
	ErrMissingIDKey = errors.New("id key is required")
	// ErrDuplicateGroup is returned when two sibling groups share a name.
	ErrDuplicateGroup = errors.New("duplicate group name")
)

// bucket holds the records filed under one parent identity, in first-seen order.
type bucket = *orderedmap.OrderedMap[key.ID, *record.Record]

// Category is a parent-scoped, deduplicating index of records.
//
// For each (parent identity, record identity) pair at most one record is
// kept: a later Add replaces the stored record without moving it.
type Category struct {
	idKey        *key.Key
	parentKey    *key.Key
	includeBlank bool
	index        map[key.ID]bucket
}

// NewCategory builds an empty index. idKey must name at least one field;
// a nil or empty parentKey scopes every record to key.Root.
func NewCategory(idKey, parentKey *key.Key, includeBlank bool) (*Category, error) {
	if idKey.Len() == 0 {
		return nil, ErrMissingIDKey
	}
	return &Category{
		idKey:        idKey,
		parentKey:    parentKey,
		includeBlank: includeBlank,
		index:        make(map[key.ID]bucket),
	}, nil
}

func (c *Category) IDKey() *key.Key {
	return c.idKey
}

func (c *Category) ParentKey() *key.Key {
	return c.parentKey
}

func (c *Category) IncludeBlank() bool {
	return c.includeBlank
}

// ParentID resolves the bucket a record belongs to under this category's parent key.
func (c *Category) ParentID(r *record.Record) key.ID {
	if r == nil || c.parentKey.Len() == 0 {
		return key.Root
	}
	return r.Identity(c.parentKey)
}

// Add files r under parentID. Blank records are skipped unless the category
// includes blanks. It reports whether the record was stored.
func (c *Category) Add(parentID key.ID, r *record.Record) bool {
	if !c.includeBlank && !r.HasIdentity(c.idKey) {
		return false
	}
	b, ok := c.index[parentID]
	if !ok {
		b = orderedmap.New[key.ID, *record.Record]()
		c.index[parentID] = b
	}
	b.Set(r.Identity(c.idKey), r)
	return true
}

// Records returns the records filed under parentID in first-insertion order.
func (c *Category) Records(parentID key.ID) []*record.Record {
	b, ok := c.index[parentID]
	if !ok {
		return nil
	}
	out := make([]*record.Record, 0, b.Len())
	for p := b.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// Len returns the number of distinct records across all parents.
func (c *Category) Len() int {
	n := 0
	for _, b := range c.index {
		n += b.Len()
	}
	return n
}
