package lattice

import (
	"github.com/RoaringBitmap/roaring"
	"github.com/agentic-research/regroup/internal/field"
	"github.com/agentic-research/regroup/internal/record"
)

// Attribute is a named binary property in the formal context: "Field has
// the value Value". A blank Value stands for every blank cell of Field.
type Attribute struct {
	Name  string // e.g. "Car Make=Ford"
	Field string
	Value string
}

// FormalContext is a bitmap-based incidence table for Formal Concept Analysis.
// Column-major storage: each attribute has a bitmap of which objects (rows)
// possess it.
type FormalContext struct {
	ObjectCount int
	Attributes  []Attribute
	// Fields lists every field name in first-seen order.
	Fields []string

	columns   []*roaring.Bitmap // columns[j] = objects with attribute j
	rows      []*roaring.Bitmap // rows[i] = attributes of object i (lazy)
	attrIndex map[string]int    // attribute name → index
	byField   map[string][]int  // field → its attribute indices
}

// BuildContext scales every field of every record into one attribute per
// distinct value. Records whose fields cannot be enumerated contribute
// objects without attributes.
func BuildContext(records []any) *FormalContext {
	ctx := newContext(len(records))
	for i, rec := range records {
		r := field.For(rec)
		names, _ := r.Keys()
		for _, name := range names {
			v, _ := r.Get(name)
			ctx.add(i, name, record.String(v))
		}
	}
	return ctx
}

// NewFormalContext creates a FormalContext from a pre-built incidence table.
// Each attribute name is its own field. Used for unit tests with known
// cross-tables.
func NewFormalContext(objectCount int, attrNames []string, incidence [][]bool) *FormalContext {
	ctx := newContext(objectCount)
	for j, name := range attrNames {
		ctx.attribute(name, "", name)
		for i, row := range incidence {
			if j < len(row) && row[j] {
				ctx.columns[j].Add(uint32(i))
			}
		}
	}
	return ctx
}

func newContext(objectCount int) *FormalContext {
	return &FormalContext{
		ObjectCount: objectCount,
		attrIndex:   make(map[string]int),
		byField:     make(map[string][]int),
	}
}

func (ctx *FormalContext) add(obj int, fieldName, value string) {
	j := ctx.attribute(fieldName, value, fieldName+"="+value)
	ctx.columns[j].Add(uint32(obj))
	ctx.rows = nil
}

// attribute returns the index of the named attribute, creating it when missing.
func (ctx *FormalContext) attribute(fieldName, value, name string) int {
	if j, ok := ctx.attrIndex[name]; ok {
		return j
	}
	if _, seen := ctx.byField[fieldName]; !seen {
		ctx.Fields = append(ctx.Fields, fieldName)
	}
	j := len(ctx.Attributes)
	ctx.Attributes = append(ctx.Attributes, Attribute{Name: name, Field: fieldName, Value: value})
	ctx.columns = append(ctx.columns, roaring.New())
	ctx.attrIndex[name] = j
	ctx.byField[fieldName] = append(ctx.byField[fieldName], j)
	return j
}

// Index returns the index of the named attribute.
func (ctx *FormalContext) Index(name string) (int, bool) {
	j, ok := ctx.attrIndex[name]
	return j, ok
}

// Extent returns the objects possessing attribute j.
func (ctx *FormalContext) Extent(j int) *roaring.Bitmap {
	if j < 0 || j >= len(ctx.columns) {
		return roaring.New()
	}
	return ctx.columns[j].Clone()
}

// AttrDeriv computes B': the set of objects that have ALL attributes in B.
func (ctx *FormalContext) AttrDeriv(attrs *roaring.Bitmap) *roaring.Bitmap {
	if attrs.IsEmpty() {
		result := roaring.New()
		result.AddRange(0, uint64(ctx.ObjectCount))
		return result
	}
	var result *roaring.Bitmap
	iter := attrs.Iterator()
	for iter.HasNext() {
		j := iter.Next()
		if int(j) >= len(ctx.columns) {
			return roaring.New()
		}
		if result == nil {
			result = ctx.columns[j].Clone()
		} else {
			result.And(ctx.columns[j])
		}
	}
	if result == nil {
		return roaring.New()
	}
	return result
}

// ObjectDeriv computes A': the set of attributes common to ALL objects in A.
func (ctx *FormalContext) ObjectDeriv(objs *roaring.Bitmap) *roaring.Bitmap {
	if objs.IsEmpty() {
		result := roaring.New()
		for j := range ctx.Attributes {
			result.Add(uint32(j))
		}
		return result
	}
	ctx.ensureRows()
	var result *roaring.Bitmap
	iter := objs.Iterator()
	for iter.HasNext() {
		i := iter.Next()
		if int(i) >= len(ctx.rows) {
			return roaring.New()
		}
		if result == nil {
			result = ctx.rows[i].Clone()
		} else {
			result.And(ctx.rows[i])
		}
	}
	if result == nil {
		return roaring.New()
	}
	return result
}

// Closure computes B'' = (B')'.
func (ctx *FormalContext) Closure(attrs *roaring.Bitmap) *roaring.Bitmap {
	return ctx.ObjectDeriv(ctx.AttrDeriv(attrs))
}

// ensureRows lazily computes row bitmaps from column bitmaps.
func (ctx *FormalContext) ensureRows() {
	if ctx.rows != nil {
		return
	}
	ctx.rows = make([]*roaring.Bitmap, ctx.ObjectCount)
	for i := range ctx.rows {
		ctx.rows[i] = roaring.New()
	}
	for j, col := range ctx.columns {
		iter := col.Iterator()
		for iter.HasNext() {
			i := iter.Next()
			ctx.rows[i].Add(uint32(j))
		}
	}
}
