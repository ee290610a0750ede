package lattice

import "github.com/RoaringBitmap/roaring"

// Determines reports whether the functional dependency from → to holds:
// every object sharing a non-blank value of from also shares one value of
// to. A field with no non-blank values determines nothing.
//
// For each value attribute a of from, the closure {a}'' is the set of
// attributes common to all objects with a; the dependency holds when it
// contains an attribute of to, or when none of those objects has to at all.
func (ctx *FormalContext) Determines(from, to string) bool {
	targets := ctx.byField[to]
	seen := false
	for _, a := range ctx.byField[from] {
		if ctx.Attributes[a].Value == "" {
			continue
		}
		seen = true
		intent := ctx.Closure(roaring.BitmapOf(uint32(a)))
		if !containsAny(intent, targets) && ctx.intersectsAny(ctx.columns[a], targets) {
			return false
		}
	}
	return seen
}

// Equivalent reports whether a and b determine each other.
func (ctx *FormalContext) Equivalent(a, b string) bool {
	return ctx.Determines(a, b) && ctx.Determines(b, a)
}

// Classes partitions the fields into classes of mutually determining
// fields. Classes and their members keep first-seen field order.
func (ctx *FormalContext) Classes() [][]string {
	assigned := make(map[string]bool, len(ctx.Fields))
	var classes [][]string
	for i, f := range ctx.Fields {
		if assigned[f] {
			continue
		}
		class := []string{f}
		assigned[f] = true
		for _, g := range ctx.Fields[i+1:] {
			if !assigned[g] && ctx.Equivalent(f, g) {
				class = append(class, g)
				assigned[g] = true
			}
		}
		classes = append(classes, class)
	}
	return classes
}

// Cardinality counts the distinct non-blank values of a field.
func (ctx *FormalContext) Cardinality(f string) int {
	n := 0
	for _, a := range ctx.byField[f] {
		if ctx.Attributes[a].Value != "" {
			n++
		}
	}
	return n
}

func containsAny(set *roaring.Bitmap, attrs []int) bool {
	for _, j := range attrs {
		if set.Contains(uint32(j)) {
			return true
		}
	}
	return false
}

func (ctx *FormalContext) intersectsAny(objs *roaring.Bitmap, attrs []int) bool {
	for _, j := range attrs {
		if objs.Intersects(ctx.columns[j]) {
			return true
		}
	}
	return false
}
