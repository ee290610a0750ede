// Package lattice proposes a grouping specification for flat rows.
//
// Rows are scaled into a formal context (one binary attribute per field
// value). Fields that determine each other form an entity; the entity's
// id-like field becomes a group key, and an entity nests under the one its
// key determines.
package lattice

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/agentic-research/regroup/api"
	"github.com/agentic-research/regroup/internal/ingest"
)

// InferConfig controls the specification inference pipeline.
type InferConfig struct {
	SampleSize int    // max records to sample (default 1000)
	RootName   string // type name for entities keyed by a bare "id" (default "record")
	Seed       int64  // random seed for reservoir sampling (0 = deterministic)
}

// DefaultInferConfig returns sensible defaults.
func DefaultInferConfig() InferConfig {
	return InferConfig{
		SampleSize: 1000,
		RootName:   "record",
	}
}

// Inferrer orchestrates FCA-based specification inference.
type Inferrer struct {
	Config InferConfig
}

// entity is a class of mutually determining fields with a chosen key.
type entity struct {
	key    string
	fields []string
	name   string
	parent *entity
	kids   []*entity
}

// InferFromRecords proposes a specification for pre-loaded records.
func (inf *Inferrer) InferFromRecords(records []any) (*api.Config, error) {
	if len(records) == 0 {
		return &api.Config{}, nil
	}

	sampled := records
	if len(records) > inf.Config.SampleSize && inf.Config.SampleSize > 0 {
		sampled = reservoirSample(records, inf.Config.SampleSize, inf.Config.Seed)
	}

	ctx := BuildContext(sampled)
	entities, loose := inf.entities(ctx)
	if len(entities) == 0 {
		return nil, fmt.Errorf("no key fields among %d fields", len(ctx.Fields))
	}
	nest(ctx, entities)
	attach(ctx, entities, loose)
	return toConfig(entities), nil
}

// InferFromSQLite infers a specification by streaming rows from a SQLite
// table. Uses reservoir sampling to keep memory bounded.
func (inf *Inferrer) InferFromSQLite(dbPath, table string) (*api.Config, error) {
	sampleSize := inf.Config.SampleSize
	if sampleSize <= 0 {
		sampleSize = 1000
	}

	reservoir := make([]any, 0, sampleSize)
	rng := rand.New(rand.NewSource(inf.Config.Seed))
	count := 0

	err := ingest.StreamSQLite(dbPath, table, func(row any) error {
		if count < sampleSize {
			reservoir = append(reservoir, row)
		} else {
			j := rng.Intn(count + 1)
			if j < sampleSize {
				reservoir[j] = row
			}
		}
		count++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sample sqlite: %w", err)
	}

	return inf.InferFromRecords(reservoir)
}

// entities turns field classes into keyed entities. Single-field classes
// without an id-like name are returned as loose fields.
func (inf *Inferrer) entities(ctx *FormalContext) ([]*entity, []string) {
	var out []*entity
	var loose []string
	names := make(map[string]int)
	for _, class := range ctx.Classes() {
		k := ""
		for _, f := range class {
			if isIDLike(f) {
				k = f
				break
			}
		}
		if k == "" {
			if len(class) == 1 {
				loose = append(loose, class[0])
				continue
			}
			k = class[0]
		}
		if ctx.Cardinality(k) == 0 {
			loose = append(loose, class...)
			continue
		}

		name := typeName(k, inf.rootName())
		if n := names[name]; n > 0 {
			names[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			names[name] = 1
		}
		out = append(out, &entity{key: k, fields: class, name: name})
	}
	return out, loose
}

func (inf *Inferrer) rootName() string {
	if inf.Config.RootName == "" {
		return "record"
	}
	return inf.Config.RootName
}

// nest picks, for each entity, the nearest entity its key determines.
// Among candidates the nearest is the one that determines the most others.
func nest(ctx *FormalContext, entities []*entity) {
	for _, e := range entities {
		var candidates []*entity
		for _, p := range entities {
			if p != e && ctx.Determines(e.key, p.key) {
				candidates = append(candidates, p)
			}
		}
		best, bestScore := (*entity)(nil), -1
		for _, c := range candidates {
			score := 0
			for _, o := range candidates {
				if o != c && ctx.Determines(c.key, o.key) {
					score++
				}
			}
			if score > bestScore {
				best, bestScore = c, score
			}
		}
		if best != nil && !best.descendsFrom(e) {
			e.parent = best
		}
	}
	for _, e := range entities {
		if e.parent != nil {
			e.parent.kids = append(e.parent.kids, e)
		}
	}
}

func (e *entity) descendsFrom(anc *entity) bool {
	for p := e; p != nil; p = p.parent {
		if p == anc {
			return true
		}
	}
	return false
}

// attach adds each loose field to the deepest entity whose key determines
// it. Fields no entity determines are dropped.
func attach(ctx *FormalContext, entities []*entity, loose []string) {
	for _, f := range loose {
		var best *entity
		depth := -1
		for _, e := range entities {
			if !ctx.Determines(e.key, f) {
				continue
			}
			if d := e.depth(); d > depth {
				best, depth = e, d
			}
		}
		if best != nil {
			best.fields = append(best.fields, f)
		}
	}
}

func (e *entity) depth() int {
	d := 0
	for p := e.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

func toConfig(entities []*entity) *api.Config {
	cfg := &api.Config{}
	for _, e := range entities {
		ts := api.TypeSpec{Name: e.name, Properties: []api.Property{}}
		used := make(map[string]bool)
		for _, f := range e.fields {
			p := propertyName(f)
			for base, n := p, 2; used[p]; n++ {
				p = fmt.Sprintf("%s_%d", base, n)
			}
			used[p] = true
			ts.Properties = append(ts.Properties, api.Property{Name: p, From: f})
		}
		cfg.Types = append(cfg.Types, ts)
	}
	for _, e := range entities {
		if e.parent == nil {
			cfg.Groups = append(cfg.Groups, e.group())
		}
	}
	return cfg
}

func (e *entity) group() api.GroupSpec {
	g := api.GroupSpec{Name: plural(e.name), By: []string{e.key}, Type: e.name}
	for _, k := range e.kids {
		g.Groups = append(g.Groups, k.group())
	}
	return g
}

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

func propertyName(field string) string {
	s := strings.Trim(nonWord.ReplaceAllString(splitCamel(field), "_"), "_")
	if s == "" {
		return "field"
	}
	return s
}

// isIDLike reports whether a field name contains an identifier word,
// e.g. "ID #", "customer_key" or "orderId".
func isIDLike(field string) bool {
	for _, w := range strings.Split(propertyName(field), "_") {
		if idWords[w] {
			return true
		}
	}
	return false
}

var idWords = map[string]bool{"id": true, "key": true, "code": true}

// typeName derives an entity name from its key by dropping id-like words:
// "Car ID #" becomes "car"; a bare "id" becomes fallback.
func typeName(key, fallback string) string {
	var words []string
	for _, w := range strings.Split(propertyName(key), "_") {
		if !idWords[w] {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return fallback
	}
	return strings.Join(words, "_")
}

var camel = regexp.MustCompile(`([a-z0-9])([A-Z])`)

func splitCamel(s string) string {
	return strings.ToLower(camel.ReplaceAllString(s, "${1}_${2}"))
}

func plural(name string) string {
	switch {
	case strings.HasSuffix(name, "s"), strings.HasSuffix(name, "x"):
		return name + "es"
	case strings.HasSuffix(name, "y") && len(name) > 1 && !strings.ContainsAny(name[len(name)-2:len(name)-1], "aeiou"):
		return name[:len(name)-1] + "ies"
	default:
		return name + "s"
	}
}

// reservoirSample performs reservoir sampling on a slice.
func reservoirSample(records []any, k int, seed int64) []any {
	if len(records) <= k {
		return records
	}
	rng := rand.New(rand.NewSource(seed))
	reservoir := make([]any, k)
	copy(reservoir, records[:k])
	for i := k; i < len(records); i++ {
		j := rng.Intn(i + 1)
		if j < k {
			reservoir[j] = records[i]
		}
	}
	return reservoir
}
