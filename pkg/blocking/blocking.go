// Package blocking partitions the record table into candidate buckets so
// pair comparison stays inside small groups instead of running over the
// full O(n²) corpus. Two dimensions are indexed: exact normalized URL, and
// exact (name, source). Records missing the key fields of a dimension are
// excluded from that dimension entirely; an empty key must never collapse
// unrelated records into one giant bucket.
package blocking

import (
	"fmt"

	"github.com/blackmindsinstem/stemset/pkg/normalize"
	"github.com/blackmindsinstem/stemset/pkg/records"
)

// Dimension identifies which blocking key family a bucket belongs to.
type Dimension string

const (
	// DimensionURL blocks on the normalized URL.
	DimensionURL Dimension = "url"
	// DimensionNameSource blocks on normalized (name, source).
	DimensionNameSource Dimension = "name_source"
)

// Key is one blocking bucket key.
type Key struct {
	Dimension Dimension
	Value     string
}

// Bucket is an ordered list of records sharing a blocking key.
type Bucket struct {
	Key     Key
	Records []*records.Record
}

// Pair is a transient comparison unit: two records from one bucket, with
// A always the earlier-loaded record. Dimensions lists every blocking
// dimension the pair matched under; a pair sharing both URL and
// (name, source) carries both. Pairs are never persisted; only their
// classification outcome is.
type Pair struct {
	A          *records.Record
	B          *records.Record
	Dimensions []Dimension
}

// Matched reports whether the pair was blocked under the given dimension.
func (p Pair) Matched(d Dimension) bool {
	for _, dim := range p.Dimensions {
		if dim == d {
			return true
		}
	}
	return false
}

// ID returns the stable identifier of the unordered pair, used to key
// audit entries and deduplicate across blocking dimensions.
func (p Pair) ID() string {
	return PairID(p.A.ID, p.B.ID)
}

// PairID builds the stable unordered-pair identifier for two record IDs.
func PairID(a, b records.ID) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s|%s", a, b)
}

// Index maps blocking keys to buckets across both dimensions.
type Index struct {
	buckets []*Bucket
	byKey   map[Key]*Bucket
}

// Build indexes the full table. Buckets keep insertion order, so the
// downstream pair stream is deterministic for a given input table.
func Build(table *records.Table) *Index {
	ix := &Index{byKey: make(map[Key]*Bucket)}

	for _, r := range table.Records() {
		if url := normalize.URL(r.URL); url != "" {
			ix.add(Key{Dimension: DimensionURL, Value: url}, r)
		}

		name := normalize.Field(r.Name)
		source := normalize.Field(r.Source)
		if name != "" && source != "" {
			// Unit separator keeps "a b"+"c" distinct from "a"+"b c".
			value := name + "\x1f" + source
			ix.add(Key{Dimension: DimensionNameSource, Value: value}, r)
		}
	}
	return ix
}

func (ix *Index) add(key Key, r *records.Record) {
	bucket, ok := ix.byKey[key]
	if !ok {
		bucket = &Bucket{Key: key}
		ix.byKey[key] = bucket
		ix.buckets = append(ix.buckets, bucket)
	}
	bucket.Records = append(bucket.Records, r)
}

// Buckets returns every bucket with at least two records, in first-seen
// order. Singleton buckets generate no pairs and are skipped.
func (ix *Index) Buckets() []*Bucket {
	out := make([]*Bucket, 0, len(ix.buckets))
	for _, b := range ix.buckets {
		if len(b.Records) > 1 {
			out = append(out, b)
		}
	}
	return out
}

// Pairs generates every unordered candidate pair across both dimensions,
// deduplicated by pair ID: a pair matching under URL-blocking and under
// name/source-blocking is emitted once, carrying both dimensions.
func (ix *Index) Pairs() []Pair {
	seen := make(map[string]int)
	var pairs []Pair

	for _, bucket := range ix.Buckets() {
		rs := bucket.Records
		for i := 0; i < len(rs); i++ {
			for j := i + 1; j < len(rs); j++ {
				a, b := rs[i], rs[j]
				if records.Less(b, a) {
					a, b = b, a
				}
				p := Pair{A: a, B: b}
				if idx, ok := seen[p.ID()]; ok {
					if !pairs[idx].Matched(bucket.Key.Dimension) {
						pairs[idx].Dimensions = append(pairs[idx].Dimensions, bucket.Key.Dimension)
					}
					continue
				}
				p.Dimensions = []Dimension{bucket.Key.Dimension}
				seen[p.ID()] = len(pairs)
				pairs = append(pairs, p)
			}
		}
	}
	return pairs
}
