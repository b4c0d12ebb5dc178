// Package analytics derives counts, rates, rankings and deadline proximity
// from record lists. Every function is pure and tolerates empty input.
package analytics

import (
	"slices"

	"github.com/kailas-cloud/hireboard/internal/domain/record"
)

// Entry is one grouped count.
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Counts is a key -> count tally that remembers first-insertion order.
// The zero value is ready to use.
type Counts struct {
	order  []string
	counts map[string]int
}

// Add increments key by one.
func (c *Counts) Add(key string) { c.AddN(key, 1) }

// AddN increments key by n.
func (c *Counts) AddN(key string, n int) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// Get returns the count for key, 0 when unseen.
func (c Counts) Get(key string) int { return c.counts[key] }

// Len returns the number of distinct keys.
func (c Counts) Len() int { return len(c.order) }

// Keys returns keys in first-insertion order.
func (c Counts) Keys() []string { return slices.Clone(c.order) }

// Total returns the sum of all counts.
func (c Counts) Total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// Entries returns the tally in first-insertion order.
func (c Counts) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, Entry{Key: k, Count: c.counts[k]})
	}
	return out
}

// Map returns the tally as a plain map.
func (c Counts) Map() map[string]int {
	out := make(map[string]int, len(c.order))
	for _, k := range c.order {
		out[k] = c.counts[k]
	}
	return out
}

// GroupAndCount tallies records by the string form of field. Keys are
// case-sensitive and untrimmed; records without the field are skipped.
func GroupAndCount(records []record.Record, field string) Counts {
	var c Counts
	for _, r := range records {
		if k, ok := r.Text(field); ok {
			c.Add(k)
		}
	}
	return c
}

// GroupAndCountArray tallies every element of an array field.
func GroupAndCountArray(records []record.Record, field string) Counts {
	var c Counts
	for _, r := range records {
		elems, _ := r.Strings(field)
		for _, e := range elems {
			c.Add(e)
		}
	}
	return c
}

// TopN returns at most n entries by descending count. Ties keep
// first-insertion order. n <= 0 yields an empty list.
func TopN(c Counts, n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	entries := c.Entries()
	slices.SortStableFunc(entries, func(a, b Entry) int { return b.Count - a.Count })
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
