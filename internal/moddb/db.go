package moddb

import (
	"sync"

	"github.com/udisondev/essence/internal/stat"
)

// Source identifies the contributor of a group of mods (an item, a skill,
// a tree node, a simulator round). Sources compare by identity: two sources
// created with the same label are still different sources.
//
// The zero Source is "no source": mods added under it can only be removed
// by Clear, and RemoveBySource ignores it.
type Source struct {
	h *handle
}

type handle struct {
	label string
}

// NewSource creates a fresh source identity. The label is for logs only.
func NewSource(label string) Source {
	return Source{h: &handle{label: label}}
}

// IsZero reports whether s is the zero Source.
func (s Source) IsZero() bool {
	return s.h == nil
}

// Label returns the label the source was created with.
func (s Source) Label() string {
	if s.h == nil {
		return ""
	}
	return s.h.label
}

type entry struct {
	mod    stat.Mod
	source Source
}

// DB is an ordered, source-tagged collection of stat mods.
// Insertion order is kept so aggregation sums in a stable order.
//
// Thread-safe: all methods are protected by sync.RWMutex.
type DB struct {
	mu      sync.RWMutex
	entries []entry
	version uint64
}

// New creates an empty DB.
func New() *DB {
	return &DB{entries: make([]entry, 0, 64)}
}

// Add appends mods tagged with source.
func (d *DB) Add(source Source, mods ...stat.Mod) {
	if len(mods) == 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, m := range mods {
		d.entries = append(d.entries, entry{mod: m, source: source})
	}
	d.version++
}

// RemoveBySource removes every mod added with source and nothing else.
// No-op for the zero Source. Returns the number of removed mods.
func (d *DB) RemoveBySource(source Source) int {
	if source.IsZero() {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, e := range d.entries {
		if e.source != source {
			d.entries[n] = e
			n++
		}
	}
	removed := len(d.entries) - n
	clear(d.entries[n:])
	d.entries = d.entries[:n]
	if removed > 0 {
		d.version++
	}
	return removed
}

// Replace swaps the contribution of source for mods in one step.
func (d *DB) Replace(source Source, mods ...stat.Mod) {
	d.RemoveBySource(source)
	d.Add(source, mods...)
}

// Clear removes all mods, including those added without a source.
func (d *DB) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	clear(d.entries)
	d.entries = d.entries[:0]
	d.version++
}

// ModList returns a copy of all mods in insertion order.
// The caller owns the returned slice.
func (d *DB) ModList() []stat.Mod {
	d.mu.RLock()
	defer d.mu.RUnlock()

	mods := make([]stat.Mod, len(d.entries))
	for i, e := range d.entries {
		mods[i] = e.mod
	}
	return mods
}

// ModsBySource returns a copy of the mods contributed by source.
func (d *DB) ModsBySource(source Source) []stat.Mod {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var mods []stat.Mod
	for _, e := range d.entries {
		if e.source == source {
			mods = append(mods, e.mod)
		}
	}
	return mods
}

// Len returns the number of mods.
func (d *DB) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Version increases on every mutation. Consumers use it to know when
// derived snapshots (conversion table, mod cache) must be rebuilt.
func (d *DB) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}
