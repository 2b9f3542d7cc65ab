package simulation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/tidwall/gjson"

	"github.com/udisondev/essence/internal/calc"
	"github.com/udisondev/essence/internal/module"
	"github.com/udisondev/essence/internal/stat"
)

// EntryVersion is bumped whenever the entry layout changes; entries of any
// other version read as a miss.
const EntryVersion = 1

var ErrCorruptEntry = errors.New("corrupt cache entry")

// Selection is the per-level search outcome stored next to the mod lists.
type Selection struct {
	Found   bool           `json:"found"`
	Reused  bool           `json:"reused,omitempty"`
	Loadout module.Loadout `json:"loadout"`
}

// Entry is one config's cached search. StatModLists[i] is the winning mod
// list of level StartLevel+i.
type Entry struct {
	Version       int          `json:"version"`
	Hash          string       `json:"hashCode"`
	StartLevel    int          `json:"startLevel"`
	EndLevel      int          `json:"endLevel"`
	NumIterations int          `json:"numIterations"`
	StatModLists  [][]stat.Mod `json:"statModLists"`
	Selections    []Selection  `json:"selections,omitempty"`
}

// NewEntry builds an entry from search results.
func NewEntry(cfg SearchConfig, hash string, levels []LevelResult) *Entry {
	e := &Entry{
		Version:       EntryVersion,
		Hash:          hash,
		StartLevel:    cfg.StartLevel,
		EndLevel:      cfg.EndLevel,
		NumIterations: cfg.NumIterations,
		StatModLists:  make([][]stat.Mod, len(levels)),
		Selections:    make([]Selection, len(levels)),
	}
	for i, lr := range levels {
		e.StatModLists[i] = lr.Mods
		e.Selections[i] = Selection{Found: lr.Found, Reused: lr.Reused, Loadout: lr.Loadout}
	}
	return e
}

// EncodeEntry serializes e as gzip-compressed JSON.
func EncodeEntry(e *Entry) ([]byte, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshaling cache entry: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("compressing cache entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing cache entry: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeEntry parses a payload written by EncodeEntry. A payload of another
// version returns ErrCacheMiss; anything unreadable returns ErrCorruptEntry.
func DecodeEntry(payload []byte) (*Entry, error) {
	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrCorruptEntry)
	}
	if v := gjson.GetBytes(raw, "version").Int(); v != EntryVersion {
		return nil, fmt.Errorf("entry version %d: %w", v, ErrCacheMiss)
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	levels := e.EndLevel - e.StartLevel + 1
	if levels <= 0 || len(e.StatModLists) != levels {
		return nil, fmt.Errorf("%w: %d mod lists for levels %d-%d", ErrCorruptEntry, len(e.StatModLists), e.StartLevel, e.EndLevel)
	}
	if len(e.Selections) != 0 && len(e.Selections) != levels {
		return nil, fmt.Errorf("%w: %d selections for %d levels", ErrCorruptEntry, len(e.Selections), levels)
	}
	return &e, nil
}

// Levels recomputes per-level results from the cached mod lists with the
// mean roll.
func (e *Entry) Levels() []LevelResult {
	out := make([]LevelResult, len(e.StatModLists))
	for i, mods := range e.StatModLists {
		lr := LevelResult{Level: e.StartLevel + i, Mods: mods, Stats: calc.CalcStats(mods)}
		if i < len(e.Selections) {
			lr.Found = e.Selections[i].Found
			lr.Reused = e.Selections[i].Reused
			lr.Loadout = e.Selections[i].Loadout
		}
		out[i] = lr
	}
	return out
}
