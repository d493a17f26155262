// Package passport implements the passport controller: per-world unlock
// progress, page navigation, and the render pass that derives presentation
// state from both.
package passport

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Progress maps world id to its unlock flag.
type Progress map[string]bool

// NewProgress returns a Progress with every id locked.
func NewProgress(ids []string) Progress {
	p := make(Progress, len(ids))
	for _, id := range ids {
		p[id] = false
	}
	return p
}

// Clone returns an independent copy.
func (p Progress) Clone() Progress {
	out := make(Progress, len(p))
	for id, v := range p {
		out[id] = v
	}
	return out
}

// UnlockedCount returns how many worlds are unlocked.
func (p Progress) UnlockedCount() int {
	n := 0
	for _, v := range p {
		if v {
			n++
		}
	}
	return n
}

// Reconcile returns a Progress whose keys are exactly ids, carrying over known
// flags and locking missing ids. Keys of p not in ids are returned as dropped,
// sorted.
func Reconcile(p Progress, ids []string) (Progress, []string) {
	out := NewProgress(ids)
	var dropped []string
	for id, v := range p {
		if _, ok := out[id]; !ok {
			dropped = append(dropped, id)
			continue
		}
		out[id] = v
	}
	sort.Strings(dropped)
	return out, dropped
}

// EncodeProgress serializes p as a JSON object of world id to boolean.
func EncodeProgress(p Progress) ([]byte, error) {
	if p == nil {
		p = Progress{}
	}
	data, err := json.Marshal(map[string]bool(p))
	if err != nil {
		return nil, fmt.Errorf("encoding progress: %w", err)
	}
	return data, nil
}

// DecodeProgress parses the output of EncodeProgress.
func DecodeProgress(data []byte) (Progress, error) {
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding progress: %w", err)
	}
	if m == nil {
		m = map[string]bool{}
	}
	return Progress(m), nil
}
