package fortune

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// HistoryStore is what a caller persists generated fortunes in. Get reports
// absence with ok=false; err is reserved for storage failures.
type HistoryStore interface {
	Get(ctx context.Context, period Period, periodKey string) (f Fortune, ok bool, err error)
	Put(ctx context.Context, period Period, periodKey string, f Fortune) error
}

// History maps a period to its fortunes keyed by bucket.
type History map[Period]map[string]Fortune

// NewHistory returns a History with an empty bucket map for every period.
func NewHistory() History {
	h := make(History, len(Periods))
	for _, p := range Periods {
		h[p] = map[string]Fortune{}
	}
	return h
}

// Get looks up the fortune stored for a bucket.
func (h History) Get(period Period, periodKey string) (Fortune, bool) {
	f, ok := h[period][periodKey]
	return f, ok
}

// Put stores f under (period, periodKey), replacing any previous value.
func (h History) Put(period Period, periodKey string, f Fortune) {
	bucket, ok := h[period]
	if !ok {
		bucket = map[string]Fortune{}
		h[period] = bucket
	}
	bucket[periodKey] = f
}

// Entries returns the fortunes of a period, newest first.
func (h History) Entries(period Period) []Fortune {
	out := make([]Fortune, 0, len(h[period]))
	for _, f := range h[period] {
		out = append(out, f)
	}
	SortNewestFirst(out)
	return out
}

// Len counts fortunes across all periods.
func (h History) Len() int {
	n := 0
	for _, bucket := range h {
		n += len(bucket)
	}
	return n
}

// UnmarshalJSON decodes the {"daily":{...},"weekly":{...},...} shape and
// guarantees every known period has a non-nil map afterwards.
func (h *History) UnmarshalJSON(b []byte) error {
	raw := map[Period]map[string]Fortune{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := NewHistory()
	for p, bucket := range raw {
		for k, f := range bucket {
			out.Put(p, k, f)
		}
	}
	*h = out
	return nil
}

// SortNewestFirst orders fortunes by GeneratedAt descending, breaking ties by key.
func SortNewestFirst(fs []Fortune) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].GeneratedAt.Equal(fs[j].GeneratedAt) {
			return fs[i].PeriodKey > fs[j].PeriodKey
		}
		return fs[i].GeneratedAt.After(fs[j].GeneratedAt)
	})
}

// MemoryHistory is a HistoryStore safe for concurrent use.
type MemoryHistory struct {
	mu sync.RWMutex
	h  History
}

// NewMemoryHistory returns an empty in-memory store.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{h: NewHistory()}
}

func (m *MemoryHistory) Get(_ context.Context, period Period, periodKey string) (Fortune, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.h.Get(period, periodKey)
	return f, ok, nil
}

func (m *MemoryHistory) Put(_ context.Context, period Period, periodKey string, f Fortune) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.h.Put(period, periodKey, f)
	return nil
}

// Snapshot returns a deep copy of the stored history.
func (m *MemoryHistory) Snapshot() History {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := NewHistory()
	for p, bucket := range m.h {
		for k, f := range bucket {
			out.Put(p, k, f)
		}
	}
	return out
}
