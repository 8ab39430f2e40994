package storage

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// MemoryStore implements the Store interface using in-memory storage.
// It backs tests and single-process deployments where Redis is not
// configured.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot *MarketSnapshot
	updates  []CurveUpdate
	// trimmed counts updates dropped by the cap, so cursors stay
	// absolute across trims like Redis stream IDs do.
	trimmed int
}

// NewMemoryStore creates a new in-memory store instance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) SaveSnapshot(snapshot *MarketSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("market snapshot is nil")
	}
	ms.mu.Lock()
	ms.snapshot = snapshot
	ms.mu.Unlock()
	return nil
}

func (ms *MemoryStore) LoadSnapshot() (*MarketSnapshot, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.snapshot, nil
}

func (ms *MemoryStore) PublishCurveUpdate(update *CurveUpdate) error {
	if update == nil {
		return fmt.Errorf("curve update is nil")
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()

	u := *update
	if u.PublishedAt.IsZero() {
		u.PublishedAt = time.Now().UTC()
	}
	ms.updates = append(ms.updates, u)
	if len(ms.updates) > curveStreamMaxLen {
		ms.trimmed += len(ms.updates) - curveStreamMaxLen
		ms.updates = ms.updates[len(ms.updates)-curveStreamMaxLen:]
	}
	return nil
}

// ReadCurveUpdates returns all updates after sinceID without blocking.
// The cursor is the absolute count of updates published so far, ""
// meaning from the start. A cursor older than the oldest retained
// entry resumes from that entry, so a trim loses only the dropped
// updates themselves.
func (ms *MemoryStore) ReadCurveUpdates(sinceID string) ([]CurveUpdate, string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	start := 0
	if sinceID != "" {
		n, err := strconv.Atoi(sinceID)
		if err != nil {
			return nil, sinceID, fmt.Errorf("bad stream cursor %q: %w", sinceID, err)
		}
		start = n
	}

	total := ms.trimmed + len(ms.updates)
	if start >= total {
		return nil, strconv.Itoa(total), nil
	}

	idx := start - ms.trimmed
	if idx < 0 {
		idx = 0
	}

	out := make([]CurveUpdate, len(ms.updates)-idx)
	copy(out, ms.updates[idx:])
	return out, strconv.Itoa(total), nil
}

func (ms *MemoryStore) Close() error {
	return nil
}
