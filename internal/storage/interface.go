package storage

import (
	"time"
)

// Store defines the interface for market snapshot backup and the live
// curve update stream.
type Store interface {
	SaveSnapshot(snapshot *MarketSnapshot) error
	LoadSnapshot() (*MarketSnapshot, error)
	PublishCurveUpdate(update *CurveUpdate) error
	// ReadCurveUpdates returns updates published after sinceID, blocking
	// up to the store's read block when none are pending. The returned
	// id is the cursor for the next call.
	ReadCurveUpdates(sinceID string) ([]CurveUpdate, string, error)
	Close() error
}

type StoreOptions struct {
	DefaultTTL time.Duration
	ReadBlock  time.Duration
}

func DefaultStoreOptions() *StoreOptions {
	return &StoreOptions{
		DefaultTTL: 24 * time.Hour,
		ReadBlock:  defaultReadBlock,
	}
}
