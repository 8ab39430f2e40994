package storage

import "time"

const (
	snapshotBackupKey = "pricing:market_backup"
	curveStreamKey    = "pricing:curves:updates"

	// Stream is capped so a slow consumer cannot grow Redis unbounded.
	curveStreamMaxLen = 1000

	defaultReadBlock = 2 * time.Second
)
