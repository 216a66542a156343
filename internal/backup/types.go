package backup

import "time"

// Config controls periodic snapshots of the on-disk store.
type Config struct {
	Enabled  bool
	Interval time.Duration
	Dir      string
	KeepLast int
}

// Snapshotter is the minimal snapshot contract the manager needs from the
// store.
type Snapshotter interface {
	DBPath() string
	SnapshotTo(dstPath string) error
}
