package entities

import "time"

const SnapshotVersion = "1.0"

// Snapshot is the export envelope: the whole library and settings in one blob.
type Snapshot struct {
	Library    []Book    `json:"library" yaml:"library"`
	Settings   Settings  `json:"settings" yaml:"settings"`
	ExportedAt time.Time `json:"exportedAt" yaml:"exportedAt"`
	Version    string    `json:"version" yaml:"version"`
}
