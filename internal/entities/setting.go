package entities

import (
	"time"
)

// KVEntry is one row of the SQLite key-value store.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// Storage slots. Each slot holds one JSON document.
const (
	SlotLibrary          = "library"
	SlotSettings         = "settings"
	SlotReadingChallenge = "readingChallenge"

	// CorruptSlotSuffix names the slot an unreadable value is moved to.
	CorruptSlotSuffix = ".corrupt"
)
