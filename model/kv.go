// model/kv.go
package model

import "time"

// KVRecord is the single-slot key-value storage backing user progress.
// Values are opaque JSON documents; the progress service owns their schema.
type KVRecord struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}
