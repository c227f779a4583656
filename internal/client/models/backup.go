package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/common"
)

// Backup is the export bundle. Each document is carried as its serialized
// JSON string, and an absent document is encoded as null.
type Backup struct {
	Profile        *string `json:"profile"`
	Settings       *string `json:"settings"`
	FortuneHistory *string `json:"fortuneHistory"`
	ExportDate     string  `json:"exportDate"`
}

// NewBackup wraps the raw documents; a nil slice becomes a null entry.
func NewBackup(profile, settings, history []byte, exportedAt time.Time) Backup {
	return Backup{
		Profile:        blob(profile),
		Settings:       blob(settings),
		FortuneHistory: blob(history),
		ExportDate:     exportedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

func blob(b []byte) *string {
	if b == nil {
		return nil
	}
	s := string(b)
	return &s
}

// ParseBackup decodes an export file. Only the top-level shape is checked.
func ParseBackup(data []byte) (Backup, error) {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("%w: invalid backup file: %v", common.ErrorValidation, err)
	}
	return b, nil
}

func (b Backup) Marshal() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}
