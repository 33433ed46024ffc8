package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// ScriptRun is one captured execution of an installation script. Output is
// stored sanitized: the transcript sanitizer runs before anything is
// persisted, so reads never re-clean.
type ScriptRun struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	ScriptName string    `json:"script_name" gorm:"index"`
	Host       string    `json:"host"`
	Status     RunStatus `json:"status"`
	Output     string    `json:"output"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *ScriptRun) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = RunStatusRunning
	}
	return
}

// Finished reports whether the run reached a terminal status.
func (r *ScriptRun) Finished() bool {
	return r.Status == RunStatusSucceeded || r.Status == RunStatusFailed
}
