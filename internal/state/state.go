// Package state keeps the record of the most recent run under the
// working directory's .code2tutorial folder.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DirName is the per-project working folder for config, cache and run records.
const DirName = ".code2tutorial"

const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
	StatusInterrupted = "interrupted"
)

type State struct {
	RunID      string    `json:"run_id"`
	Project    string    `json:"project"`
	StageIndex int       `json:"stage_index"`
	Stage      string    `json:"stage,omitempty"`
	Status     string    `json:"status"` // running, completed, failed, interrupted
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Dir returns the working folder inside workDir.
func Dir(workDir string) string {
	return filepath.Join(workDir, DirName)
}

// EnsureDir creates dir if needed.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

func statePath(dir string) string {
	return filepath.Join(dir, "state.json")
}

// NewRun starts a fresh record with a new run ID.
func NewRun(project string) *State {
	return &State{
		RunID:     uuid.NewString(),
		Project:   project,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
}

// Load reads the last run record. A missing file yields an empty State
// whose RunID is "".
func Load(dir string) (*State, error) {
	data, err := os.ReadFile(statePath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &State{}, nil
		}
		return nil, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", statePath(dir), err)
	}
	return &s, nil
}

func (s *State) Save(dir string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(statePath(dir), data, 0644)
}

// Enter records that stage idx is about to run.
func (s *State) Enter(idx int, name string) {
	s.StageIndex = idx
	s.Stage = name
}

func (s *State) Complete() {
	s.Status = StatusCompleted
	s.Error = ""
	s.FinishedAt = time.Now()
}

func (s *State) Fail(err error) {
	s.Status = StatusFailed
	if err != nil {
		s.Error = err.Error()
	}
	s.FinishedAt = time.Now()
}

func (s *State) Interrupt() {
	s.Status = StatusInterrupted
	s.FinishedAt = time.Now()
}
