package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type TimingEntry struct {
	Stage    string    `json:"stage"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end,omitempty"`
	Duration string    `json:"duration,omitempty"`
}

// Timing holds per-stage wall-clock times for one run.
type Timing struct {
	mu      sync.Mutex
	RunID   string        `json:"run_id"`
	Entries []TimingEntry `json:"entries"`
}

func timingPath(dir string) string {
	return filepath.Join(dir, "timing.json")
}

func NewTiming(runID string) *Timing {
	return &Timing{RunID: runID}
}

// LoadTiming reads timing data written by the last run.
func LoadTiming(dir string) (*Timing, error) {
	data, err := os.ReadFile(timingPath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Timing{}, nil
		}
		return nil, err
	}
	var t Timing
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// AddStart appends a new entry for the given stage.
func (t *Timing) AddStart(stage string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Entries = append(t.Entries, TimingEntry{
		Stage: stage,
		Start: time.Now(),
	})
}

// AddEnd closes the most recent open entry for stage and returns its
// duration.
func (t *Timing) AddEnd(stage string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.Entries) - 1; i >= 0; i-- {
		if t.Entries[i].Stage == stage && t.Entries[i].End.IsZero() {
			t.Entries[i].End = time.Now()
			d := t.Entries[i].End.Sub(t.Entries[i].Start)
			t.Entries[i].Duration = FormatDuration(d)
			return d
		}
	}
	return 0
}

// Lookup returns the formatted duration of the latest finished entry for stage.
func (t *Timing) Lookup(stage string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.Entries) - 1; i >= 0; i-- {
		if t.Entries[i].Stage == stage && t.Entries[i].Duration != "" {
			return t.Entries[i].Duration
		}
	}
	return ""
}

// Flush writes the in-memory timing data to disk.
func (t *Timing) Flush(dir string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(timingPath(dir), data, 0644)
}

func FormatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", m, s)
}
