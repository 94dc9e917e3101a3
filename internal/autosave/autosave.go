// Package autosave implements the periodic save policy: a dirty document
// with a bound path saves in place, an unbound one snapshots to a scratch
// directory. Failures are reported in the Result and never block; the
// caller's timer reschedules regardless. Scheduling itself lives with the
// UI timer loop so there is at most one pending tick at a time.
package autosave

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/texit/internal/document"
	"github.com/zjrosen/texit/internal/log"
)

// Interval bounds enforced at configuration time.
const (
	MinIntervalSecs     = 5
	MaxIntervalSecs     = 300
	DefaultIntervalSecs = 10
)

// ClampInterval normalizes a configured interval in seconds into the
// allowed range. Non-positive values fall back to the default.
func ClampInterval(secs int) time.Duration {
	switch {
	case secs <= 0:
		secs = DefaultIntervalSecs
	case secs < MinIntervalSecs:
		secs = MinIntervalSecs
	case secs > MaxIntervalSecs:
		secs = MaxIntervalSecs
	}
	return time.Duration(secs) * time.Second
}

// Outcome describes what a tick did.
type Outcome int

const (
	// Skipped means the document was clean, so nothing was written.
	Skipped Outcome = iota
	// Saved means the document was written to its bound path.
	Saved
	// Snapshotted means an unbound document was written to the scratch dir.
	Snapshotted
	// Failed means the write errored; Result.Err carries the cause.
	Failed
)

// Result reports a single autosave tick. Err is informational: a failed
// tick never interrupts editing and the next tick retries.
type Result struct {
	Outcome Outcome
	Path    string // destination written (Saved/Snapshotted) or attempted (Failed)
	Err     error
}

// DefaultScratchDir is where unbound documents snapshot to.
func DefaultScratchDir() string {
	return filepath.Join(os.TempDir(), "texit", "autosave")
}

// Tick applies the autosave policy to doc. A bound document saves to its
// own path and never anywhere else; an unbound one writes a timestamped
// snapshot under scratchDir and never touches any named file.
func Tick(doc *document.Document, scratchDir string, now time.Time) Result {
	if !doc.Dirty() {
		return Result{Outcome: Skipped}
	}

	if doc.Path() != "" {
		if err := doc.Save(); err != nil {
			log.ErrorErr(log.CatAutosave, "Autosave failed", err, "path", doc.Path())
			return Result{Outcome: Failed, Path: doc.Path(), Err: err}
		}
		log.Debug(log.CatAutosave, "Autosaved", "path", doc.Path())
		return Result{Outcome: Saved, Path: doc.Path()}
	}

	path, err := writeSnapshot(doc.Text(), scratchDir, now)
	if err != nil {
		log.ErrorErr(log.CatAutosave, "Snapshot failed", err, "dir", scratchDir)
		return Result{Outcome: Failed, Path: path, Err: err}
	}
	log.Debug(log.CatAutosave, "Snapshot written", "path", path)
	return Result{Outcome: Snapshotted, Path: path}
}

func writeSnapshot(text, scratchDir string, now time.Time) (string, error) {
	if scratchDir == "" {
		scratchDir = DefaultScratchDir()
	}
	if err := os.MkdirAll(scratchDir, 0o700); err != nil {
		return "", fmt.Errorf("creating scratch dir: %w", err)
	}
	path := filepath.Join(scratchDir, fmt.Sprintf("untitled_%d.txt", now.Unix()))
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return path, fmt.Errorf("writing snapshot: %w", err)
	}
	return path, nil
}
