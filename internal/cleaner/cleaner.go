// Package cleaner removes previously discovered venv directories.
package cleaner

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/k0nxt3d/pycleaner/internal/pathutil"
	"github.com/k0nxt3d/pycleaner/internal/scanner"
)

// Skip reasons for per-item rejections.
const (
	ReasonNotNamedVenv  = "Skipped: not named 'venv'"
	ReasonDoesNotExist  = "Skipped: does not exist"
	ReasonNotADirectory = "Skipped: not a directory"
	ReasonIsASymlink    = "Skipped: is a symlink"
)

// Failure records why one path was not deleted.
type Failure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Outcome summarizes a batch deletion. Partial success is the normal case,
// not an error state.
type Outcome struct {
	ID           string        `json:"id"`
	DeletedCount int           `json:"deleted_count"`
	Failures     []Failure     `json:"failures"`
	Duration     time.Duration `json:"duration"`
}

// Service deletes venv directories with per-item guardrails.
type Service struct {
	logger *slog.Logger
}

// NewService creates a cleaner service.
func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// Clean validates and removes each path independently. A path is removed only
// if its basename is exactly "venv", it exists, it is a directory, and it is
// not a symlink; anything else is recorded as a failure and skipped. Removal
// errors are recorded with the underlying message and never abort the batch.
func (s *Service) Clean(paths []string) Outcome {
	start := time.Now()
	outcome := Outcome{
		ID:       uuid.New().String(),
		Failures: []Failure{},
	}

	for _, raw := range paths {
		p := pathutil.Normalize(raw)

		if filepath.Base(p) != scanner.MatchName {
			outcome.Failures = append(outcome.Failures, Failure{Path: p, Reason: ReasonNotNamedVenv})
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			outcome.Failures = append(outcome.Failures, Failure{Path: p, Reason: ReasonDoesNotExist})
			continue
		}
		if !info.IsDir() {
			outcome.Failures = append(outcome.Failures, Failure{Path: p, Reason: ReasonNotADirectory})
			continue
		}
		if lst, err := os.Lstat(p); err == nil && lst.Mode()&fs.ModeSymlink != 0 {
			outcome.Failures = append(outcome.Failures, Failure{Path: p, Reason: ReasonIsASymlink})
			continue
		}

		if err := os.RemoveAll(p); err != nil {
			outcome.Failures = append(outcome.Failures, Failure{Path: p, Reason: err.Error()})
			continue
		}

		outcome.DeletedCount++
		s.logger.Info("deleted venv directory", slog.String("path", p))
	}

	outcome.Duration = time.Since(start)
	s.logger.Info("clean completed",
		slog.String("clean_id", outcome.ID),
		slog.Int("deleted", outcome.DeletedCount),
		slog.Int("failed", len(outcome.Failures)),
		slog.Duration("duration", outcome.Duration),
	)
	return outcome
}
