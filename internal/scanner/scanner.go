// Package scanner locates directories named exactly "venv" beneath a base path.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/k0nxt3d/pycleaner/internal/pathutil"
)

// MatchName is the directory name the scanner looks for. Exact,
// case-sensitive match only.
const MatchName = "venv"

// errLimitReached stops the walk once the result cap is hit.
var errLimitReached = errors.New("result limit reached")

// Service runs filesystem scans for venv directories.
type Service struct {
	logger *slog.Logger
	limit  int
}

// NewService creates a scanner service. limit caps the number of matches a
// single scan may return.
func NewService(logger *slog.Logger, limit int) *Service {
	return &Service{logger: logger, limit: limit}
}

// Scan normalizes rawPath and searches beneath it for directories named
// exactly "venv". Symlinked directories are never descended into. Matches
// are returned sorted lexicographically; Truncated is set when the result
// cap stopped the walk. Errors are reported in the result, never raised:
// a result with Error set always has an empty Found.
func (s *Service) Scan(ctx context.Context, rawPath string) ScanResult {
	base := pathutil.Normalize(rawPath)
	result := ScanResult{
		ID:       uuid.New().String(),
		BasePath: base,
		Found:    []string{},
	}

	if base == "" {
		result.Error = "Base path is empty."
		return result
	}
	info, err := os.Stat(base)
	if err != nil {
		result.Error = fmt.Sprintf("Path does not exist: %s", base)
		return result
	}
	if !info.IsDir() {
		result.Error = fmt.Sprintf("Path is not a directory: %s", base)
		return result
	}

	start := time.Now()
	found, truncated, err := s.walk(ctx, base)
	result.Duration = time.Since(start)

	if err != nil {
		// Partial results would be misleading; discard them.
		result.Error = fmt.Sprintf("Scan error: %v", err)
		return result
	}

	sort.Strings(found)
	result.Found = found
	result.Truncated = truncated

	s.logger.Info("scan completed",
		slog.String("scan_id", result.ID),
		slog.String("base_path", base),
		slog.Int("found", len(found)),
		slog.Bool("truncated", truncated),
		slog.Duration("duration", result.Duration),
	)
	return result
}

// walk performs a top-down traversal rooted at base. At each level the child
// directory list is filtered of symlinks before the match check, so a venv
// that is only reachable through a symlink is neither reported nor entered.
// A matched venv directory is still descended into: nested matches count.
func (s *Service) walk(ctx context.Context, base string) (found []string, truncated bool, err error) {
	var descend func(dir string) error
	descend = func(dir string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}

		var dirs []string
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil {
				// Unreadable entry: leave it out of the walk.
				continue
			}
			mode := info.Mode()
			if mode&fs.ModeSymlink != 0 || !mode.IsDir() {
				continue
			}
			dirs = append(dirs, entry.Name())
		}

		if slices.Contains(dirs, MatchName) {
			// Stop only when a match beyond the limit shows up, so a tree
			// holding exactly limit matches is not reported as truncated.
			if len(found) == s.limit {
				return errLimitReached
			}
			found = append(found, filepath.Join(dir, MatchName))
		}

		for _, name := range dirs {
			if err := descend(filepath.Join(dir, name)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := descend(base); err != nil {
		if errors.Is(err, errLimitReached) {
			return found, true, nil
		}
		return nil, false, err
	}
	return found, false, nil
}
