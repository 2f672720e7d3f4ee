package scanner

import "time"

// ScanResult summarizes the outcome of a filesystem scan.
type ScanResult struct {
	ID        string        `json:"id"`
	BasePath  string        `json:"base_path"`
	Found     []string      `json:"found"`
	Truncated bool          `json:"truncated"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
}
