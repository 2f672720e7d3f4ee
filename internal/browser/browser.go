// Package browser opens the default web browser.
package browser

import (
	"log/slog"
	"os/exec"
	"runtime"
	"time"
)

// Open launches the default browser at url after a short delay, giving the
// HTTP listener time to come up. Best effort: failures are logged, never fatal.
func Open(logger *slog.Logger, url string) {
	time.Sleep(500 * time.Millisecond)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		logger.Warn("could not open browser", slog.String("url", url), slog.Any("error", err))
	}
}
