// Package browser opens the local UI in the user's default browser.
package browser

import (
	"log"
	"os/exec"
	"runtime"
	"time"
)

// OpenAfter launches the platform browser opener for url after the given
// delay, once the server has had time to start listening. Failures are
// logged, never fatal.
func OpenAfter(delay time.Duration, url string, logger *log.Logger) *time.Timer {
	if logger == nil {
		logger = log.Default()
	}
	return time.AfterFunc(delay, func() {
		if err := open(url); err != nil {
			logger.Printf("[browser] open %s: %v", url, err)
		}
	})
}

func open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
