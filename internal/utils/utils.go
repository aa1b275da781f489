package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/beeep"
	log "github.com/sirupsen/logrus"
)

// ExpandTilde will resolve to the correct location on disk.
func ExpandTilde(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// notify is swapped out in tests.
var notify = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// SendNotification raises a desktop notification when enabled. Failures only warn.
func SendNotification(enabled bool, title string, message string) {
	if !enabled {
		return
	}
	if err := notify(title, message); err != nil {
		log.Warnf("Notification failed: %v", err)
	}
}
