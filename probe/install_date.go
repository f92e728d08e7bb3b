// Package probe reads the filesystem timestamp used as the install date.
package probe

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

// DefaultRoot returns the filesystem root for the running OS.
func DefaultRoot() string {
	if runtime.GOOS == "windows" {
		drive := os.Getenv("SystemDrive")
		if drive == "" {
			drive = "C:"
		}
		return drive + `\`
	}
	return "/"
}

// InstallDate returns the last-modification time of root in local time.
// The mtime of the root entry stands in for the installation date; unrelated
// filesystem activity can move it.
func InstallDate(root string) (time.Time, error) {
	mtime, err := modTime(root)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not determine the modification time of %q: %w", root, err)
	}
	return mtime.Local(), nil
}
