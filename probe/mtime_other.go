//go:build !linux && !darwin && !freebsd

package probe

import (
	"os"
	"time"
)

func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
