//go:build linux || darwin || freebsd

package probe

import (
	"time"

	"golang.org/x/sys/unix"
)

func modTime(path string) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, err
	}
	return time.Unix(st.Mtim.Unix()), nil
}
