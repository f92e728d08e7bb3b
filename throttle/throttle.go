// Package throttle persists the time of the last successful report delivery
// so that at most one email goes out per rolling window.
//
// Runs are not coordinated: two processes started together can both decide to
// send and both overwrite the file.
package throttle

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Window is the minimum gap between two deliveries.
const Window = 24 * time.Hour

// Store reads and writes the throttle file at Path.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// DefaultPath returns ~/.os_age_last_email.txt.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".os_age_last_email.txt"), nil
}

// LastSent returns the recorded delivery time.
func (s *Store) LastSent() (time.Time, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return time.Time{}, err
	}
	text := strings.TrimSpace(string(data))
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", s.Path, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, fmt.Errorf("parsing %s: %q is not a timestamp", s.Path, text)
	}
	// Stamps carry microseconds; float64 cannot hold more at this magnitude.
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(math.Round(frac*1e6))*1000), nil
}

// ShouldSend reports whether more than Window has passed since the last
// recorded delivery. A missing, unreadable or corrupt file means yes.
func (s *Store) ShouldSend(now time.Time) bool {
	last, err := s.LastSent()
	if err != nil {
		return true
	}
	return now.Sub(last) > Window
}

// RecordSent overwrites the file with now as decimal seconds since the epoch.
func (s *Store) RecordSent(now time.Time) error {
	stamp := fmt.Sprintf("%d.%06d", now.Unix(), now.Nanosecond()/1000)
	if err := os.WriteFile(s.Path, []byte(stamp), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}
	return nil
}
