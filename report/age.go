// Package report renders the time elapsed since install.
package report

import (
	"fmt"
	"io"
	"time"
)

const (
	secondsPerDay = 86400
	daysPerMonth  = 30
	daysPerWeek   = 7
)

// Age is an elapsed duration split into fixed units. A month is always 30 days.
type Age struct {
	Months  int64
	Weeks   int64
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// Decompose splits a count of whole seconds. Negative input is not clamped;
// division floors, so every unit below months stays in range.
func Decompose(total int64) Age {
	totalDays := floorDiv(total, secondsPerDay)
	rem := floorMod(totalDays, daysPerMonth)
	return Age{
		Months:  floorDiv(totalDays, daysPerMonth),
		Weeks:   rem / daysPerWeek,
		Days:    rem % daysPerWeek,
		Hours:   floorMod(floorDiv(total, 3600), 24),
		Minutes: floorMod(floorDiv(total, 60), 60),
		Seconds: floorMod(total, 60),
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

func (a Age) String() string {
	return fmt.Sprintf("%d Months %d Weeks %d Days %d Hours %d Minutes %d Seconds Since Install",
		a.Months, a.Weeks, a.Days, a.Hours, a.Minutes, a.Seconds)
}

// ElapsedSeconds returns now - install in whole seconds, truncated toward zero.
func ElapsedSeconds(install, now time.Time) int64 {
	return int64(now.Sub(install) / time.Second)
}

// FormatAge returns the report string for an install time.
func FormatAge(install, now time.Time) string {
	return Decompose(ElapsedSeconds(install, now)).String()
}

// Banner writes msg inside the console border.
func Banner(w io.Writer, msg string) error {
	_, err := fmt.Fprintf(w, "\n--- OS Installation Age ---\n%s\n---------------------------\n\n", msg)
	return err
}
