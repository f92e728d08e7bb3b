package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func totalSeconds(a Age) int64 {
	days := a.Months*30 + a.Weeks*7 + a.Days
	return days*86400 + a.Hours*3600 + a.Minutes*60 + a.Seconds
}

func TestDecompose_String(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{"Zero", 0, "0 Months 0 Weeks 0 Days 0 Hours 0 Minutes 0 Seconds Since Install"},
		{"OneOfEach", 90061, "0 Months 0 Weeks 1 Days 1 Hours 1 Minutes 1 Seconds Since Install"},
		{"ThirtyOneDays", 2678400, "1 Months 0 Weeks 1 Days 0 Hours 0 Minutes 0 Seconds Since Install"},
		{"JustUnderADay", 86399, "0 Months 0 Weeks 0 Days 23 Hours 59 Minutes 59 Seconds Since Install"},
		{"TwoWeeksThreeDays", 17 * 86400, "0 Months 2 Weeks 3 Days 0 Hours 0 Minutes 0 Seconds Since Install"},
		{"TwentyNineDays", 29 * 86400, "0 Months 4 Weeks 1 Days 0 Hours 0 Minutes 0 Seconds Since Install"},
		{"OneYear", 365 * 86400, "12 Months 0 Weeks 5 Days 0 Hours 0 Minutes 0 Seconds Since Install"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decompose(tc.seconds).String())
		})
	}
}

func TestDecompose_Reassembles(t *testing.T) {
	for _, s := range []int64{0, 1, 59, 60, 3599, 3600, 86399, 86400, 90061, 604800, 2591999, 2592000, 2678400, 31536000, 123456789} {
		a := Decompose(s)
		assert.Equal(t, s, totalSeconds(a), "seconds=%d", s)

		assert.GreaterOrEqual(t, a.Seconds, int64(0))
		assert.Less(t, a.Seconds, int64(60))
		assert.Less(t, a.Minutes, int64(60))
		assert.Less(t, a.Hours, int64(24))
		assert.Less(t, a.Weeks*7+a.Days, int64(30))
	}
}

func TestDecompose_Negative(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{-1, "-1 Months 4 Weeks 1 Days 23 Hours 59 Minutes 59 Seconds Since Install"},
		{-90061, "-1 Months 4 Weeks 0 Days 22 Hours 58 Minutes 59 Seconds Since Install"},
		{-30 * 86400, "-1 Months 0 Weeks 0 Days 0 Hours 0 Minutes 0 Seconds Since Install"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Decompose(tc.seconds).String(), "seconds=%d", tc.seconds)
		assert.Equal(t, tc.seconds, totalSeconds(Decompose(tc.seconds)))
	}
}

func TestFormatAge_InstallInTheFuture(t *testing.T) {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "-1 Months 4 Weeks 1 Days 23 Hours 59 Minutes 59 Seconds Since Install",
		FormatAge(now.Add(1500*time.Millisecond), now))
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	install := now.Add(-(31*24*time.Hour + 1500*time.Millisecond))

	assert.Equal(t, "1 Months 0 Weeks 1 Days 0 Hours 0 Minutes 1 Seconds Since Install", FormatAge(install, now))
	assert.Equal(t, int64(0), ElapsedSeconds(now.Add(-999*time.Millisecond), now))
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Banner(&buf, "msg"))
	assert.Equal(t, "\n--- OS Installation Age ---\nmsg\n---------------------------\n\n", buf.String())
}
