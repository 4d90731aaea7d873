package workday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCount(t *testing.T) {
	// 2024-01-01 is a Monday
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"monday to friday", date(2024, 1, 1), date(2024, 1, 5), 5},
		{"saturday to sunday", date(2024, 1, 6), date(2024, 1, 7), 0},
		{"friday to monday", date(2024, 1, 5), date(2024, 1, 8), 2},
		{"single weekday", date(2024, 1, 3), date(2024, 1, 3), 1},
		{"single saturday", date(2024, 1, 6), date(2024, 1, 6), 0},
		{"two full weeks", date(2024, 1, 1), date(2024, 1, 14), 10},
		{"sunday to saturday", date(2024, 1, 7), date(2024, 1, 13), 5},
		{"whole january 2024", date(2024, 1, 1), date(2024, 1, 31), 23},
		{"whole year 2024", date(2024, 1, 1), date(2024, 12, 31), 262},
		{"end before start", date(2024, 1, 5), date(2024, 1, 1), 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Count(c.start, c.end))
		})
	}
}

func TestCount_MatchesDailyWalk(t *testing.T) {
	start := date(2023, 12, 20)
	for span := 0; span < 60; span++ {
		end := start.AddDate(0, 0, span)

		want := 0
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if IsWorkingDay(d) {
				want++
			}
		}

		assert.Equal(t, want, Count(start, end), "span %d", span)
	}
}

func TestCount_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 5, Count(start, end))
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	ts := time.Date(2024, 3, 10, 20, 30, 0, 0, time.UTC) // 03:30 next day in WIB

	assert.Equal(t, date(2024, 3, 11), Date(ts, loc))
	assert.Equal(t, date(2024, 3, 10), Date(ts, time.UTC))
	assert.Equal(t, date(2024, 3, 10), Date(ts, nil))
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2024, time.February)

	assert.Equal(t, date(2024, 2, 1), first)
	assert.Equal(t, date(2024, 2, 29), last)
}
