package unixtime

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFromDateTime(t *testing.T) {
	cases := []struct {
		year                      int
		month                     time.Month
		day, hour, minute, second int
		want                      int64
	}{
		{1970, time.January, 1, 0, 0, 0, 0},
		{1970, time.January, 2, 0, 0, 0, 86400},
		{1969, time.December, 31, 23, 59, 59, -1},
		{2023, time.March, 12, 7, 0, 0, 1678604400},
		{2023, time.November, 5, 6, 0, 0, 1699164000},
		{2020, time.February, 29, 12, 30, 15, 1582979415},
		{2000, time.March, 1, 0, 0, 0, 951868800},  // leap century year
		{1900, time.March, 1, 0, 0, 0, -2203891200}, // non-leap century year
	}

	for _, c := range cases {
		got := FromDateTime(c.year, c.month, c.day, c.hour, c.minute, c.second)
		if got != c.want {
			t.Errorf("FromDateTime(%d, %v, %d, %d, %d, %d) = %d, want %d",
				c.year, c.month, c.day, c.hour, c.minute, c.second, got, c.want)
		}
	}
}

func TestDate(t *testing.T) {
	type date struct {
		Year  int
		Month time.Month
		Day   int
	}
	cases := []struct {
		unix int64
		want date
	}{
		{0, date{1970, time.January, 1}},
		{-1, date{1969, time.December, 31}},
		{86399, date{1970, time.January, 1}},
		{1678604400, date{2023, time.March, 12}},
		{1582979415, date{2020, time.February, 29}},
		{1709164800, date{2024, time.February, 29}},
		{951868800, date{2000, time.March, 1}},
		{1703980800, date{2023, time.December, 31}},
	}

	for _, c := range cases {
		y, m, d := Date(c.unix)
		got := date{y, m, d}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("Date(%d) mismatch (-want +got):\n%s", c.unix, diff)
		}
	}
}

func TestDateInvertsFromDateTime(t *testing.T) {
	// Walk a few years around a leap year, one day at a time.
	unix := FromDateTime(2019, time.January, 1, 0, 0, 0)
	end := FromDateTime(2022, time.January, 1, 0, 0, 0)
	for ; unix < end; unix += 86400 {
		y, m, d := Date(unix)
		if got := FromDateTime(y, m, d, 0, 0, 0); got != unix {
			t.Fatalf("FromDateTime(Date(%d)) = %d", unix, got)
		}
	}
}

func TestWeekday(t *testing.T) {
	cases := []struct {
		unix int64
		want time.Weekday
	}{
		{0, time.Thursday}, // 1970-01-01
		{-86400, time.Wednesday},
		{1678604400, time.Sunday},   // 2023-03-12
		{1699164000, time.Sunday},   // 2023-11-05
		{1703980800, time.Sunday},   // 2023-12-31
		{1704067200, time.Monday},   // 2024-01-01
		{1582979415, time.Saturday}, // 2020-02-29
	}

	for _, c := range cases {
		if got := Weekday(c.unix); got != c.want {
			t.Errorf("Weekday(%d) = %v, want %v", c.unix, got, c.want)
		}
	}
}

func TestYear(t *testing.T) {
	if got := Year(1703980800); got != 2023 {
		t.Errorf("Year(1703980800) = %d, want 2023", got)
	}
	if got := Year(1704067200); got != 2024 {
		t.Errorf("Year(1704067200) = %d, want 2024", got)
	}
}
