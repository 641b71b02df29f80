// Package tzconv converts between UTC and local civil time for a single
// zone described by two annual transition rules: one starting daylight
// saving time, one returning to standard time.
//
// Timestamps are plain Unix epoch seconds. Local timestamps are
// "local-naive": they count seconds as if the local calendar fields were
// UTC, which is the usual representation on embedded targets with a single
// configured zone.
//
// A Converter caches the transition instants of the most recently queried
// year and recomputes them when a query lands in a different year, so every
// conversion is a pair of integer comparisons after at most one cheap
// recomputation. Conversions never allocate and never fail.
//
// A Converter is not safe for concurrent use. It is designed for exclusive
// ownership by a single execution context; callers that share one across
// goroutines must serialize access themselves.
package tzconv

import (
	"time"

	"github.com/tzclock/go-tzclock/internal/unixtime"
	"github.com/tzclock/go-tzclock/tzrule"
)

const (
	secondsPerMinute = 60
	secondsPerDay    = 24 * 60 * secondsPerMinute
)

// Converter converts timestamps between UTC and the local time of one zone.
type Converter struct {
	dst tzrule.Rule // rule that starts daylight saving time
	std tzrule.Rule // rule that returns to standard time

	cache cache
}

// cache holds the transition instants of a single year in both UTC and
// local-naive form. All four instants are recomputed together, so a valid
// cache is always internally consistent.
type cache struct {
	valid bool
	year  int

	dstUTC, stdUTC     int64
	dstLocal, stdLocal int64
}

// New returns a Converter for the zone described by the given rules.
// For a zone that does not observe daylight saving time, pass the same
// rule twice.
func New(dst, std tzrule.Rule) *Converter {
	return &Converter{dst: dst, std: std}
}

// Reconfigure replaces both rules and invalidates the cached transition
// instants. The next conversion recomputes them from the new rules, which
// lets firmware switch zones at runtime without recreating the Converter.
func (c *Converter) Reconfigure(dst, std tzrule.Rule) {
	c.dst = dst
	c.std = std
	c.cache = cache{}
}

// Rules returns copies of the configured rules, daylight first.
func (c *Converter) Rules() (dst, std tzrule.Rule) {
	return c.dst, c.std
}

// ToLocal converts a UTC timestamp to local time.
func (c *Converter) ToLocal(utc int64) int64 {
	local, _ := c.ToLocalRule(utc)
	return local
}

// ToLocalRule converts a UTC timestamp to local time and also returns a
// copy of the rule whose offset was applied, which carries the zone
// designation for display.
func (c *Converter) ToLocalRule(utc int64) (int64, tzrule.Rule) {
	c.refresh(unixtime.Year(utc))
	if inDST(utc, c.cache.dstUTC, c.cache.stdUTC) {
		return utc + int64(c.dst.Offset)*secondsPerMinute, c.dst
	}
	return utc + int64(c.std.Offset)*secondsPerMinute, c.std
}

// ToUTC converts a local timestamp to UTC.
//
// Local times near a transition are ambiguous and ToUTC does not detect
// them. During the hour skipped by a transition to daylight time the input
// does not exist on any clock and the result is simply wrong. During the
// hour repeated by a transition back to standard time the input occurs
// twice; ToUTC deterministically picks the earlier occurrence, i.e. the one
// before the transition. Avoid calling it with local times inside a
// transition window.
func (c *Converter) ToUTC(local int64) int64 {
	c.refresh(unixtime.Year(local))
	if inDST(local, c.cache.dstLocal, c.cache.stdLocal) {
		return local - int64(c.dst.Offset)*secondsPerMinute
	}
	return local - int64(c.std.Offset)*secondsPerMinute
}

// IsDSTAtUTC reports whether daylight saving time is in effect at the given
// UTC timestamp.
func (c *Converter) IsDSTAtUTC(utc int64) bool {
	c.refresh(unixtime.Year(utc))
	return inDST(utc, c.cache.dstUTC, c.cache.stdUTC)
}

// IsDSTAtLocal reports whether daylight saving time is in effect at the
// given local timestamp.
func (c *Converter) IsDSTAtLocal(local int64) bool {
	c.refresh(unixtime.Year(local))
	return inDST(local, c.cache.dstLocal, c.cache.stdLocal)
}

// inDST classifies t against the two transition instants of one year,
// given in the same representation as t (both UTC or both local).
//
// When the standard transition comes later in the year than the daylight
// one, the daylight interval lies inside the year (northern hemisphere).
// Otherwise it wraps around the year boundary (southern hemisphere), which
// is the complement of the standard interval. The same comparison covers
// both without a separate wrap-around branch.
func inDST(t, dst, std int64) bool {
	if std == dst {
		return false // daylight saving time not observed in this zone
	}
	if std > dst {
		return t >= dst && t < std
	}
	return !(t >= std && t < dst)
}

// refresh recomputes the cached transition instants if the cache does not
// cover the given year.
func (c *Converter) refresh(year int) {
	if c.cache.valid && c.cache.year == year {
		return
	}
	dstLocal := ruleInstant(c.dst, year)
	stdLocal := ruleInstant(c.std, year)
	c.cache = cache{
		valid:    true,
		year:     year,
		dstLocal: dstLocal,
		stdLocal: stdLocal,
		// Each transition's local bookkeeping uses the offset that was
		// active immediately before the change: standard time before
		// daylight time starts, daylight time before standard time resumes.
		dstUTC: dstLocal - int64(c.std.Offset)*secondsPerMinute,
		stdUTC: stdLocal - int64(c.dst.Offset)*secondsPerMinute,
	}
}

// ruleInstant resolves a rule to its local-naive transition instant in the
// given year.
//
// A "last occurrence" rule is rewritten as the first occurrence of the
// weekday in the following month minus seven days, which is valid for any
// Gregorian month length. A December rule rolls over into January of the
// next year before backing up.
func ruleInstant(r tzrule.Rule, year int) int64 {
	month := r.Month
	week := r.Week
	if week == tzrule.Last {
		month++
		if month > time.December {
			month = time.January
			year++
		}
		week = tzrule.First
	}

	// Start at day 1 of the target month, then advance to the week-th
	// occurrence of the rule's weekday.
	t := unixtime.FromDateTime(year, month, 1, r.Hour, 0, 0)
	t += int64(7*(int(week)-1)+int((r.Day-unixtime.Weekday(t)+7)%7)) * secondsPerDay
	if r.Week == tzrule.Last {
		t -= 7 * secondsPerDay
	}
	return t
}
