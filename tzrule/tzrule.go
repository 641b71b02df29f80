// Package tzrule describes annual daylight saving transitions as declarative
// rules: the Nth (or last) occurrence of a weekday in a month, at a local
// wall-clock hour, switching the zone to a fixed UTC offset.
//
// A pair of rules - one starting daylight saving time, one returning to
// standard time - fully describes a zone for the purposes of this module.
// Rules can be written by hand or parsed from a POSIX TZ string with ParseTZ.
package tzrule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Week selects which occurrence of Rule.Day within Rule.Month a rule fires on.
type Week uint8

const (
	// Last means the last occurrence of the weekday in the month.
	Last Week = iota
	// First through Fourth mean the Nth occurrence of the weekday in the month.
	First
	Second
	Third
	Fourth
)

func (w Week) String() string {
	switch w {
	case Last:
		return "last"
	case First:
		return "first"
	case Second:
		return "second"
	case Third:
		return "third"
	case Fourth:
		return "fourth"
	default:
		return fmt.Sprintf("<undefined week (%d)>", uint8(w))
	}
}

// Rule describes one annual transition. It is a plain value type with no
// behavior beyond formatting.
//
// Hour is the local wall-clock hour at which the transition takes effect,
// expressed in the offset that was active immediately before the transition.
// Offset is the zone's UTC offset in minutes east of UTC once the rule is
// in effect.
//
// Fields are not validated. An out-of-range month, weekday or hour still
// resolves to a deterministic instant, just not a meaningful one. Keeping
// rules total avoids error paths in conversion code that runs on
// resource-constrained targets; callers own the well-formedness of their
// rules.
type Rule struct {
	Abbrev string       // zone designation for display, e.g. "EDT"
	Week   Week         // occurrence of Day within Month
	Day    time.Weekday // weekday the transition falls on
	Month  time.Month   // month the transition falls in
	Hour   int          // local wall-clock hour of the transition
	Offset int          // minutes east of UTC while the rule is in effect
}

func (r Rule) String() string {
	return fmt.Sprintf("%s (UTC%s), %s %s of %s at %02d:00 local",
		r.Abbrev, formatOffset(r.Offset), r.Week, r.Day, r.Month, r.Hour)
}

func formatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// ParseTZ parses a POSIX TZ string of the form
//
//	std offset [dst [offset] , start , end]
//
// into a pair of rules, e.g. "EST5EDT,M3.2.0/2,M11.1.0/2" or "NZST-12NZDT,M9.5.0,M4.1.0/3".
// Start and end must use the Mm.w.d[/h] form; w ranges from 1 to 5 where 5
// means the last occurrence of the weekday in the month. The transition hour
// defaults to 2. A string without a daylight part, such as "UTC0", yields two
// identical rules, which a converter treats as a fixed-offset zone.
//
// Julian day transition rules (Jn and n) have no week-of-month equivalent
// and are rejected, as are offsets and transition times with sub-minute or
// sub-hour precision.
func ParseTZ(s string) (dst, std Rule, err error) {
	stdAbbrev, rest, err := scanAbbrev(s)
	if err != nil {
		return Rule{}, Rule{}, fmt.Errorf("parse %q: standard designation: %w", s, err)
	}
	stdOffset, rest, err := scanOffset(rest)
	if err != nil {
		return Rule{}, Rule{}, fmt.Errorf("parse %q: standard offset: %w", s, err)
	}

	// The calendar fields matter even for a fixed zone: a converter still
	// resolves them to an instant, it just never observes daylight time
	// because both rules resolve identically.
	std = Rule{
		Abbrev: stdAbbrev,
		Week:   First,
		Day:    time.Sunday,
		Month:  time.January,
		Offset: stdOffset,
	}

	if rest == "" {
		return std, std, nil
	}

	dstAbbrev, rest, err := scanAbbrev(rest)
	if err != nil {
		return Rule{}, Rule{}, fmt.Errorf("parse %q: daylight designation: %w", s, err)
	}

	// POSIX default: daylight time is one hour ahead of standard time.
	dstOffset := stdOffset + 60
	if rest != "" && rest[0] != ',' {
		dstOffset, rest, err = scanOffset(rest)
		if err != nil {
			return Rule{}, Rule{}, fmt.Errorf("parse %q: daylight offset: %w", s, err)
		}
	}

	start, end, ok := strings.Cut(strings.TrimPrefix(rest, ","), ",")
	if rest == "" || rest[0] != ',' || !ok {
		return Rule{}, Rule{}, fmt.Errorf("parse %q: missing transition rules", s)
	}

	dst, err = parseTransition(start)
	if err != nil {
		return Rule{}, Rule{}, fmt.Errorf("parse %q: start rule: %w", s, err)
	}
	dst.Abbrev = dstAbbrev
	dst.Offset = dstOffset

	endRule, err := parseTransition(end)
	if err != nil {
		return Rule{}, Rule{}, fmt.Errorf("parse %q: end rule: %w", s, err)
	}
	endRule.Abbrev = std.Abbrev
	endRule.Offset = std.Offset

	return dst, endRule, nil
}

// scanAbbrev reads a zone designation from the front of s: either three or
// more letters, or an arbitrary <>-quoted name like "<+0330>".
func scanAbbrev(s string) (abbrev, rest string, err error) {
	if strings.HasPrefix(s, "<") {
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return "", "", fmt.Errorf("unterminated quoted designation")
		}
		return s[1:end], s[end+1:], nil
	}
	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i < 3 {
		return "", "", fmt.Errorf("designation must be at least three letters")
	}
	return s[:i], s[i:], nil
}

// scanOffset reads a POSIX offset of the form [+-]hh[:mm] from the front
// of s and returns it in minutes east of UTC. POSIX offsets count west of
// Greenwich, so the sign flips: "EST5" is UTC-05:00.
func scanOffset(s string) (minutes int, rest string, err error) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && (isDigit(s[i]) || s[i] == ':') {
		i++
	}
	field, rest := s[:i], s[i:]
	if field == "" || field == "+" || field == "-" {
		return 0, "", fmt.Errorf("missing offset")
	}

	sign := 1
	switch field[0] {
	case '+':
		field = field[1:]
	case '-':
		field = field[1:]
		sign = -1
	}

	parts := strings.Split(field, ":")
	if len(parts) > 2 {
		return 0, "", fmt.Errorf("offset %q: seconds precision not supported", field)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("offset %q: %w", field, err)
	}
	var mins int
	if len(parts) == 2 {
		mins, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, "", fmt.Errorf("offset %q: %w", field, err)
		}
	}

	// Negate to turn seconds-west into minutes-east.
	return -sign * (hours*60 + mins), rest, nil
}

// parseTransition parses an Mm.w.d[/h] transition rule into the calendar
// fields of a Rule. Abbrev and Offset are left for the caller.
func parseTransition(s string) (Rule, error) {
	rule, hour, hasHour := strings.Cut(s, "/")
	if !strings.HasPrefix(rule, "M") {
		return Rule{}, fmt.Errorf("rule %q: only Mm.w.d rules are supported", s)
	}

	parts := strings.Split(rule[1:], ".")
	if len(parts) != 3 {
		return Rule{}, fmt.Errorf("rule %q: want M<month>.<week>.<day>", s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: month: %w", s, err)
	}
	week, err := strconv.Atoi(parts[1])
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: week: %w", s, err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: day: %w", s, err)
	}
	if week < 1 || week > 5 {
		return Rule{}, fmt.Errorf("rule %q: week must be 1-5", s)
	}

	r := Rule{
		Week:  Week(week),
		Day:   time.Weekday(day),
		Month: time.Month(month),
		Hour:  2, // POSIX default transition time
	}
	if week == 5 {
		// POSIX week 5 means the last occurrence of the weekday.
		r.Week = Last
	}

	if hasHour {
		if strings.Contains(hour, ":") {
			return Rule{}, fmt.Errorf("rule %q: sub-hour transition times not supported", s)
		}
		r.Hour, err = strconv.Atoi(hour)
		if err != nil {
			return Rule{}, fmt.Errorf("rule %q: hour: %w", s, err)
		}
	}
	return r, nil
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
