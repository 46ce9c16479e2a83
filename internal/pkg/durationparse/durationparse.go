// Package durationparse converts the heterogeneous duration strings found
// in field reports ("1 hr 20 mins", "01:20:00", "4800") into seconds.
//
// Upstream data is best-effort user entry, so the free-text path is lenient
// by policy: an unparseable string yields zero seconds, not an error. The
// tagged Kind makes that branch explicit instead of an accidental
// regex-no-match.
package durationparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies which alternative matched the input.
type Kind int

const (
	Unparseable Kind = iota
	ColonFormat
	FreeText
	NumericSeconds
)

func (k Kind) String() string {
	switch k {
	case ColonFormat:
		return "colon"
	case FreeText:
		return "freetext"
	case NumericSeconds:
		return "seconds"
	default:
		return "unparseable"
	}
}

// Result is a tagged parse outcome. Seconds is never negative.
type Result struct {
	Kind    Kind
	Seconds int
}

var (
	hoursRe   = regexp.MustCompile(`(?i)(\d+)\s*h(?:rs?|ours?)?`)
	minutesRe = regexp.MustCompile(`(?i)(\d+)\s*m(?:ins?|inutes?)?`)
	secondsRe = regexp.MustCompile(`(?i)(\d+)\s*s(?:ecs?|econds?)?`)
)

// Parse attempts the alternatives in order: exact H:MM:SS colon format,
// free text with hour/minute/second tokens, then a bare number of seconds.
func Parse(input string) Result {
	s := strings.TrimSpace(input)
	if s == "" {
		return Result{Kind: Unparseable}
	}

	if r, ok := parseColon(s); ok {
		return r
	}
	if r, ok := parseFreeText(s); ok {
		return r
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return Result{Kind: NumericSeconds, Seconds: n}
	}
	return Result{Kind: Unparseable}
}

// Seconds is the lenient entry point used by aggregation: whatever the
// input, it returns a non-negative second count.
func Seconds(input string) int {
	return Parse(input).Seconds
}

func parseColon(s string) (Result, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Result{}, false
	}
	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return Result{}, false
		}
		vals[i] = n
	}
	if vals[1] > 59 || vals[2] > 59 {
		return Result{}, false
	}
	return Result{Kind: ColonFormat, Seconds: vals[0]*3600 + vals[1]*60 + vals[2]}, true
}

func parseFreeText(s string) (Result, bool) {
	// Each unit is optional and independently zero-defaulted, but at least
	// one must match.
	hours := extract(hoursRe, s)
	minutes := extract(minutesRe, s)
	seconds := extract(secondsRe, s)
	if hours < 0 && minutes < 0 && seconds < 0 {
		return Result{}, false
	}
	total := max(hours, 0)*3600 + max(minutes, 0)*60 + max(seconds, 0)
	return Result{Kind: FreeText, Seconds: total}, true
}

func extract(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}
