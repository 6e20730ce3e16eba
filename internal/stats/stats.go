// Package stats derives per-profile summaries from care entries: totals,
// entry date range, latest weight and its change, last feeding and shedding
// dates, and the reptile's approximate age.
package stats

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/repticare/pkg/types"
)

// Summary is the derived view of one profile. Nil pointers mean the value is
// undefined for the given input.
type Summary struct {
	TotalEntries   int        `json:"totalEntries"`
	FirstEntryDate *time.Time `json:"firstEntryDate,omitempty"`
	LastEntryDate  *time.Time `json:"lastEntryDate,omitempty"`
	LastWeight     *string    `json:"lastWeight,omitempty"`
	WeightChange   *float64   `json:"weightChange,omitempty"`
	LastFeeding    *time.Time `json:"lastFeeding,omitempty"`
	LastShedding   *time.Time `json:"lastShedding,omitempty"`
	Age            *Age       `json:"age,omitempty"`
}

// Compute builds the Summary for p from its entries as of now. Entries that
// belong to another profile are ignored. Entries with equal dates keep their
// input order, so among same-day weighings the earlier-recorded one counts as
// latest.
func Compute(p types.Profile, entries []types.Entry, now time.Time) Summary {
	own := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ProfileID == p.ID {
			own = append(own, e)
		}
	}

	s := Summary{TotalEntries: len(own)}

	if p.BirthDate != nil {
		age := AgeAt(*p.BirthDate, now)
		s.Age = &age
	}

	if len(own) == 0 {
		return s
	}

	asc := sortByDate(own, false)
	s.FirstEntryDate = ptr(asc[0].Date)
	s.LastEntryDate = ptr(asc[len(asc)-1].Date)

	desc := sortByDate(own, true)

	weighed := filter(desc, types.Entry.HasWeight)
	if len(weighed) > 0 {
		latest := weighed[0]
		s.LastWeight = ptr(latest.Weight)

		// The previous weighing is the newest one that is not the latest entry.
		for _, prev := range weighed[1:] {
			if prev.ID == latest.ID {
				continue
			}
			// Huge stored readings can overflow; an infinite change stays undefined.
			if d := ParseWeight(latest.Weight) - ParseWeight(prev.Weight); !math.IsInf(d, 0) && !math.IsNaN(d) {
				s.WeightChange = ptr(d)
			}
			break
		}
	}

	if fed := filter(desc, types.Entry.HasFeeding); len(fed) > 0 {
		s.LastFeeding = ptr(fed[0].Date)
	}

	shed := filter(desc, func(e types.Entry) bool { return e.Type == types.EntryShedding })
	if len(shed) > 0 {
		s.LastShedding = ptr(shed[0].Date)
	}

	return s
}

// ParseWeight reads the leading decimal number of s, ignoring surrounding
// whitespace and any trailing unit ("120 g" is 120). It returns 0 when s does
// not start with a number.
func ParseWeight(s string) float64 {
	s = strings.TrimSpace(s)
	end := numericPrefix(s)
	for end > 0 {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v
		}
		end--
	}
	return 0
}

// numericPrefix returns the length of the longest prefix of s made of a sign,
// digits, one decimal point and an exponent.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		start := j
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j > start {
			i = j
		}
	}
	return i
}

// sortByDate returns a stably sorted copy of entries.
func sortByDate(entries []types.Entry, desc bool) []types.Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b types.Entry) int {
		if desc {
			return b.Date.Compare(a.Date)
		}
		return a.Date.Compare(b.Date)
	})
	return out
}

func filter(entries []types.Entry, keep func(types.Entry) bool) []types.Entry {
	var out []types.Entry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
