package stats

import (
	"strconv"
	"strings"
	"time"
)

// Calendar approximation used for ages. These are fixed divisors, not
// calendar-aware arithmetic, so leap years and month lengths are ignored.
const (
	daysPerYear   = 365
	daysPerMonth  = 30
	secondsPerDay = 24 * 60 * 60
)

// Age is an approximate age split into years, months and days.
type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// AgeAt returns the age of something born at birth as of now. Elapsed time
// is counted in whole days; a birth date after now yields a zero age.
// Seconds come from Unix() because time.Duration saturates after ~292 years.
func AgeAt(birth, now time.Time) Age {
	secs := now.Unix() - birth.Unix()
	if now.Nanosecond() < birth.Nanosecond() {
		secs--
	}
	if secs < 0 {
		return Age{}
	}
	return AgeFromDays(int(secs / secondsPerDay))
}

// AgeFromDays decomposes a day count: 365-day years, then 30-day months from
// the rest of the year, then the remaining days.
func AgeFromDays(days int) Age {
	rest := days % daysPerYear
	return Age{
		Years:  days / daysPerYear,
		Months: rest / daysPerMonth,
		Days:   rest % daysPerMonth,
	}
}

// Russian word forms for age units.
var (
	YearForms  = WordForms{"год", "года", "лет"}
	MonthForms = WordForms{"месяц", "месяца", "месяцев"}
	DayForms   = WordForms{"день", "дня", "дней"}
)

// UnknownAge is shown when the birth date is not recorded.
const UnknownAge = "Неизвестно"

// FormatAge renders an age such as "2 года 3 месяца". Days are only shown for
// ages under a year. A nil age renders as UnknownAge.
func FormatAge(a *Age) string {
	if a == nil {
		return UnknownAge
	}

	var parts []string
	if a.Years > 0 {
		parts = append(parts, countPhrase(a.Years, YearForms))
	}
	if a.Months > 0 {
		parts = append(parts, countPhrase(a.Months, MonthForms))
	}
	if a.Days > 0 && a.Years == 0 {
		parts = append(parts, countPhrase(a.Days, DayForms))
	}
	// A same-day hatchling reads "0 дней" rather than an empty string.
	if len(parts) == 0 {
		return countPhrase(0, DayForms)
	}
	return strings.Join(parts, " ")
}

func countPhrase(n int, forms WordForms) string {
	return strconv.Itoa(n) + " " + Pluralize(n, forms)
}
