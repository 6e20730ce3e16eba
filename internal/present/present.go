// Package present holds the display-side rules for repticare: which optional
// fields an entry form offers per type, Russian labels, date and weight
// formatting, and the newest-first ordering of entry lists. The repository
// and the statistics engine never consult it.
package present

import (
	"slices"
	"strconv"
	"time"

	"github.com/mesh-intelligence/repticare/pkg/types"
)

// Field names an optional entry field.
type Field string

const (
	FieldWeight      Field = "weight"
	FieldTemperature Field = "temperature"
	FieldHumidity    Field = "humidity"
	FieldFeeding     Field = "feeding"
	FieldNotes       Field = "notes"
)

// applicableFields lists the measurement fields suggested for each type.
// Notes are offered for every type and are not listed here.
var applicableFields = map[types.EntryType][]Field{
	types.EntryCheckup:     {FieldWeight, FieldTemperature, FieldHumidity, FieldFeeding},
	types.EntryWeight:      {FieldWeight},
	types.EntryFeeding:     {FieldFeeding},
	types.EntryEnvironment: {FieldTemperature, FieldHumidity},
	types.EntryShedding:    nil,
	types.EntryMedication:  nil,
	types.EntryOther:       nil,
}

// ApplicableFields returns the optional fields a form should offer for t,
// always ending with FieldNotes. Unknown types get notes only.
func ApplicableFields(t types.EntryType) []Field {
	return append(slices.Clone(applicableFields[t]), FieldNotes)
}

var entryTypeLabels = map[types.EntryType]string{
	types.EntryCheckup:     "Осмотр",
	types.EntryWeight:      "Взвешивание",
	types.EntryFeeding:     "Кормление",
	types.EntryShedding:    "Линька",
	types.EntryEnvironment: "Параметры среды",
	types.EntryMedication:  "Лечение",
	types.EntryOther:       "Другое",
}

// EntryTypeLabel returns the Russian label for t, or t itself when unknown.
func EntryTypeLabel(t types.EntryType) string {
	if l, ok := entryTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

var genderLabels = map[types.Gender]string{
	types.GenderMale:    "Самец",
	types.GenderFemale:  "Самка",
	types.GenderUnknown: "Неизвестно",
}

// GenderLabel returns the Russian label for g.
func GenderLabel(g types.Gender) string {
	if l, ok := genderLabels[g]; ok {
		return l
	}
	return genderLabels[types.GenderUnknown]
}

// monthsGenitive are month names as they appear after a day number.
var monthsGenitive = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// NoData is shown in place of a value that is not recorded.
const NoData = "Нет данных"

// FormatDate renders t as "5 марта 2024" on the local calendar, whatever
// zone t was stored in.
func FormatDate(t time.Time) string {
	t = t.In(time.Local)
	return strconv.Itoa(t.Day()) + " " + monthsGenitive[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// FormatOptionalDate renders t or NoData when t is nil.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return NoData
	}
	return FormatDate(*t)
}

// FormatWeight renders a recorded weight with the gram unit.
func FormatWeight(w *string) string {
	if w == nil || *w == "" {
		return NoData
	}
	return *w + " г"
}

// FormatWeightChange renders a signed weight delta such as "+20 г" or "-3.5 г".
func FormatWeightChange(delta float64) string {
	s := strconv.FormatFloat(delta, 'f', -1, 64)
	if delta > 0 {
		s = "+" + s
	}
	return s + " г"
}

// SortByDateDesc returns entries newest first. Entries sharing a date keep
// their relative order.
func SortByDateDesc(entries []types.Entry) []types.Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b types.Entry) int {
		return b.Date.Compare(a.Date)
	})
	return out
}
