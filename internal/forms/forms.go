// Package forms validates raw user input for new profiles and entries and
// converts it into repository inputs. Failures are reported per field.
package forms

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/repticare/pkg/types"
)

// Field validation messages.
const (
	MsgNameRequired    = "Имя обязательно"
	MsgSpeciesRequired = "Вид обязателен"
	MsgTypeRequired    = "Тип записи обязателен"
	MsgTypeUnknown     = "Неизвестный тип записи"
	MsgGenderUnknown   = "Пол должен быть male, female или unknown"
	MsgDateInvalid     = "Дата должна быть в формате ГГГГ-ММ-ДД"
	MsgDateInFuture    = "Дата не может быть в будущем"
	MsgNotANumber      = "Введите число"
	MsgProfileRequired = "Выберите рептилию"
	MsgDateTooEarly    = "Дата не может быть раньше 1900 года"
)

// dateLayout is the plain calendar date accepted from users.
const dateLayout = "2006-01-02"

// minBirthYear is the earliest year the profile form accepts as a birth date.
const minBirthYear = 1900

// Errors maps a field name to the message shown next to it.
type Errors map[string]string

// Error lists the failing fields in name order.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match types.ErrInvalidInput.
func (e Errors) Unwrap() error { return types.ErrInvalidInput }

// orNil returns e as an error, or nil when it holds no messages.
func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ProfileForm is the raw profile form submission.
type ProfileForm struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	BirthDate string `json:"birthDate"`
	Gender    string `json:"gender"`
}

// Validate checks the form against now and returns the repository input.
// Gender defaults to unknown; the birth date is optional.
func (f ProfileForm) Validate(now time.Time) (types.ProfileInput, error) {
	errs := Errors{}
	in := types.ProfileInput{
		Name:    strings.TrimSpace(f.Name),
		Species: strings.TrimSpace(f.Species),
		Gender:  types.Gender(strings.TrimSpace(f.Gender)),
	}

	if in.Name == "" {
		errs["name"] = MsgNameRequired
	}
	if in.Species == "" {
		errs["species"] = MsgSpeciesRequired
	}
	if in.Gender == "" {
		in.Gender = types.GenderUnknown
	} else if !in.Gender.Valid() {
		errs["gender"] = MsgGenderUnknown
	}

	if raw := strings.TrimSpace(f.BirthDate); raw != "" {
		bd, msg := parseDate(raw, now)
		switch {
		case msg != "":
			errs["birthDate"] = msg
		case bd.Before(time.Date(minBirthYear, time.January, 1, 0, 0, 0, 0, now.Location())):
			errs["birthDate"] = MsgDateTooEarly
		default:
			in.BirthDate = &bd
		}
	}

	return in, errs.orNil()
}

// EntryForm is the raw entry form submission.
type EntryForm struct {
	ProfileID   string `json:"reptileId"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Weight      string `json:"weight"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	Feeding     string `json:"feeding"`
	Notes       string `json:"notes"`
}

// Validate checks the form against now and returns the repository input.
// An empty date means now. Numeric fields are checked only when filled; any
// field may be filled regardless of the entry type.
func (f EntryForm) Validate(now time.Time) (types.EntryInput, error) {
	errs := Errors{}
	in := types.EntryInput{
		ProfileID:   strings.TrimSpace(f.ProfileID),
		Date:        now,
		Type:        types.EntryType(strings.TrimSpace(f.Type)),
		Weight:      strings.TrimSpace(f.Weight),
		Temperature: strings.TrimSpace(f.Temperature),
		Humidity:    strings.TrimSpace(f.Humidity),
		Feeding:     strings.TrimSpace(f.Feeding),
		Notes:       strings.TrimSpace(f.Notes),
	}

	if in.ProfileID == "" {
		errs["reptileId"] = MsgProfileRequired
	}

	switch {
	case in.Type == "":
		errs["type"] = MsgTypeRequired
	case !in.Type.Valid():
		errs["type"] = MsgTypeUnknown
	}

	if raw := strings.TrimSpace(f.Date); raw != "" {
		d, msg := parseDate(raw, now)
		if msg != "" {
			errs["date"] = msg
		} else {
			in.Date = d
		}
	}

	numeric := map[string]string{
		"weight":      in.Weight,
		"temperature": in.Temperature,
		"humidity":    in.Humidity,
	}
	for field, v := range numeric {
		if v == "" {
			continue
		}
		if !isFiniteNumber(v) {
			errs[field] = MsgNotANumber
		}
	}

	return in, errs.orNil()
}

// isFiniteNumber reports whether v parses as a finite float. ParseFloat also
// accepts "NaN", "Inf" and out-of-range values, which are refused here.
func isFiniteNumber(v string) bool {
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// parseDate accepts YYYY-MM-DD (midnight in now's location) or RFC 3339 and
// rejects dates after now. It returns a message on failure.
func parseDate(raw string, now time.Time) (time.Time, string) {
	d, err := time.ParseInLocation(dateLayout, raw, now.Location())
	if err != nil {
		d, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, MsgDateInvalid
		}
	}
	if d.After(now) {
		return time.Time{}, MsgDateInFuture
	}
	return d, ""
}
