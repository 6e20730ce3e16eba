package types

import "time"

// EntryType classifies a care observation.
type EntryType string

const (
	EntryCheckup     EntryType = "checkup"
	EntryWeight      EntryType = "weight"
	EntryFeeding     EntryType = "feeding"
	EntryShedding    EntryType = "shedding"
	EntryEnvironment EntryType = "environment"
	EntryMedication  EntryType = "medication"
	EntryOther       EntryType = "other"
)

// EntryTypes lists every valid entry type in display order.
var EntryTypes = []EntryType{
	EntryCheckup,
	EntryWeight,
	EntryFeeding,
	EntryShedding,
	EntryEnvironment,
	EntryMedication,
	EntryOther,
}

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	for _, known := range EntryTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Entry is a single dated observation logged against a profile.
//
// The optional measurement fields are free-form strings and count as present
// when non-empty. Which of them are filled is independent of Type. ProfileID
// serializes as "reptileId" so existing diaries load unchanged.
type Entry struct {
	ID          string    `json:"id"`
	ProfileID   string    `json:"reptileId"`
	Date        time.Time `json:"date"`
	Type        EntryType `json:"type"`
	Weight      string    `json:"weight,omitempty"`
	Temperature string    `json:"temperature,omitempty"`
	Humidity    string    `json:"humidity,omitempty"`
	Feeding     string    `json:"feeding,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasWeight reports whether the entry carries a weight reading.
func (e Entry) HasWeight() bool { return e.Weight != "" }

// HasFeeding reports whether the entry records a feeding.
func (e Entry) HasFeeding() bool { return e.Feeding != "" }

// EntryInput carries the caller-supplied fields of a new entry.
type EntryInput struct {
	ProfileID   string
	Date        time.Time
	Type        EntryType
	Weight      string
	Temperature string
	Humidity    string
	Feeding     string
	Notes       string
}
