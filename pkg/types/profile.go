package types

import "time"

// Gender values a profile may carry.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Genders lists every valid gender in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderUnknown}

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

// Profile is a tracked reptile. ID and CreatedAt are assigned by the
// repository and never change afterwards.
type Profile struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Gender    Gender     `json:"gender"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ProfileInput carries the caller-supplied fields of a new profile.
type ProfileInput struct {
	Name      string
	Species   string
	BirthDate *time.Time
	Gender    Gender
}
