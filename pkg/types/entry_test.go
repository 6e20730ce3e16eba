package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryTypeValid(t *testing.T) {
	for _, et := range EntryTypes {
		assert.True(t, et.Valid(), "expected %q to be valid", et)
	}
	assert.False(t, EntryType("").Valid())
	assert.False(t, EntryType("bath").Valid())
}

func TestGenderValid(t *testing.T) {
	for _, g := range Genders {
		assert.True(t, g.Valid(), "expected %q to be valid", g)
	}
	assert.False(t, Gender("").Valid())
	assert.False(t, Gender("both").Valid())
}

func TestEntryJSONUsesReptileID(t *testing.T) {
	e := Entry{
		ID:        "e1",
		ProfileID: "p1",
		Date:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Type:      EntryWeight,
		Weight:    "120",
		CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "p1", raw["reptileId"])
	assert.Equal(t, "120", raw["weight"])
	assert.NotContains(t, raw, "feeding", "empty optional fields must be omitted")
	assert.NotContains(t, raw, "profileId")
}

func TestEntryParsesBrowserTimestamps(t *testing.T) {
	// toISOString output from the browser app, millisecond precision.
	data := []byte(`{"id":"e1","reptileId":"p1","date":"2024-03-05T09:30:00.000Z","type":"feeding","feeding":"2 crickets","createdAt":"2024-03-05T09:31:12.345Z"}`)

	var e Entry
	require.NoError(t, json.Unmarshal(data, &e))
	assert.Equal(t, "p1", e.ProfileID)
	assert.Equal(t, EntryFeeding, e.Type)
	assert.True(t, e.HasFeeding())
	assert.False(t, e.HasWeight())
	assert.Equal(t, time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC), e.Date)
}

func TestProfileOmitsMissingBirthDate(t *testing.T) {
	p := Profile{ID: "p1", Name: "Kaa", Species: "Python regius", Gender: GenderUnknown}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "birthDate")
}
