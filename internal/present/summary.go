package present

import (
	"github.com/mesh-intelligence/repticare/internal/stats"
	"github.com/mesh-intelligence/repticare/pkg/types"
)

// SummaryView is a statistics summary rendered as display strings.
type SummaryView struct {
	Name         string `json:"name"`
	Species      string `json:"species"`
	Gender       string `json:"gender"`
	Age          string `json:"age"`
	CreatedAt    string `json:"createdAt"`
	TotalEntries int    `json:"totalEntries"`
	FirstEntry   string `json:"firstEntry,omitempty"`
	LastEntry    string `json:"lastEntry,omitempty"`
	LastWeight   string `json:"lastWeight"`
	WeightChange string `json:"weightChange,omitempty"`
	LastFeeding  string `json:"lastFeeding"`
	LastShedding string `json:"lastShedding"`
}

// RenderSummary formats s for profile p. First/last entry dates and the
// weight change are left empty when undefined so callers can hide them.
func RenderSummary(p types.Profile, s stats.Summary) SummaryView {
	v := SummaryView{
		Name:         p.Name,
		Species:      p.Species,
		Gender:       GenderLabel(p.Gender),
		Age:          stats.FormatAge(s.Age),
		CreatedAt:    FormatDate(p.CreatedAt),
		TotalEntries: s.TotalEntries,
		LastWeight:   FormatWeight(s.LastWeight),
		LastFeeding:  FormatOptionalDate(s.LastFeeding),
		LastShedding: FormatOptionalDate(s.LastShedding),
	}
	if p.CreatedAt.IsZero() {
		v.CreatedAt = stats.UnknownAge
	}
	if s.FirstEntryDate != nil {
		v.FirstEntry = FormatDate(*s.FirstEntryDate)
	}
	if s.LastEntryDate != nil {
		v.LastEntry = FormatDate(*s.LastEntryDate)
	}
	if s.WeightChange != nil {
		v.WeightChange = FormatWeightChange(*s.WeightChange)
	}
	return v
}
