package domain

// EntityRef is a referenced doctor or clinic service.
type EntityRef struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// EntityBag holds everything the extractor pulled out of one message.
// Doctors and Services carry the captures of the latest matching pattern
// (last-match-wins); the string lists accumulate in pattern scan order and
// may contain duplicates.
type EntityBag struct {
	Doctors     []EntityRef `json:"doctors"`
	Services    []EntityRef `json:"services"`
	Dates       []string    `json:"dates"`
	Times       []string    `json:"times"`
	Symptoms    []string    `json:"symptoms"`
	Locations   []string    `json:"locations"`
	Medications []string    `json:"medications"`
}

// NewEntityBag returns a bag with all lists initialized so JSON output is
// [] rather than null.
func NewEntityBag() *EntityBag {
	return &EntityBag{
		Doctors:     make([]EntityRef, 0),
		Services:    make([]EntityRef, 0),
		Dates:       make([]string, 0),
		Times:       make([]string, 0),
		Symptoms:    make([]string, 0),
		Locations:   make([]string, 0),
		Medications: make([]string, 0),
	}
}

// HasDoctor reports whether at least one doctor was referenced.
func (b *EntityBag) HasDoctor() bool { return len(b.Doctors) > 0 }

// HasService reports whether at least one service was referenced.
func (b *EntityBag) HasService() bool { return len(b.Services) > 0 }

// FirstDate returns the first extracted date, or "" when none.
func (b *EntityBag) FirstDate() string {
	if len(b.Dates) == 0 {
		return ""
	}
	return b.Dates[0]
}

// FirstTime returns the first extracted time, or "" when none.
func (b *EntityBag) FirstTime() string {
	if len(b.Times) == 0 {
		return ""
	}
	return b.Times[0]
}
