package model

import (
	"strings"
	"time"
)

// Sport is the competition category an entity plays in.
type Sport string

// Known sports.
const (
	SportNFL            Sport = "NFL"
	SportNBA            Sport = "NBA"
	SportMLB            Sport = "MLB"
	SportNHL            Sport = "NHL"
	SportNCAAFootball   Sport = "NCAA Football"
	SportNCAABasketball Sport = "NCAA Basketball"
	SportF1             Sport = "F1"
	SportFantasy        Sport = "Fantasy"
)

var offseasonMonths = map[Sport][]time.Month{ //nolint:gochecknoglobals // fixed lookup table
	SportMLB:            {time.November, time.December, time.January, time.February},
	SportNFL:            {time.March, time.April, time.May, time.June, time.July, time.August},
	SportNBA:            {time.July, time.August, time.September},
	SportNCAABasketball: {time.May, time.June, time.July, time.August, time.September, time.October},
	SportNCAAFootball:   {time.February, time.March, time.April, time.May, time.June, time.July},
}

// OffseasonMonths returns the months in which the sport plays no games.
// Sports without a known calendar have none.
func (s Sport) OffseasonMonths() []time.Month {
	return offseasonMonths[s]
}

// InOffseason reports whether month falls in the sport's offseason.
func (s Sport) InOffseason(month time.Month) bool {
	for _, m := range offseasonMonths[s] {
		if m == month {
			return true
		}
	}
	return false
}

// LowEventCount reports whether the sport has few events per season, so
// each one carries more weight and fades faster.
func (s Sport) LowEventCount() bool {
	return s == SportNFL || s == SportF1
}

// Profile tags how an entity is scored. It is set once by the loader.
type Profile uint8

// Scoring profiles. ProfileStandard is the zero value; the others combine.
const (
	ProfileStandard         Profile = 0
	ProfileIndividualImpact Profile = 1 << iota
	ProfileLowEventCount
)

// Has reports whether p carries every flag in flag.
func (p Profile) Has(flag Profile) bool {
	return flag != 0 && p&flag == flag
}

// String renders the profile for logs and API output.
func (p Profile) String() string {
	if p == ProfileStandard {
		return "standard"
	}
	var parts []string
	if p.Has(ProfileIndividualImpact) {
		parts = append(parts, "individual-impact")
	}
	if p.Has(ProfileLowEventCount) {
		parts = append(parts, "low-event-count")
	}
	return strings.Join(parts, "+")
}

// ProfileFor derives the profile of an entity from its sport and whether
// its name is on the individual-impact allow-list.
func ProfileFor(sport Sport, individual bool) Profile {
	p := ProfileStandard
	if individual || sport == SportF1 {
		p |= ProfileIndividualImpact
	}
	if sport.LowEventCount() {
		p |= ProfileLowEventCount
	}
	return p
}
