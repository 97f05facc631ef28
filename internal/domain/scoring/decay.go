package scoring

import (
	"math"
	"time"
)

// Age is how long ago an event happened. Hours is only meaningful when
// Precise is set, i.e. the event carried a timestamp.
type Age struct {
	Days    float64
	Hours   float64
	Precise bool
}

// DaysAgo builds a day-granular age.
func DaysAgo(days float64) Age {
	return Age{Days: days}
}

// AgeSince measures the age of an event at "at" as seen from now. Days are
// whole elapsed days; hours keep the fraction.
func AgeSince(at, now time.Time) Age {
	hours := now.Sub(at).Hours()
	if hours < 0 {
		hours = 0
	}
	return Age{Days: math.Floor(hours / hoursPerDay), Hours: hours, Precise: true}
}

// Weight converts an age into a decay weight in (0,1]. Low-event-count
// categories decay faster, and events under a day old decay per hour with
// an extra multiplier.
func Weight(age Age, rate float64, lowEventCount bool) float64 {
	effective := rate
	hourMult := hourMultiplier
	if lowEventCount {
		effective = rate * lowEventDecayFactor
		hourMult = lowEventHourMultiple
	}

	if age.Precise && age.Hours < hoursPerDay {
		hours := math.Max(0, age.Hours)
		return math.Exp(-(hours / hoursPerDay) * effective * hourMult)
	}

	days := math.Max(0, age.Days)
	return math.Exp(-days * effective)
}
