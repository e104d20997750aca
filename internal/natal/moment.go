package natal

import (
	"fmt"
	"time"
)

// Date and clock layouts accepted from forms and flags.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// BirthMoment is a civil birth date and wall-clock time, minute precision.
//
// The moment is interpreted in the process's local time zone when converted
// to an instant. That is a deliberate simplification: the birth place's own
// zone is not collected, so charts are exact only when the subject was born
// in the zone the program runs in. Callers that need a different zone can
// set TZ for the process.
type BirthMoment struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// MomentFromTime extracts a BirthMoment from an instant, dropping seconds.
func MomentFromTime(t time.Time) BirthMoment {
	return BirthMoment{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// ParseMoment combines a "YYYY-MM-DD" date and an "HH:MM" clock string
// into a BirthMoment, validating both.
func ParseMoment(date, clock string) (BirthMoment, error) {
	d, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return BirthMoment{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}

	c, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return BirthMoment{}, fmt.Errorf("invalid time %q (want HH:MM): %w", clock, err)
	}

	return BirthMoment{
		Year:   d.Year(),
		Month:  d.Month(),
		Day:    d.Day(),
		Hour:   c.Hour(),
		Minute: c.Minute(),
	}, nil
}

// Local returns the moment as an instant in the local time zone, with
// seconds and sub-seconds zeroed.
func (m BirthMoment) Local() time.Time {
	return time.Date(m.Year, m.Month, m.Day, m.Hour, m.Minute, 0, 0, time.Local)
}

// IsZero reports whether the moment is the zero value.
func (m BirthMoment) IsZero() bool {
	return m == BirthMoment{}
}

// String formats the moment as "YYYY-MM-DD HH:MM".
func (m BirthMoment) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", m.Year, int(m.Month), m.Day, m.Hour, m.Minute)
}

// Subject is the person a chart is cast for.
type Subject struct {
	Name   string
	Gender string
	Moment BirthMoment
}
