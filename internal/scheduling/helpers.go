package scheduling

import (
	"fmt"
	"time"

	"github.com/iliyamo/cinelux-booking/internal/model"
)

// IsScreeningFull reports whether no seats remain.  A transiently
// negative count (pre-reconciliation) still counts as full.
func IsScreeningFull(s model.Screening) bool {
	return s.AvailableSeats <= 0
}

// HasUserJoined reports whether the user already holds a seat on the
// screening.
func HasUserJoined(s model.Screening, userID int64) bool {
	for _, id := range s.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}

// The venue runs in French; screening dates render with the French
// long-form weekday and month names.
var (
	frWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	frMonths   = [...]string{"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"}
)

// FormatScreeningDateTime renders a screening's date and literal time,
// e.g. "samedi 14 mars à 20:30".  When the date cannot be parsed the
// raw date string is used unchanged.
func FormatScreeningDateTime(s model.Screening) string {
	d, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return fmt.Sprintf("%s à %s", s.Date, s.Time)
	}
	formatted := fmt.Sprintf("%s %d %s", frWeekdays[d.Weekday()], d.Day(), frMonths[d.Month()-1])
	return fmt.Sprintf("%s à %s", formatted, s.Time)
}
