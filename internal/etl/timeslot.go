package etl

import (
	"time"

	"github.com/justestif/sparkify-etl/internal/db"
)

// NewTimeSlot breaks an epoch-millisecond timestamp into its UTC calendar
// attributes. Weeks are ISO 8601 weeks and weekdays run Monday=0 to Sunday=6.
func NewTimeSlot(ms int64) db.TimeSlot {
	t := time.UnixMilli(ms).UTC()
	_, week := t.ISOWeek()
	return db.TimeSlot{
		StartTime:  ms,
		Hour:       t.Hour(),
		Day:        t.Day(),
		WeekOfYear: week,
		Month:      int(t.Month()),
		Year:       t.Year(),
		Weekday:    (int(t.Weekday()) + 6) % 7,
	}
}
