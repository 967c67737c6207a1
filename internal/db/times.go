package db

import (
	"context"
	"fmt"
)

// TimeRepository handles time dimension database operations.
type TimeRepository struct {
	q querier
}

// InsertBatch adds multiple time slots efficiently. Slots whose start_time
// already exists are skipped.
func (r *TimeRepository) InsertBatch(ctx context.Context, slots []TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	query := `
		INSERT INTO time (start_time, hour, day, week, month, year, weekday)
		SELECT * FROM unnest($1::bigint[], $2::int[], $3::int[], $4::int[], $5::int[], $6::int[], $7::int[])
		ON CONFLICT (start_time) DO NOTHING
	`

	startTimes := make([]int64, len(slots))
	hours := make([]int, len(slots))
	days := make([]int, len(slots))
	weeks := make([]int, len(slots))
	months := make([]int, len(slots))
	years := make([]int, len(slots))
	weekdays := make([]int, len(slots))

	for i, s := range slots {
		startTimes[i] = s.StartTime
		hours[i] = s.Hour
		days[i] = s.Day
		weeks[i] = s.WeekOfYear
		months[i] = s.Month
		years[i] = s.Year
		weekdays[i] = s.Weekday
	}

	_, err := r.q.Exec(ctx, query, startTimes, hours, days, weeks, months, years, weekdays)
	if err != nil {
		return fmt.Errorf("batch inserting time slots: %w", err)
	}
	return nil
}
