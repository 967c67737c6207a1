package etl

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/justestif/sparkify-etl/internal/db"
)

// LoadLogFile loads the play events of one event log file. Time slots and
// users go in before any songplay that references them.
func (p *Pipeline) LoadLogFile(ctx context.Context, store Store, path string) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	events, err := ReadEventRecords(f)
	if err != nil {
		return LoadResult{}, fmt.Errorf("reading log file: %w", err)
	}

	for i := range events {
		if !events[i].HasPage() {
			return LoadResult{}, fmt.Errorf("event %d: %w: page", i+1, ErrMissingField)
		}
	}

	plays := filterPlays(events)
	for i := range plays {
		if err := plays[i].Validate(); err != nil {
			return LoadResult{}, fmt.Errorf("play event %d: %w", i+1, err)
		}
	}

	if err := store.InsertTimeSlots(ctx, timeSlots(plays)); err != nil {
		return LoadResult{}, err
	}
	if err := store.InsertUsers(ctx, users(plays)); err != nil {
		return LoadResult{}, err
	}

	result := LoadResult{Records: len(events)}
	for i := range plays {
		ev := &plays[i]
		sp := db.Songplay{
			StartTime: *ev.TS,
			UserID:    ev.UserID.Value,
			Level:     ev.Level,
			SessionID: *ev.SessionID,
			Location:  ev.Location,
			UserAgent: ev.UserAgent,
		}

		songID, artistID, err := resolveSong(ctx, store, ev)
		if err != nil {
			return LoadResult{}, err
		}
		if songID != "" {
			sp.SongID = &songID
			sp.ArtistID = &artistID
			result.Resolved++
		}

		if err := store.InsertSongplay(ctx, &sp); err != nil {
			return LoadResult{}, err
		}
		result.Plays++
	}

	p.log.WithField("path", path).Debugf("loaded %d plays from %d events, %d resolved",
		result.Plays, result.Records, result.Resolved)
	return result, nil
}

// filterPlays keeps the NextSong events.
func filterPlays(events []EventRecord) []EventRecord {
	var plays []EventRecord
	for _, ev := range events {
		if ev.IsPlay() {
			plays = append(plays, ev)
		}
	}
	return plays
}

// timeSlots derives one slot per distinct timestamp, in first-seen order.
func timeSlots(plays []EventRecord) []db.TimeSlot {
	seen := make(map[int64]bool, len(plays))
	var slots []db.TimeSlot
	for _, ev := range plays {
		if seen[*ev.TS] {
			continue
		}
		seen[*ev.TS] = true
		slots = append(slots, NewTimeSlot(*ev.TS))
	}
	return slots
}

// users returns one row per distinct user ID. The first event for a user
// wins, matching the conflict-ignore insert.
func users(plays []EventRecord) []db.User {
	seen := make(map[int]bool, len(plays))
	var out []db.User
	for _, ev := range plays {
		if seen[ev.UserID.Value] {
			continue
		}
		seen[ev.UserID.Value] = true
		out = append(out, db.User{
			ID:        ev.UserID.Value,
			FirstName: ev.FirstName,
			LastName:  ev.LastName,
			Gender:    ev.Gender,
			Level:     ev.Level,
		})
	}
	return out
}

// resolveSong looks up the song and artist for a play. Missing song details
// or no match both resolve to empty IDs.
func resolveSong(ctx context.Context, store Store, ev *EventRecord) (songID, artistID string, err error) {
	if ev.Song == nil || ev.Artist == nil || ev.Length == nil {
		return "", "", nil
	}
	songID, artistID, err = store.FindSongArtist(ctx, *ev.Song, *ev.Artist, *ev.Length)
	if errors.Is(err, db.ErrNotFound) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	return songID, artistID, nil
}
