package etl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Record errors.
var (
	ErrEmptyFile    = errors.New("file holds no records")
	ErrMissingField = errors.New("missing required field")
)

// PageNextSong marks an event that started playback of a track.
const PageNextSong = "NextSong"

// songKeys are the keys every song record must carry. Coordinates may be null.
var songKeys = []string{
	"artist_id", "artist_name", "artist_location", "artist_latitude", "artist_longitude",
	"song_id", "title", "year", "duration",
}

// SongRecord is one song-metadata object from the song dataset.
type SongRecord struct {
	NumSongs        int      `json:"num_songs"`
	ArtistID        string   `json:"artist_id"`
	ArtistName      string   `json:"artist_name"`
	ArtistLocation  string   `json:"artist_location"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
	SongID          string   `json:"song_id"`
	Title           string   `json:"title"`
	Year            int      `json:"year"`
	Duration        float64  `json:"duration"`

	keys fieldSet
}

// UnmarshalJSON implements json.Unmarshaler and records which keys were present.
func (r *SongRecord) UnmarshalJSON(data []byte) error {
	type plain SongRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	keys, err := presentKeys(data)
	if err != nil {
		return err
	}
	*r = SongRecord(p)
	r.keys = keys
	return nil
}

// Validate reports an absent key or an empty song or artist ID.
func (r *SongRecord) Validate() error {
	if err := r.keys.require(songKeys...); err != nil {
		return err
	}
	switch {
	case r.SongID == "":
		return fmt.Errorf("%w: song_id", ErrMissingField)
	case r.ArtistID == "":
		return fmt.Errorf("%w: artist_id", ErrMissingField)
	}
	return nil
}

// playKeys are the keys a NextSong event must carry. Song, artist and
// length may be null.
var playKeys = []string{
	"ts", "userId", "firstName", "lastName", "gender", "level",
	"song", "artist", "length", "sessionId", "location", "userAgent",
}

// EventRecord is one user interaction from the event log dataset.
type EventRecord struct {
	TS        *int64   `json:"ts"`
	Page      string   `json:"page"`
	UserID    UserID   `json:"userId"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Gender    string   `json:"gender"`
	Level     string   `json:"level"`
	Song      *string  `json:"song"`
	Artist    *string  `json:"artist"`
	Length    *float64 `json:"length"`
	SessionID *int     `json:"sessionId"`
	Location  string   `json:"location"`
	UserAgent string   `json:"userAgent"`

	keys fieldSet
}

// UnmarshalJSON implements json.Unmarshaler and records which keys were present.
func (r *EventRecord) UnmarshalJSON(data []byte) error {
	type plain EventRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	keys, err := presentKeys(data)
	if err != nil {
		return err
	}
	*r = EventRecord(p)
	r.keys = keys
	return nil
}

// HasPage reports whether the event carries a page key at all.
func (r *EventRecord) HasPage() bool {
	return r.keys["page"]
}

// IsPlay reports whether the event started playback of a track.
func (r *EventRecord) IsPlay() bool {
	return r.Page == PageNextSong
}

// Validate reports a field a play event cannot be loaded without.
func (r *EventRecord) Validate() error {
	if err := r.keys.require(playKeys...); err != nil {
		return err
	}
	switch {
	case r.TS == nil:
		return fmt.Errorf("%w: ts", ErrMissingField)
	case !r.UserID.Valid:
		return fmt.Errorf("%w: userId", ErrMissingField)
	case r.SessionID == nil:
		return fmt.Errorf("%w: sessionId", ErrMissingField)
	}
	return nil
}

// fieldSet holds the top-level keys of one JSON object.
type fieldSet map[string]bool

func presentKeys(data []byte) (fieldSet, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	keys := make(fieldSet, len(raw))
	for k := range raw {
		keys[k] = true
	}
	return keys, nil
}

// require returns ErrMissingField naming the first absent key.
func (f fieldSet) require(keys ...string) error {
	for _, k := range keys {
		if !f[k] {
			return fmt.Errorf("%w: %s", ErrMissingField, k)
		}
	}
	return nil
}

// UserID is a log user ID. The logs write it as a quoted string, an empty
// string for logged-out users, or occasionally a bare number.
type UserID struct {
	Value int
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*u = UserID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*u = UserID{}
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("parsing userId %q: %w", data, err)
	}
	*u = UserID{Value: n, Valid: true}
	return nil
}

// decodeAll reads every JSON value in r. Values may be separated by newlines
// or any other whitespace.
func decodeAll[T any](r io.Reader) ([]T, error) {
	dec := json.NewDecoder(r)
	var out []T
	for {
		var v T
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", len(out)+1, err)
		}
		out = append(out, v)
	}
}

// ReadSongRecord returns the first song record in r.
func ReadSongRecord(r io.Reader) (*SongRecord, error) {
	records, err := decodeAll[SongRecord](r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	rec := records[0]
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ReadEventRecords returns every event record in r.
func ReadEventRecords(r io.Reader) ([]EventRecord, error) {
	return decodeAll[EventRecord](r)
}
