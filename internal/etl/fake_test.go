package etl

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/justestif/sparkify-etl/internal/db"
)

// memStore is an in-memory Store with conflict-ignore inserts.
type memStore struct {
	artists   map[string]db.Artist
	songs     map[string]db.Song
	users     map[int]db.User
	times     map[int64]db.TimeSlot
	songplays []db.Songplay
	nextID    int64

	// failSongplayAfter makes the nth InsertSongplay call fail when > 0.
	failSongplayAfter int
	songplayCalls     int
}

func newMemStore() *memStore {
	return &memStore{
		artists: make(map[string]db.Artist),
		songs:   make(map[string]db.Song),
		users:   make(map[int]db.User),
		times:   make(map[int64]db.TimeSlot),
	}
}

func (m *memStore) clone() *memStore {
	c := *m
	c.artists = maps.Clone(m.artists)
	c.songs = maps.Clone(m.songs)
	c.users = maps.Clone(m.users)
	c.times = maps.Clone(m.times)
	c.songplays = slices.Clone(m.songplays)
	return &c
}

func (m *memStore) InsertArtist(_ context.Context, a *db.Artist) error {
	if _, ok := m.artists[a.ID]; !ok {
		m.artists[a.ID] = *a
	}
	return nil
}

func (m *memStore) InsertSong(_ context.Context, s *db.Song) error {
	if _, ok := m.artists[s.ArtistID]; !ok {
		return errors.New("songs.artist_id foreign key violation")
	}
	if _, ok := m.songs[s.ID]; !ok {
		m.songs[s.ID] = *s
	}
	return nil
}

func (m *memStore) InsertTimeSlots(_ context.Context, slots []db.TimeSlot) error {
	for _, s := range slots {
		if _, ok := m.times[s.StartTime]; !ok {
			m.times[s.StartTime] = s
		}
	}
	return nil
}

func (m *memStore) InsertUsers(_ context.Context, users []db.User) error {
	for _, u := range users {
		if _, ok := m.users[u.ID]; !ok {
			m.users[u.ID] = u
		}
	}
	return nil
}

func (m *memStore) FindSongArtist(_ context.Context, title, artist string, duration float64) (string, string, error) {
	for _, id := range slices.Sorted(maps.Keys(m.songs)) {
		s := m.songs[id]
		if s.Title == title && s.Duration == duration && m.artists[s.ArtistID].Name == artist {
			return s.ID, s.ArtistID, nil
		}
	}
	return "", "", db.ErrNotFound
}

func (m *memStore) InsertSongplay(_ context.Context, sp *db.Songplay) error {
	m.songplayCalls++
	if m.failSongplayAfter > 0 && m.songplayCalls >= m.failSongplayAfter {
		return errors.New("songplay insert failed")
	}
	if _, ok := m.times[sp.StartTime]; !ok {
		return errors.New("songplays.start_time foreign key violation")
	}
	if _, ok := m.users[sp.UserID]; !ok {
		return errors.New("songplays.user_id foreign key violation")
	}
	m.nextID++
	sp.ID = m.nextID
	m.songplays = append(m.songplays, *sp)
	return nil
}

// memTransactor applies a transaction's writes only when it succeeds.
type memTransactor struct {
	store   *memStore
	commits int
}

func (t *memTransactor) InTx(_ context.Context, fn func(Store) error) error {
	work := t.store.clone()
	if err := fn(work); err != nil {
		return err
	}
	*t.store = *work
	t.commits++
	return nil
}
