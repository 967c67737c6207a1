package etl

import (
	"context"
	"fmt"
	"os"

	"github.com/justestif/sparkify-etl/internal/db"
)

// LoadSongFile inserts the artist and then the song described by the song
// file at path. Rows whose keys already exist are left as they are.
func (p *Pipeline) LoadSongFile(ctx context.Context, store Store, path string) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("opening song file: %w", err)
	}
	defer f.Close()

	rec, err := ReadSongRecord(f)
	if err != nil {
		return LoadResult{}, fmt.Errorf("reading song file: %w", err)
	}

	artist := db.Artist{
		ID:        rec.ArtistID,
		Name:      rec.ArtistName,
		Location:  rec.ArtistLocation,
		Latitude:  rec.ArtistLatitude,
		Longitude: rec.ArtistLongitude,
	}
	if err := store.InsertArtist(ctx, &artist); err != nil {
		return LoadResult{}, err
	}

	song := db.Song{
		ID:       rec.SongID,
		Title:    rec.Title,
		ArtistID: rec.ArtistID,
		Year:     rec.Year,
		Duration: rec.Duration,
	}
	if err := store.InsertSong(ctx, &song); err != nil {
		return LoadResult{}, err
	}

	p.log.WithField("path", path).Debugf("loaded song %s by artist %s", song.ID, artist.ID)
	return LoadResult{Records: 1}, nil
}
