package db

// Artist is a row of the artists dimension.
type Artist struct {
	ID        string
	Name      string
	Location  string
	Latitude  *float64 // nullable
	Longitude *float64 // nullable
}

// Song is a row of the songs dimension.
type Song struct {
	ID       string
	Title    string
	ArtistID string
	Year     int
	Duration float64
}

// User is a row of the users dimension.
type User struct {
	ID        int
	FirstName string
	LastName  string
	Gender    string
	Level     string
}

// TimeSlot is a row of the time dimension, keyed by epoch milliseconds.
type TimeSlot struct {
	StartTime  int64
	Hour       int
	Day        int
	WeekOfYear int
	Month      int
	Year       int
	Weekday    int // Monday=0
}

// Songplay is a row of the songplays fact table.
type Songplay struct {
	ID        int64 // assigned by the database
	StartTime int64
	UserID    int
	Level     string
	SongID    *string // nullable - unresolved plays
	ArtistID  *string // nullable - unresolved plays
	SessionID int
	Location  string
	UserAgent string
}

// TableCount is the number of rows in one table.
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// UserPlays is a user with their total songplay count.
type UserPlays struct {
	UserID    int    `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Level     string `json:"level"`
	Plays     int64  `json:"plays"`
}

// HourPlays is the number of songplays started in one hour of the day.
type HourPlays struct {
	Hour  int   `json:"hour"`
	Plays int64 `json:"plays"`
}
