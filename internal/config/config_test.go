package config

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.DatabaseURL != DefaultDatabaseURL {
					t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, DefaultDatabaseURL)
				}
				if cfg.SongDataPath != DefaultSongDataPath {
					t.Errorf("SongDataPath = %q, want %q", cfg.SongDataPath, DefaultSongDataPath)
				}
				if cfg.LogDataPath != DefaultLogDataPath {
					t.Errorf("LogDataPath = %q, want %q", cfg.LogDataPath, DefaultLogDataPath)
				}
				if cfg.FilePattern != "*.json" {
					t.Errorf("FilePattern = %q, want *.json", cfg.FilePattern)
				}
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"SPARKIFY_DATABASE_URL": "postgres://u:p@db:5432/other",
				"SPARKIFY_SONG_DATA":    "/srv/songs",
				"LOG_LEVEL":             "debug",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.DatabaseURL != "postgres://u:p@db:5432/other" {
					t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
				}
				if cfg.SongDataPath != "/srv/songs" {
					t.Errorf("SongDataPath = %q", cfg.SongDataPath)
				}
				if cfg.LogLevel != "debug" {
					t.Errorf("LogLevel = %q", cfg.LogLevel)
				}
			},
		},
		{
			name:    "malformed pattern",
			env:     map[string]string{"SPARKIFY_FILE_PATTERN": "[*.json"},
			wantErr: ErrBadFilePattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{
				"SPARKIFY_DATABASE_URL", "SPARKIFY_ADMIN_DATABASE_URL", "SPARKIFY_SONG_DATA",
				"SPARKIFY_LOG_DATA", "SPARKIFY_FILE_PATTERN", "SPARKIFY_API_ADDR", "LOG_LEVEL",
			} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if cfg != nil {
					t.Errorf("Load() returned non-nil config with error")
				}
				return
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		DatabaseURL:  DefaultDatabaseURL,
		SongDataPath: DefaultSongDataPath,
		LogDataPath:  DefaultLogDataPath,
		FilePattern:  DefaultFilePattern,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no database", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: ErrMissingDatabaseURL},
		{name: "no log path", mutate: func(c *Config) { c.LogDataPath = "" }, wantErr: ErrMissingDataPath},
		{name: "empty pattern", mutate: func(c *Config) { c.FilePattern = "" }, wantErr: ErrBadFilePattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"bogus", logrus.InfoLevel},
	}
	for _, tt := range tests {
		cfg := Config{LogLevel: tt.level}
		if got := cfg.NewLogger().GetLevel(); got != tt.want {
			t.Errorf("NewLogger(%q) level = %v, want %v", tt.level, got, tt.want)
		}
	}
}
