package etl

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates dir/rel with content, making parent directories.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	return path
}

const (
	songCasual  = `{"num_songs": 1, "artist_id": "ARD7TVE1187B99BFB1", "artist_latitude": null, "artist_longitude": null, "artist_location": "California - LA", "artist_name": "Casual", "song_id": "SOMZWCG12A8C13C480", "title": "I Didn't Mean To", "duration": 218.93179, "year": 0}`
	songElena   = `{"num_songs": 1, "artist_id": "AR5KOSW1187FB35FF4", "artist_latitude": 49.80388, "artist_longitude": 15.47491, "artist_location": "Dubai UAE", "artist_name": "Elena", "song_id": "SOZCTXZ12AB0182364", "title": "Setanta matins", "duration": 269.58322, "year": 0}`
	songCasual2 = `{"num_songs": 1, "artist_id": "ARD7TVE1187B99BFB1", "artist_latitude": null, "artist_longitude": null, "artist_location": "Somewhere else", "artist_name": "Casual Renamed", "song_id": "SOMZWCG12A8C13C480", "title": "Changed Title", "duration": 1.0, "year": 2001}`
)

// logFile holds five events: three plays (two sharing a timestamp and one
// resolvable against songElena), a Home view and a logged-out Login.
const logFile = `{"artist":"Elena","auth":"Logged In","firstName":"Walter","gender":"M","itemInSession":0,"lastName":"Frye","length":269.58322,"level":"free","location":"San Francisco-Oakland-Hayward, CA","method":"PUT","page":"NextSong","registration":1540919166796.0,"sessionId":38,"song":"Setanta matins","status":200,"ts":1541105830796,"userAgent":"Mozilla\/5.0","userId":"39"}
{"artist":null,"auth":"Logged In","firstName":"Walter","gender":"M","itemInSession":1,"lastName":"Frye","length":null,"level":"free","location":"San Francisco-Oakland-Hayward, CA","method":"GET","page":"Home","registration":1540919166796.0,"sessionId":38,"song":null,"status":200,"ts":1541106106796,"userAgent":"Mozilla\/5.0","userId":"39"}
{"artist":"Des'ree","auth":"Logged In","firstName":"Kaylee","gender":"F","itemInSession":1,"lastName":"Summers","length":246.30812,"level":"free","location":"Phoenix-Mesa-Scottsdale, AZ","method":"PUT","page":"NextSong","registration":1540344794796.0,"sessionId":139,"song":"You Gotta Be","status":200,"ts":1541106106796,"userAgent":"Mozilla\/5.0","userId":"8"}
{"artist":"Mr Oizo","auth":"Logged In","firstName":"Walter","gender":"M","itemInSession":2,"lastName":"Frye","length":144.03873,"level":"paid","location":"San Francisco-Oakland-Hayward, CA","method":"PUT","page":"NextSong","registration":1540919166796.0,"sessionId":38,"song":"Flat 55","status":200,"ts":1541106106796,"userAgent":"Mozilla\/5.0","userId":"39"}
{"artist":null,"auth":"Logged Out","firstName":null,"gender":null,"itemInSession":0,"lastName":null,"length":null,"level":"free","location":null,"method":"PUT","page":"Login","registration":null,"sessionId":52,"song":null,"status":307,"ts":1541207073796,"userAgent":null,"userId":""}
`

// songJSON renders a complete Elena song record with set applied and the
// drop key removed.
func songJSON(t *testing.T, drop string, set map[string]any) string {
	t.Helper()
	return recordJSON(t, map[string]any{
		"num_songs":        1,
		"artist_id":        "AR5KOSW1187FB35FF4",
		"artist_latitude":  49.80388,
		"artist_longitude": 15.47491,
		"artist_location":  "Dubai UAE",
		"artist_name":      "Elena",
		"song_id":          "SOZCTXZ12AB0182364",
		"title":            "Setanta matins",
		"duration":         269.58322,
		"year":             0,
	}, drop, set)
}

// playJSON renders a complete NextSong event with set applied and the drop
// key removed.
func playJSON(t *testing.T, drop string, set map[string]any) string {
	t.Helper()
	return recordJSON(t, map[string]any{
		"artist":    "Elena",
		"firstName": "Walter",
		"gender":    "M",
		"lastName":  "Frye",
		"length":    269.58322,
		"level":     "free",
		"location":  "San Francisco-Oakland-Hayward, CA",
		"page":      "NextSong",
		"sessionId": 38,
		"song":      "Setanta matins",
		"ts":        1541105830796,
		"userAgent": "Mozilla/5.0",
		"userId":    "39",
	}, drop, set)
}

func recordJSON(t *testing.T, base map[string]any, drop string, set map[string]any) string {
	t.Helper()
	maps.Copy(base, set)
	delete(base, drop)
	data, err := json.Marshal(base)
	if err != nil {
		t.Fatalf("marshaling record: %v", err)
	}
	return string(data)
}
