package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/lixenwraith/farmcycle/core"
)

// Entry is one recorded lifecycle event
type Entry struct {
	ID         string          `json:"id"`
	Session    string          `json:"session"`
	RecordedAt time.Time       `json:"recorded_at"`
	Frame      int64           `json:"frame"`
	Day        int             `json:"day"`
	Kind       string          `json:"kind"`
	Entity     core.Entity     `json:"entity"`
	CropID     string          `json:"crop_id"`
	Payload    json.RawMessage `json:"payload"`
}

// Store is the sqlite entry repository
type Store struct {
	db *sql.DB
}

// NewStore wraps an opened journal database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// StartSession registers a new run and returns its id
func (s *Store) StartSession(ctx context.Context, seed int64) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, started_at, seed) VALUES (?, ?, ?)`,
		id, time.Now().UnixNano(), seed,
	)
	if err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}
	return id, nil
}

// Append inserts an entry, assigning an id when missing
func (s *Store) Append(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	if len(e.Payload) == 0 {
		e.Payload = json.RawMessage("null")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, session_id, recorded_at, frame, day, kind, entity, crop_id, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Session, e.RecordedAt.UnixNano(), e.Frame, e.Day, e.Kind,
		int64(e.Entity), e.CropID, string(e.Payload),
	)
	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	return nil
}

const selectEntries = `SELECT id, session_id, recorded_at, frame, day, kind, entity, crop_id, payload FROM entries`

func (s *Store) getMany(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			nanos   int64
			entity  int64
			payload string
		)
		if err := rows.Scan(&e.ID, &e.Session, &nanos, &e.Frame, &e.Day, &e.Kind, &entity, &e.CropID, &payload); err != nil {
			return nil, err
		}
		e.RecordedAt = time.Unix(0, nanos)
		e.Entity = core.Entity(entity)
		e.Payload = json.RawMessage(payload)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// BySession returns every entry of a session in insertion order
func (s *Store) BySession(ctx context.Context, session string) ([]Entry, error) {
	return s.getMany(ctx, selectEntries+` WHERE session_id = ? ORDER BY rowid ASC`, session)
}

// ByEntity returns the history of one crop instance
func (s *Store) ByEntity(ctx context.Context, session string, e core.Entity) ([]Entry, error) {
	return s.getMany(ctx, selectEntries+` WHERE session_id = ? AND entity = ? ORDER BY rowid ASC`, session, int64(e))
}

// ByDay returns the entries recorded during one day
func (s *Store) ByDay(ctx context.Context, session string, day int) ([]Entry, error) {
	return s.getMany(ctx, selectEntries+` WHERE session_id = ? AND day = ? ORDER BY rowid ASC`, session, day)
}

// CountByKind summarises a session
func (s *Store) CountByKind(ctx context.Context, session string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM entries WHERE session_id = ? GROUP BY kind`, session)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[kind] = n
	}
	return out, rows.Err()
}
