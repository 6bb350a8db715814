package timeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sot/schedule-view/internal/logctx"
	_ "modernc.org/sqlite"
)

// ErrNoDatabase is returned when the command archive file does not exist
var ErrNoDatabase = errors.New("timeline: command archive not found")

// paramsBatch bounds the number of bound variables per IN query
const paramsBatch = 500

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SQLiteSource reads the command archive from a SQLite database with a
// cmds(idx, date, type, tlmsid, scs, step, source, params) table.
// params holds a JSON object per row.
type SQLiteSource struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens an existing command archive read-only
func OpenSQLite(ctx context.Context, path string) (*SQLiteSource, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoDatabase, path)
		}
		return nil, fmt.Errorf("failed to access command archive %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open command archive: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open command archive %s: %w", path, err)
	}

	logctx.From(ctx).Debug("Opened command archive", "path", path)
	return &SQLiteSource{path: path, db: db}, nil
}

// Close releases the database handle
func (s *SQLiteSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetCmds returns the records dated at or after start without their params
func (s *SQLiteSource) GetCmds(ctx context.Context, start string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, date, type, tlmsid, source FROM cmds WHERE date >= ? ORDER BY date, idx`, start)
	if err != nil {
		return nil, fmt.Errorf("failed to query commands: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e      Event
			tlmsid sql.NullString
			source sql.NullString
		)
		if err := rows.Scan(&e.Index, &e.Date, &e.Type, &tlmsid, &source); err != nil {
			return nil, fmt.Errorf("failed to scan command: %w", err)
		}
		e.TLMSID = TLMSIDNone
		if tlmsid.Valid {
			e.TLMSID = tlmsid.String
		}
		e.Source = source.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read commands: %w", err)
	}

	logctx.From(ctx).Debug("Commands loaded", "start", start, "count", len(events))
	return events, nil
}

// FetchParams decodes the params column for each event
func (s *SQLiteSource) FetchParams(ctx context.Context, events []Event) error {
	byIndex := make(map[int64][]int, len(events))
	ids := make([]any, 0, len(events))
	for i, e := range events {
		if _, ok := byIndex[e.Index]; !ok {
			ids = append(ids, e.Index)
		}
		byIndex[e.Index] = append(byIndex[e.Index], i)
	}

	for start := 0; start < len(ids); start += paramsBatch {
		end := min(start+paramsBatch, len(ids))
		batch := ids[start:end]

		query := `SELECT idx, params FROM cmds WHERE idx IN (` +
			strings.TrimSuffix(strings.Repeat("?,", len(batch)), ",") + `)`

		if err := s.scanParams(ctx, query, batch, events, byIndex); err != nil {
			return err
		}
	}

	// Records without a params row still get a non-nil map
	for i := range events {
		if events[i].Params == nil {
			events[i].Params = map[string]any{}
		}
	}
	return nil
}

func (s *SQLiteSource) scanParams(ctx context.Context, query string, args []any, events []Event, byIndex map[int64][]int) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query params: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			idx int64
			raw sql.NullString
		)
		if err := rows.Scan(&idx, &raw); err != nil {
			return fmt.Errorf("failed to scan params: %w", err)
		}

		params := map[string]any{}
		if raw.Valid && strings.TrimSpace(raw.String) != "" {
			if err := json.Unmarshal([]byte(raw.String), &params); err != nil {
				return fmt.Errorf("failed to decode params for command %d: %w", idx, err)
			}
		}
		for _, i := range byIndex[idx] {
			events[i].Params = params
		}
	}
	return rows.Err()
}
