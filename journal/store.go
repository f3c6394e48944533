// Package journal persists graph events in SQLite so a session can be replayed.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/journal/migrations"
)

// ErrNotJournaled is returned when appending an event that is not a domain fact
var ErrNotJournaled = errors.New("event type is not journaled")

// Record is one persisted event
type Record struct {
	Seq        int64
	GraphID    core.GraphID
	Type       event.EventType
	TypeName   string
	Payload    []byte
	Frame      int64
	RecordedAt time.Time
}

// Event decodes the record into a graph event with its typed payload
func (r Record) Event() (event.GraphEvent, error) {
	payload, err := event.DecodePayload(r.Type, r.Payload)
	if err != nil {
		return event.GraphEvent{}, fmt.Errorf("record %d: %w", r.Seq, err)
	}
	return event.GraphEvent{Type: r.Type, Payload: payload, Frame: r.Frame}, nil
}

// Store persists graph events in SQLite
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite journal and applies embedded migrations
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Single writer keeps seq order equal to append order
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	event.InitRegistry()
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Append persists one domain event and returns its sequence number
func (s *Store) Append(ctx context.Context, graphID core.GraphID, ev event.GraphEvent) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("journal is not configured")
	}
	if !event.Journaled(ev.Type) {
		return 0, fmt.Errorf("%s: %w", event.GetEventName(ev.Type), ErrNotJournaled)
	}

	data, err := event.EncodePayload(ev.Payload)
	if err != nil {
		return 0, err
	}

	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO events (graph_id, event_type, payload, frame, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		string(graphID),
		event.GetEventName(ev.Type),
		data,
		ev.Frame,
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("event seq: %w", err)
	}
	return seq, nil
}

// List returns up to limit records after afterSeq in seq order
// An empty graphID lists every graph; a graph's listing also carries the
// graph-less rows, such as a selection cleared across all graphs
func (s *Store) List(ctx context.Context, graphID core.GraphID, afterSeq int64, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("journal is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT seq, graph_id, event_type, payload, frame, recorded_at
FROM events
WHERE seq > ? AND (? = '' OR graph_id = ? OR graph_id = '')
ORDER BY seq
LIMIT ?`,
		afterSeq, string(graphID), string(graphID), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r          Record
			graph      string
			recordedAt int64
		)
		if err := rows.Scan(&r.Seq, &graph, &r.TypeName, &r.Payload, &r.Frame, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		et, ok := event.GetEventType(r.TypeName)
		if !ok {
			return nil, fmt.Errorf("event %d: unknown type %q", r.Seq, r.TypeName)
		}
		r.Type = et
		r.GraphID = core.GraphID(graph)
		r.RecordedAt = time.UnixMilli(recordedAt).UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return records, nil
}

// GraphIDs returns every graph with at least one journaled event, in first-seen order
func (s *Store) GraphIDs(ctx context.Context) ([]core.GraphID, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT graph_id FROM events WHERE graph_id <> '' GROUP BY graph_id ORDER BY MIN(seq)`)
	if err != nil {
		return nil, fmt.Errorf("query graphs: %w", err)
	}
	defer rows.Close()

	var ids []core.GraphID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan graph: %w", err)
		}
		ids = append(ids, core.GraphID(id))
	}
	return ids, rows.Err()
}
