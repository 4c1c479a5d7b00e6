// Package store persists the visited-POI set and camera preferences in a
// local sqlite database. Reads are answered from an in-memory cache loaded
// at open; writes go through a buffered channel to a single writer
// goroutine so the frame loop never blocks on disk.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

const zoomPrefKey = "camera_zoom"

type reqKind int

const (
	reqVisit reqKind = iota + 1
	reqReset
	reqPref
)

type req struct {
	kind  reqKind
	id    string
	key   string
	value string
}

// Store is the sqlite-backed visited/preference store. A nil *Store is
// usable: every method is a no-op, so callers running without persistence
// don't need to branch.
type Store struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool

	mu      sync.Mutex
	visited map[string]bool
	prefs   map[string]string
}

// Open opens (or creates) the database at path and loads the visited set
// and preferences into memory.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db:      db,
		ch:      make(chan req, 256),
		visited: make(map[string]bool),
		prefs:   make(map[string]string),
	}
	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("store: pragma: %w", err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visited (
			poi_id TEXT PRIMARY KEY,
			visited_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("store: schema: %w", err)
		}
	}
	return nil
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT poi_id FROM visited`)
	if err != nil {
		return fmt.Errorf("store: load visited: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("store: scan visited: %w", err)
		}
		s.visited[id] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("store: load visited: %w", err)
	}

	prows, err := s.db.Query(`SELECT key, value FROM prefs`)
	if err != nil {
		return fmt.Errorf("store: load prefs: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var k, v string
		if err := prows.Scan(&k, &v); err != nil {
			return fmt.Errorf("store: scan prefs: %w", err)
		}
		s.prefs[k] = v
	}
	return prows.Err()
}

// Close flushes pending writes and closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// MarkVisited records a POI as visited. Idempotent.
func (s *Store) MarkVisited(id string) {
	if s == nil || s.closed.Load() || id == "" {
		return
	}
	s.mu.Lock()
	already := s.visited[id]
	s.visited[id] = true
	s.mu.Unlock()
	if already {
		return
	}
	s.send(req{kind: reqVisit, id: id})
}

// IsVisited reports whether a POI has been visited.
func (s *Store) IsVisited(id string) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visited[id]
}

// Reset clears the visited set.
func (s *Store) Reset() {
	if s == nil || s.closed.Load() {
		return
	}
	s.mu.Lock()
	s.visited = make(map[string]bool)
	s.mu.Unlock()
	s.send(req{kind: reqReset})
}

// SetZoom persists the camera zoom preference.
func (s *Store) SetZoom(zoom float64) {
	if s == nil || s.closed.Load() {
		return
	}
	v := strconv.FormatFloat(zoom, 'g', -1, 64)
	s.mu.Lock()
	s.prefs[zoomPrefKey] = v
	s.mu.Unlock()
	s.send(req{kind: reqPref, key: zoomPrefKey, value: v})
}

// Zoom returns the persisted camera zoom preference, or ok=false when none
// was saved.
func (s *Store) Zoom() (float64, bool) {
	if s == nil {
		return 0, false
	}
	s.mu.Lock()
	v, found := s.prefs[zoomPrefKey]
	s.mu.Unlock()
	if !found {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (s *Store) send(r req) {
	select {
	case s.ch <- r:
	default:
		// Drop if the writer falls behind; the in-memory state stays correct
		// for this session.
	}
}

func (s *Store) loop() {
	for r := range s.ch {
		switch r.kind {
		case reqVisit:
			now := time.Now().UTC().Format(time.RFC3339Nano)
			_, _ = s.db.Exec(`INSERT OR IGNORE INTO visited(poi_id, visited_at) VALUES(?, ?)`, r.id, now)
		case reqReset:
			_, _ = s.db.Exec(`DELETE FROM visited`)
		case reqPref:
			_, _ = s.db.Exec(`INSERT OR REPLACE INTO prefs(key, value) VALUES(?, ?)`, r.key, r.value)
		}
	}
}
