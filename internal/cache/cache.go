// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists search results and AI responses under
// content-addressed keys with a store-wide TTL. Entries self-heal on read:
// anything expired or unreadable is evicted and reported as a miss, never as
// an error.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/answer-engine/pkg/types"
)

const dbFile = "cache.db"

// Store is a TTL-expiring key/value cache backed by SQLite. The TTL applies
// store-wide and is fixed at construction; individual writes cannot override
// it. sql.DB serializes same-key access, so concurrent callers never observe
// a half-written entry.
type Store struct {
	db  *sql.DB
	ttl time.Duration

	// clock supplies the current time. Tests substitute it to exercise
	// expiry without sleeping.
	clock func() time.Time
}

// Open creates or opens the cache database at dir/cache.db and ensures the
// schema exists.
func Open(cfg types.CacheConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	return newStore(db, cfg.TTL)
}

// OpenInMemory creates a cache backed by an in-memory database. Used by tests
// and by callers that want caching semantics without persistence.
func OpenInMemory(ttl time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory cache: %w", err)
	}
	return newStore(db, ttl)
}

func newStore(db *sql.DB, ttl time.Duration) (*Store, error) {
	s := &Store{db: db, ttl: ttl, clock: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

func (s *Store) createSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS entries (
	key        TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	query      TEXT NOT NULL,
	type       TEXT NOT NULL,
	payload    BLOB NOT NULL
);`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetClock overrides the store's time source.
func (s *Store) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Key derives the content-addressed cache key for a (query, type) pair.
// Identical pairs always map to the same key; SHA-256 keeps accidental
// collisions between distinct pairs negligible.
func Key(query string, typ types.CacheType) string {
	h := sha256.Sum256([]byte(query + "\x00" + string(typ)))
	return hex.EncodeToString(h[:])
}

// Get returns the payload stored for (query, typ), or ok=false on a miss.
// Expired and structurally invalid entries are evicted during the read and
// reported as misses.
func (s *Store) Get(query string, typ types.CacheType) ([]byte, bool) {
	entry, ok := s.read(query, typ)
	if !ok {
		return nil, false
	}
	return entry.Payload, true
}

// read loads the full entry for (query, typ), applying expiry and
// self-healing.
func (s *Store) read(query string, typ types.CacheType) (types.CacheEntry, bool) {
	entry := types.CacheEntry{Key: Key(query, typ), Query: query, Type: typ}

	var createdAt string
	err := s.db.QueryRow(
		`SELECT created_at, payload FROM entries WHERE key = ?`, entry.Key,
	).Scan(&createdAt, &entry.Payload)
	if err != nil {
		// sql.ErrNoRows is an ordinary miss; any other read failure is
		// treated as corruption and healed the same way.
		if err != sql.ErrNoRows {
			s.evict(entry.Key)
		}
		return types.CacheEntry{}, false
	}

	entry.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		s.evict(entry.Key)
		return types.CacheEntry{}, false
	}

	// An entry is live strictly within the TTL window, so a zero-TTL store
	// misses even when no time has passed since the write.
	if s.clock().Sub(entry.CreatedAt) >= s.ttl {
		s.evict(entry.Key)
		return types.CacheEntry{}, false
	}

	return entry, true
}

// Set stores payload under the key derived from (query, typ), overwriting any
// existing entry. Last writer wins; the single-statement upsert keeps the
// entry atomic for concurrent readers.
func (s *Store) Set(query string, typ types.CacheType, payload []byte) error {
	entry := types.CacheEntry{
		Key:       Key(query, typ),
		CreatedAt: s.clock().UTC(),
		Query:     query,
		Type:      typ,
		Payload:   payload,
	}

	_, err := s.db.Exec(
		`INSERT INTO entries (key, created_at, query, type, payload)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   created_at = excluded.created_at,
		   query      = excluded.query,
		   type       = excluded.type,
		   payload    = excluded.payload`,
		entry.Key, entry.CreatedAt.Format(time.RFC3339Nano), entry.Query, string(entry.Type), entry.Payload,
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Clear evicts every entry unconditionally.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// Stats reports the total entry count and the count per cache type.
func (s *Store) Stats() (total int, byType map[types.CacheType]int, err error) {
	rows, err := s.db.Query(`SELECT type, COUNT(*) FROM entries GROUP BY type`)
	if err != nil {
		return 0, nil, fmt.Errorf("reading cache stats: %w", err)
	}
	defer rows.Close()

	byType = make(map[types.CacheType]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return 0, nil, fmt.Errorf("reading cache stats: %w", err)
		}
		byType[types.CacheType(typ)] = n
		total += n
	}
	return total, byType, rows.Err()
}

func (s *Store) evict(key string) {
	s.db.Exec(`DELETE FROM entries WHERE key = ?`, key)
}
