// Package aggregate implements the offline capability batch job: fetch every
// engine's language/region capability data, merge it into one coverage table,
// filter by engine-coverage thresholds and write the canonical catalog.
package aggregate

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	_ "modernc.org/sqlite"

	"github.com/quietsearch/quietsearch/internal/engines"
)

// Cache persists the last good capability payload per engine, so a failed
// fetch degrades to cached data instead of dropping the engine's coverage,
// and --offline runs need no network at all.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (and migrates) the SQLite fetch cache at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS capabilities (
		engine     TEXT PRIMARY KEY,
		envelope   BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate cache: %w", err)
	}

	return &Cache{db: db}, nil
}

// Put stores an engine's capability payload, wrapped in an envelope carrying
// the run ID and fetch time.
func (c *Cache) Put(engine string, capability *engines.Capability, runID string) error {
	payload, err := json.Marshal(capability)
	if err != nil {
		return fmt.Errorf("failed to encode capability for '%s': %w", engine, err)
	}

	envelope := []byte(`{}`)
	envelope, _ = sjson.SetRawBytes(envelope, "data", payload)
	envelope, _ = sjson.SetBytes(envelope, "run_id", runID)
	envelope, _ = sjson.SetBytes(envelope, "fetched_at", time.Now().UTC().Format(time.RFC3339))

	_, err = c.db.Exec(`
		INSERT INTO capabilities (engine, envelope) VALUES (?, ?)
		ON CONFLICT(engine) DO UPDATE SET envelope = excluded.envelope, updated_at = CURRENT_TIMESTAMP`,
		engine, envelope)
	if err != nil {
		return fmt.Errorf("failed to store capability for '%s': %w", engine, err)
	}
	return nil
}

// Get returns the cached capability for an engine, with its fetch time.
// A cache miss returns ok=false without error.
func (c *Cache) Get(engine string) (*engines.Capability, time.Time, bool, error) {
	var envelope []byte
	err := c.db.QueryRow(`SELECT envelope FROM capabilities WHERE engine = ?`, engine).Scan(&envelope)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("failed to read cache for '%s': %w", engine, err)
	}

	data := gjson.GetBytes(envelope, "data")
	if !data.Exists() {
		return nil, time.Time{}, false, fmt.Errorf("corrupt cache envelope for '%s'", engine)
	}
	var capability engines.Capability
	if err := json.Unmarshal([]byte(data.Raw), &capability); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("corrupt cached capability for '%s': %w", engine, err)
	}

	fetchedAt, _ := time.Parse(time.RFC3339, gjson.GetBytes(envelope, "fetched_at").String())
	return &capability, fetchedAt, true, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
