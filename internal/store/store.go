// Package store persists stage plot configurations in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/example/stageplot/internal/stage"
)

// ErrNotFound is returned when a configuration does not exist.
var ErrNotFound = errors.New("configuration not found")

//go:embed schema.sql
var schema string

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

// newID is replaced in tests.
var newID = uuid.NewString

// Config is one saved stage plot, or a preset when IsPreset is set.
type Config struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Name      string            `json:"name"`
	Items     []stage.Item      `json:"items"`
	IOTable   []stage.Channel   `json:"ioTable"`
	TechInfo  map[string]string `json:"techInfo"`
	IsPreset  bool              `json:"isPreset,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Metadata returns the fields that travel with the items.
func (c Config) Metadata() stage.Metadata {
	return stage.Metadata{Name: c.Name, IOTable: c.IOTable, TechInfo: c.TechInfo}.Clone()
}

// Store is a SQLite backed configuration store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: mkdir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

const columns = `id, user_id, name, items, io_table, tech_info, is_preset, created_at, updated_at`

// LoadLatestConfig returns the most recently updated configuration of user.
// It returns nil and no error when the user has none.
func (s *Store) LoadLatestConfig(ctx context.Context, user string) (*Config, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM configs
		WHERE user_id = ? AND is_preset = 0
		ORDER BY updated_at DESC, rowid DESC LIMIT 1`, user)
	c, err := scan(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// Get returns the configuration with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Config, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM configs WHERE id = ?`, id)
	return scan(row)
}

// Create inserts c with a fresh id and returns that id.
func (s *Store) Create(ctx context.Context, c Config) (string, error) {
	c.ID = newID()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	items, ioTable, tech, err := encodeColumns(c.Items, c.IOTable, c.TechInfo)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO configs (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, items, ioTable, tech, c.IsPreset,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return "", fmt.Errorf("store: create: %w", err)
	}
	return c.ID, nil
}

// Save replaces the items and metadata of an existing configuration.
func (s *Store) Save(ctx context.Context, id string, items []stage.Item, meta stage.Metadata) error {
	itemsJSON, ioTable, tech, err := encodeColumns(items, meta.IOTable, meta.TechInfo)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE configs
		SET name = ?, items = ?, io_table = ?, tech_info = ?, updated_at = ?
		WHERE id = ?`,
		meta.Name, itemsJSON, ioTable, tech, formatTime(now()), id)
	if err != nil {
		return fmt.Errorf("store: save %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("store: save %s: %w", id, ErrNotFound)
	}
	return nil
}

// List returns the configurations of user, newest first. With presets set
// only presets are returned, otherwise only regular configurations.
func (s *Store) List(ctx context.Context, user string, presets bool) ([]Config, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+columns+` FROM configs
		WHERE user_id = ? AND is_preset = ?
		ORDER BY updated_at DESC, rowid DESC`, user, presets)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()
	var out []Config
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return out, nil
}

// Delete removes a configuration.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM configs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("store: delete %s: %w", id, ErrNotFound)
	}
	return nil
}

// SavePreset stores items as a named preset of user.
func (s *Store) SavePreset(ctx context.Context, user, name string, items []stage.Item) (string, error) {
	return s.Create(ctx, Config{UserID: user, Name: name, Items: items, IsPreset: true})
}

// FindPreset returns the preset of user with the given name or id.
func (s *Store) FindPreset(ctx context.Context, user, nameOrID string) (*Config, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM configs
		WHERE user_id = ? AND is_preset = 1 AND (id = ? OR name = ?)
		ORDER BY updated_at DESC, rowid DESC LIMIT 1`, user, nameOrID, nameOrID)
	return scan(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*Config, error) {
	var (
		c                    Config
		items, ioTable, tech string
		createdAt, updatedAt string
	)
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &items, &ioTable, &tech, &c.IsPreset, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan: %w", err)
	}
	if err := json.Unmarshal([]byte(items), &c.Items); err != nil {
		return nil, fmt.Errorf("store: %s: items: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(ioTable), &c.IOTable); err != nil {
		return nil, fmt.Errorf("store: %s: io table: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(tech), &c.TechInfo); err != nil {
		return nil, fmt.Errorf("store: %s: tech info: %w", c.ID, err)
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("store: %s: created_at: %w", c.ID, err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("store: %s: updated_at: %w", c.ID, err)
	}
	return &c, nil
}

func encodeColumns(items []stage.Item, ioTable []stage.Channel, tech map[string]string) (string, string, string, error) {
	if items == nil {
		items = []stage.Item{}
	}
	if ioTable == nil {
		ioTable = []stage.Channel{}
	}
	if tech == nil {
		tech = map[string]string{}
	}
	a, err := json.Marshal(items)
	if err != nil {
		return "", "", "", fmt.Errorf("store: encode items: %w", err)
	}
	b, err := json.Marshal(ioTable)
	if err != nil {
		return "", "", "", fmt.Errorf("store: encode io table: %w", err)
	}
	c, err := json.Marshal(tech)
	if err != nil {
		return "", "", "", fmt.Errorf("store: encode tech info: %w", err)
	}
	return string(a), string(b), string(c), nil
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }
