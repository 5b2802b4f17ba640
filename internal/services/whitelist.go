package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/netsentry/fortiview/internal/store"
	"github.com/netsentry/fortiview/pkg/models"
)

// WhitelistRepository provides CRUD access to MAC whitelists.
type WhitelistRepository interface {
	// GetAll returns every whitelist entry with its MAC list joined and
	// flattened, newest first.
	GetAll(ctx context.Context) ([]models.WhitelistEntry, error)

	// Create inserts a new entry with its MAC rows in one transaction and
	// returns it with the generated ID.
	Create(ctx context.Context, name string, macs []string) (*models.WhitelistEntry, error)

	// Update replaces an entry's name and full MAC list transactionally.
	Update(ctx context.Context, id int64, name string, macs []string) (*models.WhitelistEntry, error)

	// Delete removes an entry and its MAC rows. Deleting a nonexistent ID
	// succeeds silently.
	Delete(ctx context.Context, id int64) error

	// AddMAC appends a single MAC to an entry. Duplicates are not checked.
	AddMAC(ctx context.Context, id int64, mac string) error

	// RemoveMAC deletes a single MAC from an entry. Removing a MAC that is
	// not present is a no-op.
	RemoveMAC(ctx context.Context, id int64, mac string) error
}

// Compile-time interface guard.
var _ WhitelistRepository = (*SQLiteWhitelistRepository)(nil)

// SQLiteWhitelistRepository implements WhitelistRepository backed by the
// whitelists and whitelist_macs tables.
type SQLiteWhitelistRepository struct {
	store *store.SQLiteStore
	db    *sql.DB
}

// NewSQLiteWhitelistRepository creates a WhitelistRepository and runs the
// whitelist migrations.
func NewSQLiteWhitelistRepository(ctx context.Context, st *store.SQLiteStore) (*SQLiteWhitelistRepository, error) {
	if err := st.Migrate(ctx, "whitelist", whitelistMigrations); err != nil {
		return nil, fmt.Errorf("whitelist migrations: %w", err)
	}
	return &SQLiteWhitelistRepository{store: st, db: st.DB()}, nil
}

func (r *SQLiteWhitelistRepository) GetAll(ctx context.Context) ([]models.WhitelistEntry, error) {
	// GROUP_CONCAT aggregates without a guaranteed order, so MAC order
	// within an entry may differ from insertion order.
	rows, err := r.db.QueryContext(ctx, `
		SELECT w.id, w.name, w.created_at, GROUP_CONCAT(wm.mac)
		FROM whitelists w
		LEFT JOIN whitelist_macs wm ON w.id = wm.whitelist_id
		GROUP BY w.id
		ORDER BY w.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list whitelists: %w", err)
	}
	defer rows.Close()

	entries := []models.WhitelistEntry{}
	for rows.Next() {
		var e models.WhitelistEntry
		var macs sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.CreatedAt, &macs); err != nil {
			return nil, fmt.Errorf("scan whitelist row: %w", err)
		}
		if macs.Valid && macs.String != "" {
			e.MACs = strings.Split(macs.String, ",")
		} else {
			e.MACs = []string{}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLiteWhitelistRepository) Create(ctx context.Context, name string, macs []string) (*models.WhitelistEntry, error) {
	// created_at is taken at call time rather than re-read from storage.
	now := time.Now().UTC()

	var id int64
	err := r.store.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO whitelists (name, created_at) VALUES (?, ?)`, name, now)
		if err != nil {
			return fmt.Errorf("insert whitelist: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("whitelist id: %w", err)
		}
		return insertMACs(ctx, tx, id, macs)
	})
	if err != nil {
		return nil, err
	}

	return &models.WhitelistEntry{ID: id, Name: name, MACs: macList(macs), CreatedAt: now}, nil
}

func (r *SQLiteWhitelistRepository) Update(ctx context.Context, id int64, name string, macs []string) (*models.WhitelistEntry, error) {
	// Full replace: update the name, drop all prior MAC rows, insert the
	// new list. Not a diff.
	err := r.store.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE whitelists SET name = ? WHERE id = ?`, name, id)
		if err != nil {
			return fmt.Errorf("update whitelist %d: %w", id, err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM whitelist_macs WHERE whitelist_id = ?`, id); err != nil {
			return fmt.Errorf("clear whitelist %d macs: %w", id, err)
		}
		return insertMACs(ctx, tx, id, macs)
	})
	if err != nil {
		return nil, err
	}

	return &models.WhitelistEntry{ID: id, Name: name, MACs: macList(macs), CreatedAt: time.Now().UTC()}, nil
}

func (r *SQLiteWhitelistRepository) Delete(ctx context.Context, id int64) error {
	// Deleting an ID that does not exist is not an error.
	return r.store.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM whitelist_macs WHERE whitelist_id = ?`, id); err != nil {
			return fmt.Errorf("delete whitelist %d macs: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM whitelists WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete whitelist %d: %w", id, err)
		}
		return nil
	})
}

func (r *SQLiteWhitelistRepository) AddMAC(ctx context.Context, id int64, mac string) error {
	// The parent row must exist; otherwise the insert would leave an
	// orphan MAC row (foreign keys notwithstanding).
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM whitelists WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check whitelist %d: %w", id, err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO whitelist_macs (whitelist_id, mac) VALUES (?, ?)`, id, mac); err != nil {
		return fmt.Errorf("add mac to whitelist %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteWhitelistRepository) RemoveMAC(ctx context.Context, id int64, mac string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM whitelist_macs WHERE whitelist_id = ? AND mac = ?`, id, mac); err != nil {
		return fmt.Errorf("remove mac from whitelist %d: %w", id, err)
	}
	return nil
}

// insertMACs inserts all MAC rows for an entry inside an open transaction.
func insertMACs(ctx context.Context, tx *sql.Tx, id int64, macs []string) error {
	for _, mac := range macs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO whitelist_macs (whitelist_id, mac) VALUES (?, ?)`, id, mac); err != nil {
			return fmt.Errorf("insert whitelist %d mac %q: %w", id, mac, err)
		}
	}
	return nil
}

// macList normalizes a nil slice to an empty one for JSON responses.
func macList(macs []string) []string {
	if macs == nil {
		return []string{}
	}
	return macs
}

// whitelistMigrations defines the schema for the whitelist tables.
var whitelistMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create whitelist tables",
		Up: func(tx *sql.Tx) error {
			stmts := []string{
				`CREATE TABLE whitelists (
					id         INTEGER PRIMARY KEY AUTOINCREMENT,
					name       TEXT NOT NULL,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE whitelist_macs (
					id           INTEGER PRIMARY KEY AUTOINCREMENT,
					whitelist_id INTEGER NOT NULL REFERENCES whitelists(id) ON DELETE CASCADE,
					mac          TEXT NOT NULL
				)`,
				`CREATE INDEX idx_whitelist_macs_whitelist ON whitelist_macs(whitelist_id)`,
			}
			for _, stmt := range stmts {
				if _, err := tx.Exec(stmt); err != nil {
					return err
				}
			}
			return nil
		},
	},
}
