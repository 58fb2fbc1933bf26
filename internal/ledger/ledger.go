// Package ledger records resolved days in a session-scoped SQLite
// database and serves the aggregate queries behind the summary views.
// The database lives in memory: the session is the unit of persistence,
// nothing survives it.
package ledger

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/maciej-vess/business-food-truck/internal/game"
)

// DB wraps the ledger connection.
type DB struct {
	conn *sqlx.DB
}

// Open creates the session ledger. An empty path opens an in-memory
// database, which is the normal mode.
func Open(path string) (*DB, error) {
	if path == "" {
		path = ":memory:"
	}
	conn, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	// One connection: an in-memory database per connection would
	// otherwise split the ledger.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	return db, nil
}

// Close closes the ledger connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		type TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		product TEXT NOT NULL DEFAULT '',
		units_sold INTEGER NOT NULL,
		profit INTEGER NOT NULL,
		cash_after INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_day ON results(day);
	CREATE INDEX IF NOT EXISTS idx_results_type ON results(type);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Record appends one resolved day. Implements game.Recorder.
func (db *DB) Record(r game.DailyResult) error {
	_, err := db.conn.Exec(
		`INSERT INTO results (day, type, location, product, units_sold, profit, cash_after)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Day, r.Type, r.Location, r.Product, r.UnitsSold, r.Profit, r.CashAfter,
	)
	if err != nil {
		return fmt.Errorf("insert result day %d: %w", r.Day, err)
	}
	return nil
}

// Reset wipes the ledger for a new session.
func (db *DB) Reset() error {
	if _, err := db.conn.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	return nil
}

// ModeTotal aggregates profit and volume for one decision type.
type ModeTotal struct {
	Type      string `json:"type" db:"type"`
	Days      int    `json:"days" db:"days"`
	UnitsSold int    `json:"units_sold" db:"units_sold"`
	Profit    int    `json:"profit" db:"profit"`
}

// ModeTotals returns per-type totals ordered by profit, best first.
func (db *DB) ModeTotals() ([]ModeTotal, error) {
	var out []ModeTotal
	err := db.conn.Select(&out, `
		SELECT type, COUNT(*) AS days, SUM(units_sold) AS units_sold, SUM(profit) AS profit
		FROM results GROUP BY type ORDER BY profit DESC`)
	if err != nil {
		return nil, fmt.Errorf("mode totals: %w", err)
	}
	return out, nil
}

// PairTotal aggregates sales for one (location, product) pairing.
type PairTotal struct {
	Location  string `json:"location" db:"location"`
	Product   string `json:"product" db:"product"`
	Days      int    `json:"days" db:"days"`
	UnitsSold int    `json:"units_sold" db:"units_sold"`
	Profit    int    `json:"profit" db:"profit"`
}

// PairTotals returns per-pairing sale totals, best profit first.
// Report days carry no pairing and are excluded.
func (db *DB) PairTotals() ([]PairTotal, error) {
	var out []PairTotal
	err := db.conn.Select(&out, `
		SELECT location, product, COUNT(*) AS days,
		       SUM(units_sold) AS units_sold, SUM(profit) AS profit
		FROM results
		WHERE location != ''
		GROUP BY location, product
		ORDER BY profit DESC`)
	if err != nil {
		return nil, fmt.Errorf("pair totals: %w", err)
	}
	return out, nil
}

// BestDay returns the most profitable sale day, if any sale resolved.
func (db *DB) BestDay() (*game.DailyResult, error) {
	var out []game.DailyResult
	err := db.conn.Select(&out, `
		SELECT day, type, location, product, units_sold, profit, cash_after
		FROM results
		WHERE location != ''
		ORDER BY profit DESC, day ASC
		LIMIT 1`)
	if err != nil {
		return nil, fmt.Errorf("best day: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// NetProfit returns the summed profit of every recorded day.
func (db *DB) NetProfit() (int, error) {
	var total int
	err := db.conn.Get(&total, "SELECT COALESCE(SUM(profit), 0) FROM results")
	if err != nil {
		return 0, fmt.Errorf("net profit: %w", err)
	}
	return total, nil
}
