// Package persistence provides a SQLite archive of completed simulation
// runs: one row of metadata per run plus the full period-by-period record
// series, so past runs can be listed and replayed without re-simulating.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jstammers/companies-house-abm/internal/engine"
)

// DB wraps a SQLite connection for the run archive.
type DB struct {
	conn *sqlx.DB
}

// RunMeta is one archived run's metadata row.
type RunMeta struct {
	ID                string  `db:"id" json:"id"`
	CreatedAt         string  `db:"created_at" json:"created_at"`
	Firms             int     `db:"n_firms" json:"n_firms"`
	Households        int     `db:"n_households" json:"n_households"`
	Banks             int     `db:"n_banks" json:"n_banks"`
	Periods           int     `db:"periods" json:"periods"`
	Seed              uint64  `db:"seed" json:"seed"`
	FinalGDP          float64 `db:"final_gdp" json:"final_gdp"`
	FinalUnemployment float64 `db:"final_unemployment" json:"final_unemployment"`
	FinalInflation    float64 `db:"final_inflation" json:"final_inflation"`
	FirmBankruptcies  int     `db:"firm_bankruptcies" json:"firm_bankruptcies"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		n_firms INTEGER NOT NULL,
		n_households INTEGER NOT NULL,
		n_banks INTEGER NOT NULL,
		periods INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		final_gdp REAL NOT NULL,
		final_unemployment REAL NOT NULL,
		final_inflation REAL NOT NULL,
		firm_bankruptcies INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS period_records (
		run_id TEXT NOT NULL REFERENCES runs(id),
		period INTEGER NOT NULL,
		gdp REAL NOT NULL,
		inflation REAL NOT NULL,
		unemployment_rate REAL NOT NULL,
		average_wage REAL NOT NULL,
		policy_rate REAL NOT NULL,
		government_deficit REAL NOT NULL,
		government_debt REAL NOT NULL,
		total_lending REAL NOT NULL,
		firm_bankruptcies INTEGER NOT NULL,
		total_employment INTEGER NOT NULL,
		PRIMARY KEY (run_id, period)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun archives a completed run and returns its generated id. The
// metadata row and all period records are written in one transaction.
func (db *DB) SaveRun(opts engine.Options, records []engine.PeriodRecord) (string, error) {
	id := uuid.NewString()

	meta := RunMeta{
		ID:         id,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Firms:      opts.Firms,
		Households: opts.Households,
		Banks:      opts.Banks,
		Periods:    opts.Periods,
		Seed:       opts.Seed,
	}
	if len(records) > 0 {
		last := records[len(records)-1]
		meta.FinalGDP = last.GDP
		meta.FinalUnemployment = last.UnemploymentRate
		meta.FinalInflation = last.Inflation
		meta.FirmBankruptcies = last.FirmBankruptcies
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, created_at, n_firms, n_households, n_banks, periods, seed,
		 final_gdp, final_unemployment, final_inflation, firm_bankruptcies)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.CreatedAt, meta.Firms, meta.Households, meta.Banks,
		meta.Periods, int64(meta.Seed), meta.FinalGDP, meta.FinalUnemployment,
		meta.FinalInflation, meta.FirmBankruptcies,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO period_records
		(run_id, period, gdp, inflation, unemployment_rate, average_wage,
		 policy_rate, government_deficit, government_debt, total_lending,
		 firm_bankruptcies, total_employment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			id, r.Period, r.GDP, r.Inflation, r.UnemploymentRate,
			r.AverageWage, r.PolicyRate, r.GovernmentDeficit,
			r.GovernmentDebt, r.TotalLending, r.FirmBankruptcies,
			r.TotalEmployment,
		)
		if err != nil {
			return "", fmt.Errorf("insert period %d: %w", r.Period, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	slog.Info("run archived", "run_id", id, "periods", len(records))
	return id, nil
}

// ListRuns returns archived run metadata, most recent first. A limit of
// zero or less means no limit.
func (db *DB) ListRuns(limit int) ([]RunMeta, error) {
	if limit <= 0 {
		limit = -1
	}
	var runs []RunMeta
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// LoadRun returns an archived run's metadata and its full record series
// in period order.
func (db *DB) LoadRun(id string) (*RunMeta, []engine.PeriodRecord, error) {
	var meta RunMeta
	if err := db.conn.Get(&meta, "SELECT * FROM runs WHERE id = ?", id); err != nil {
		return nil, nil, fmt.Errorf("load run %s: %w", id, err)
	}

	var records []engine.PeriodRecord
	err := db.conn.Select(&records, `SELECT
		period, gdp, inflation, unemployment_rate, average_wage, policy_rate,
		government_deficit, government_debt, total_lending, firm_bankruptcies,
		total_employment
		FROM period_records WHERE run_id = ? ORDER BY period`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load records for %s: %w", id, err)
	}

	return &meta, records, nil
}
