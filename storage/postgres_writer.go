package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/VeraSamohina/skypro-course-work-OOP/models"
)

// PostgresWriter persists canonical vacancies to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	// date stays in the canonical DD.MM.YYYY textual form — the same fixed
	// pattern used for sorting and re-parsing.
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS vacancies (
			id            SERIAL PRIMARY KEY,
			title         TEXT          NOT NULL,
			link          TEXT          UNIQUE NOT NULL,
			employer      TEXT          NOT NULL DEFAULT '',
			salary_from   INTEGER       NOT NULL DEFAULT 0,
			salary_to     INTEGER       NOT NULL DEFAULT 0,
			currency      VARCHAR(50)   NOT NULL DEFAULT '',
			currency_rate NUMERIC(12,4) NOT NULL DEFAULT 0,
			town          TEXT          NOT NULL DEFAULT '',
			date          VARCHAR(10)   NOT NULL,
			created_at    TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_vacancies_town ON vacancies(town);
		CREATE INDEX IF NOT EXISTS idx_vacancies_salary_from ON vacancies(salary_from);
	`)
	return err
}

// Clear deletes all stored vacancies.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM vacancies")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts vacancies, skipping postings whose link is already
// stored.
func (pw *PostgresWriter) Write(vacs []*models.Vacancy) error {
	if len(vacs) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(vacs); i += batchSize {
		end := i + batchSize
		if end > len(vacs) {
			end = len(vacs)
		}
		if err := pw.insertBatch(vacs[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Vacancy) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*9)

	for idx, v := range batch {
		base := idx * 9
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		valueArgs = append(valueArgs,
			v.Title, v.Link, v.Employer, v.SalaryFrom, v.SalaryTo,
			v.Currency, v.CurrencyRate, v.Town, v.Date)
	}

	query := fmt.Sprintf(`
		INSERT INTO vacancies (title, link, employer, salary_from, salary_to, currency, currency_rate, town, date)
		VALUES %s
		ON CONFLICT (link) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

// Close closes the database handle.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored vacancies in insertion order; the
// post-store summary runs over this accumulated set.
func (pw *PostgresWriter) FetchAll() ([]*models.Vacancy, error) {
	rows, err := pw.db.Query(`
		SELECT title, link, employer, salary_from, salary_to, currency, currency_rate, town, date
		FROM vacancies
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var vacs []*models.Vacancy
	for rows.Next() {
		v := &models.Vacancy{}
		if err := rows.Scan(
			&v.Title, &v.Link, &v.Employer, &v.SalaryFrom, &v.SalaryTo,
			&v.Currency, &v.CurrencyRate, &v.Town, &v.Date,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		vacs = append(vacs, v)
	}
	return vacs, rows.Err()
}
