package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// submission_date is stored as unix nanoseconds so descending order with
// the rowid tie-break reproduces exact submission order.
const schema = `
CREATE TABLE IF NOT EXISTS applications (
    id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    business_name TEXT NOT NULL DEFAULT '',
    funding_amount TEXT NOT NULL DEFAULT '',
    time_in_business TEXT NOT NULL DEFAULT '',
    service_interest TEXT NOT NULL,
    submission_date INTEGER NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status);
CREATE INDEX IF NOT EXISTS idx_applications_submission_date ON applications(submission_date);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
