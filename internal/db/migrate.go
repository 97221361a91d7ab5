package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillHoursLogged(db); err != nil {
		return fmt.Errorf("backfilling jobs.hours_logged: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id          TEXT PRIMARY KEY,
		org_number  TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		verified    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		role            TEXT NOT NULL CHECK(role IN ('student','employer')),
		name            TEXT NOT NULL,
		email           TEXT NOT NULL UNIQUE COLLATE NOCASE,
		phone           TEXT NOT NULL DEFAULT '',
		password_hash   TEXT NOT NULL DEFAULT '',
		university      TEXT NOT NULL DEFAULT '',
		study_program   TEXT NOT NULL DEFAULT '',
		graduation_year INTEGER NOT NULL DEFAULT 0,
		company_id      TEXT REFERENCES companies(id) ON DELETE SET NULL,
		contact_title   TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id                  TEXT PRIMARY KEY,
		employer_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		company_id          TEXT REFERENCES companies(id) ON DELETE SET NULL,
		title               TEXT NOT NULL,
		description         TEXT NOT NULL,
		category            TEXT NOT NULL,
		location            TEXT NOT NULL DEFAULT '',
		remote              INTEGER NOT NULL DEFAULT 0,
		skills              TEXT NOT NULL DEFAULT '',
		hourly_rate         INTEGER NOT NULL,
		estimated_hours     INTEGER NOT NULL,
		deadline            TEXT NOT NULL,
		status              TEXT NOT NULL DEFAULT 'open'
		                    CHECK(status IN ('open','in_progress','completed','cancelled')),
		assigned_student_id TEXT REFERENCES users(id) ON DELETE SET NULL,
		completed_at        TEXT,
		cancelled_at        TEXT,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_employer ON jobs(employer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_student ON jobs(assigned_student_id)`,

	`CREATE TABLE IF NOT EXISTS applications (
		id             TEXT PRIMARY KEY,
		job_id         TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		student_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		cover_letter   TEXT NOT NULL,
		hours_per_week INTEGER NOT NULL,
		status         TEXT NOT NULL DEFAULT 'pending'
		               CHECK(status IN ('pending','accepted','rejected','withdrawn')),
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		UNIQUE(job_id, student_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_applications_student ON applications(student_id)`,

	`CREATE TABLE IF NOT EXISTS change_requests (
		id             TEXT PRIMARY KEY,
		job_id         TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		requested_by   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		kind           TEXT NOT NULL CHECK(kind IN ('deadline','hours','rate','scope')),
		proposed_value TEXT NOT NULL,
		reason         TEXT NOT NULL,
		status         TEXT NOT NULL DEFAULT 'pending'
		               CHECK(status IN ('pending','approved','declined')),
		created_at     TEXT NOT NULL,
		resolved_at    TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_change_requests_job ON change_requests(job_id)`,

	`CREATE TABLE IF NOT EXISTS reports (
		id          TEXT PRIMARY KEY,
		reporter_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category    TEXT NOT NULL
		            CHECK(category IN ('fraud','harassment','payment','quality','other')),
		subject     TEXT NOT NULL,
		description TEXT NOT NULL,
		job_id      TEXT REFERENCES jobs(id) ON DELETE SET NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id         TEXT PRIMARY KEY,
		job_id     TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		author_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		rating     INTEGER NOT NULL CHECK(rating BETWEEN 1 AND 5),
		comment    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(job_id, author_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reviews_subject ON reviews(subject_id)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		id         TEXT PRIMARY KEY,
		company_id TEXT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL COLLATE NOCASE,
		role       TEXT NOT NULL CHECK(role IN ('admin','recruiter','viewer')),
		invited_at TEXT NOT NULL,
		UNIQUE(company_id, email)
	)`,

	`CREATE TABLE IF NOT EXISTS work_logs (
		id         TEXT PRIMARY KEY,
		job_id     TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		student_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		hours      REAL NOT NULL CHECK(hours > 0),
		note       TEXT NOT NULL DEFAULT '',
		logged_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_logs_job ON work_logs(job_id)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id          TEXT PRIMARY KEY,
		job_id      TEXT NOT NULL UNIQUE REFERENCES jobs(id) ON DELETE CASCADE,
		student_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		employer_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		amount_nok  INTEGER NOT NULL,
		status      TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending','paid')),
		created_at  TEXT NOT NULL,
		paid_at     TEXT
	)`,

	// Running hour total on jobs; older databases summed work_logs on read.
	`ALTER TABLE jobs ADD COLUMN hours_logged REAL NOT NULL DEFAULT 0`,
}

// migrateBackfillHoursLogged fills hours_logged for jobs whose work logs
// predate the column. Idempotent: jobs with a non-zero total are skipped.
func migrateBackfillHoursLogged(db *sql.DB) error {
	ctx := context.Background()
	_, err := db.ExecContext(ctx, `UPDATE jobs
		SET hours_logged = (SELECT COALESCE(SUM(hours), 0) FROM work_logs WHERE work_logs.job_id = jobs.id)
		WHERE hours_logged = 0
		  AND EXISTS (SELECT 1 FROM work_logs WHERE work_logs.job_id = jobs.id)`)
	if err != nil {
		return fmt.Errorf("updating job hour totals: %w", err)
	}
	return nil
}
