package domain

import "time"

type Report struct {
	ID          string
	ReporterID  string
	Category    ReportCategory
	Subject     string
	Description string
	JobID       *string
	CreatedAt   time.Time
}
