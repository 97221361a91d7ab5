package domain

import "time"

// WorkLog records hours a student reported against an active job.
type WorkLog struct {
	ID        string
	JobID     string
	StudentID string
	Hours     float64
	Note      string
	LoggedAt  time.Time
}

type Payment struct {
	ID         string
	JobID      string
	StudentID  string
	EmployerID string
	AmountNOK  int
	Status     PaymentStatus
	CreatedAt  time.Time
	PaidAt     *time.Time
}

// MarkPaid settles a pending payment. Settling twice is a no-op.
func (p *Payment) MarkPaid(now time.Time) {
	if p.Status == PaymentPaid {
		return
	}
	p.Status = PaymentPaid
	p.PaidAt = &now
}
