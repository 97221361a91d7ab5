package domain

import (
	"fmt"
	"time"
)

type Application struct {
	ID           string
	JobID        string
	StudentID    string
	CoverLetter  string
	HoursPerWeek int
	Status       ApplicationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Decide moves a pending application to accepted or rejected.
func (a *Application) Decide(to ApplicationStatus, now time.Time) error {
	if to != ApplicationAccepted && to != ApplicationRejected {
		return fmt.Errorf("invalid decision %q", to)
	}
	if a.Status != ApplicationPending {
		return fmt.Errorf("application is already %s", a.Status)
	}
	a.Status = to
	a.UpdatedAt = now
	return nil
}

// Withdraw lets the student pull back a pending application.
func (a *Application) Withdraw(now time.Time) error {
	if a.Status != ApplicationPending {
		return fmt.Errorf("only pending applications can be withdrawn, this one is %s", a.Status)
	}
	a.Status = ApplicationWithdrawn
	a.UpdatedAt = now
	return nil
}
