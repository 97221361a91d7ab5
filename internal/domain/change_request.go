package domain

import (
	"fmt"
	"strconv"
	"time"
)

// ChangeRequest is a proposed amendment to an active job's terms.
type ChangeRequest struct {
	ID            string
	JobID         string
	RequestedBy   string
	Kind          ChangeKind
	ProposedValue string
	Reason        string
	Status        ChangeStatus
	CreatedAt     time.Time
	ResolvedAt    *time.Time
}

// Resolve approves or declines a pending request.
func (c *ChangeRequest) Resolve(approve bool, now time.Time) error {
	if c.Status != ChangePending {
		return fmt.Errorf("change request is already %s", c.Status)
	}
	if approve {
		c.Status = ChangeApproved
	} else {
		c.Status = ChangeDeclined
	}
	c.ResolvedAt = &now
	return nil
}

// ApplyTo writes an approved change into the job's terms.
// Scope changes carry free text and leave the job fields untouched.
func (c *ChangeRequest) ApplyTo(j *Job, now time.Time) error {
	switch c.Kind {
	case ChangeDeadline:
		d, err := time.Parse("2006-01-02", c.ProposedValue)
		if err != nil {
			return fmt.Errorf("proposed deadline %q: use YYYY-MM-DD", c.ProposedValue)
		}
		j.Deadline = d
	case ChangeHours:
		n, err := strconv.Atoi(c.ProposedValue)
		if err != nil || n <= 0 {
			return fmt.Errorf("proposed hours %q must be a positive number", c.ProposedValue)
		}
		j.EstimatedHours = n
	case ChangeRate:
		n, err := strconv.Atoi(c.ProposedValue)
		if err != nil || n <= 0 {
			return fmt.Errorf("proposed rate %q must be a positive number", c.ProposedValue)
		}
		j.HourlyRate = n
	case ChangeScope:
	default:
		return fmt.Errorf("unknown change kind %q", c.Kind)
	}
	j.UpdatedAt = now
	return nil
}
