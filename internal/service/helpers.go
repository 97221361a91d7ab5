package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/repository"
)

// ownedJob loads a job and checks that the session's employer posted it.
func ownedJob(ctx context.Context, jobs repository.JobRepo, sess domain.Session, jobID string) (*domain.Job, error) {
	if err := requireEmployer(sess); err != nil {
		return nil, err
	}
	j, err := jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.EmployerID != sess.UserID {
		return nil, fmt.Errorf("%w: job %q belongs to another employer", ErrForbidden, j.Title)
	}
	return j, nil
}

// participantJob loads a job and checks that the session is its employer
// or its assigned student.
func participantJob(ctx context.Context, jobs repository.JobRepo, sess domain.Session, jobID string) (*domain.Job, error) {
	if err := requireAuth(sess); err != nil {
		return nil, err
	}
	j, err := jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(j, sess) {
		return nil, fmt.Errorf("%w: you are not part of job %q", ErrForbidden, j.Title)
	}
	return j, nil
}

func isParticipant(j *domain.Job, sess domain.Session) bool {
	switch sess.Role {
	case domain.RoleEmployer:
		return j.EmployerID == sess.UserID
	case domain.RoleStudent:
		return j.AssignedStudentID != "" && j.AssignedStudentID == sess.UserID
	}
	return false
}

// counterpart returns the other party of an assigned job.
func counterpart(j *domain.Job, userID string) string {
	if userID == j.EmployerID {
		return j.AssignedStudentID
	}
	return j.EmployerID
}

func filterStatus(jobs []*domain.Job, st domain.JobStatus) []*domain.Job {
	out := jobs[:0:0]
	for _, j := range jobs {
		if j.Status == st {
			out = append(out, j)
		}
	}
	return out
}
