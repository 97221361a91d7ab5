package importer

import (
	"cmp"
	"fmt"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var passwordCost = bcrypt.DefaultCost

// Seed is a converted ImportSchema, ready for persistence in slice order.
type Seed struct {
	Companies    []*domain.Company
	Users        []*domain.User
	Jobs         []*domain.Job
	Applications []*domain.Application
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, now time.Time) (*Seed, error) {
	now = now.UTC().Truncate(time.Second)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	refMap := make(map[string]string) // ref -> UUID
	seed := &Seed{}

	for _, c := range schema.Companies {
		id := uuid.New().String()
		refMap["company:"+c.Ref] = id
		seed.Companies = append(seed.Companies, &domain.Company{
			ID:        id,
			OrgNumber: c.OrgNumber,
			Name:      c.Name,
			Verified:  true,
			CreatedAt: now,
		})
	}

	for _, u := range schema.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), passwordCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %q: %w", u.Ref, err)
		}
		id := uuid.New().String()
		refMap["user:"+u.Ref] = id
		user := &domain.User{
			ID:             id,
			Role:           domain.Role(u.Role),
			Name:           u.Name,
			Email:          u.Email,
			Phone:          u.Phone,
			PasswordHash:   string(hash),
			University:     u.University,
			StudyProgram:   u.StudyProgram,
			GraduationYear: u.GraduationYear,
			ContactTitle:   u.ContactTitle,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if u.CompanyRef != "" {
			user.CompanyID = refMap["company:"+u.CompanyRef]
		}
		seed.Users = append(seed.Users, user)
	}
	companyOf := make(map[string]string, len(seed.Users))
	for _, u := range seed.Users {
		companyOf[u.ID] = u.CompanyID
	}

	for _, j := range schema.Jobs {
		employerID, ok := refMap["user:"+j.EmployerRef]
		if !ok {
			return nil, fmt.Errorf("employer_ref %q not found for job %q", j.EmployerRef, j.Ref)
		}
		status := domain.JobStatus(cmp.Or(j.Status, string(domain.JobOpen)))
		id := uuid.New().String()
		refMap["job:"+j.Ref] = id
		job := &domain.Job{
			ID:                id,
			EmployerID:        employerID,
			CompanyID:         companyOf[employerID],
			Title:             j.Title,
			Description:       j.Description,
			Category:          j.Category,
			Location:          j.Location,
			Remote:            j.Remote,
			Skills:            j.Skills,
			HourlyRate:        j.HourlyRate,
			EstimatedHours:    j.EstimatedHours,
			HoursLogged:       j.HoursLogged,
			Deadline:          today.AddDate(0, 0, j.DeadlineInDays),
			Status:            status,
			AssignedStudentID: refMap["user:"+j.StudentRef],
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		switch status {
		case domain.JobCompleted:
			job.CompletedAt = &now
		case domain.JobCancelled:
			job.CancelledAt = &now
		}
		seed.Jobs = append(seed.Jobs, job)
	}

	for _, a := range schema.Applications {
		jobID, ok := refMap["job:"+a.JobRef]
		if !ok {
			return nil, fmt.Errorf("job_ref %q not found", a.JobRef)
		}
		studentID, ok := refMap["user:"+a.StudentRef]
		if !ok {
			return nil, fmt.Errorf("student_ref %q not found", a.StudentRef)
		}
		status := domain.ApplicationStatus(cmp.Or(a.Status, string(domain.ApplicationPending)))
		seed.Applications = append(seed.Applications, &domain.Application{
			ID:           uuid.New().String(),
			JobID:        jobID,
			StudentID:    studentID,
			CoverLetter:  a.CoverLetter,
			HoursPerWeek: a.HoursPerWeek,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	return seed, nil
}
