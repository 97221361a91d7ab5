package contract

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
)

const (
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldCategory       = "category"
	FieldLocation       = "location"
	FieldRemote         = "remote"
	FieldHourlyRate     = "hourly_rate"
	FieldEstimatedHours = "estimated_hours"
	FieldDeadline       = "deadline"
	FieldSkills         = "skills"
)

func jobFields() []form.Field {
	return []form.Field{
		form.Text(FieldTitle, "Title", "required,min=5,max=80"),
		form.Text(FieldDescription, "Description", "required,min=20,max=2000"),
		form.Text(FieldCategory, "Category", "required,oneof="+strings.Join(domain.JobCategories, " ")),
		form.Text(FieldLocation, "Location", "required,min=2,max=80"),
		form.Bool(FieldRemote, "Remote", ""),
		form.Int(FieldHourlyRate, "Hourly rate (NOK)", "required,min=150,max=2000"),
		form.Int(FieldEstimatedHours, "Estimated hours", "required,min=1,max=500"),
		form.Date(FieldDeadline, "Deadline", "required,notpast"),
		form.List(FieldSkills, "Skills", "required,max=10"),
	}
}

// PostJobSchema and EditJobSchema share their rules; they differ only in
// name so log records and notices can tell them apart.
var (
	PostJobSchema = form.NewSchema("post-job", jobFields()...)
	EditJobSchema = form.NewSchema("edit-job", jobFields()...)
)

type JobRequest struct {
	Title          string
	Description    string
	Category       string
	Location       string
	Remote         bool
	HourlyRate     int
	EstimatedHours int
	Deadline       time.Time
	Skills         []string
}

func DecodeJob(v form.Values) JobRequest {
	return JobRequest{
		Title:          v.String(FieldTitle),
		Description:    v.String(FieldDescription),
		Category:       v.String(FieldCategory),
		Location:       v.String(FieldLocation),
		Remote:         v.Bool(FieldRemote),
		HourlyRate:     v.Int(FieldHourlyRate),
		EstimatedHours: v.Int(FieldEstimatedHours),
		Deadline:       v.Time(FieldDeadline),
		Skills:         v.Strings(FieldSkills),
	}
}

// JobValues prefills the edit form from a stored job.
func JobValues(j *domain.Job) form.Values {
	return form.Values{
		FieldTitle:          j.Title,
		FieldDescription:    j.Description,
		FieldCategory:       j.Category,
		FieldLocation:       j.Location,
		FieldRemote:         j.Remote,
		FieldHourlyRate:     strconv.Itoa(j.HourlyRate),
		FieldEstimatedHours: strconv.Itoa(j.EstimatedHours),
		FieldDeadline:       j.Deadline.Format(form.DateLayout),
		FieldSkills:         append([]string(nil), j.Skills...),
	}
}
