package importer

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoSeed []byte

// ImportSchema is the top-level structure of a seed file. Entities refer
// to each other by ref, never by database ID. JSON is accepted as well,
// since it is valid YAML.
type ImportSchema struct {
	Companies    []CompanyImport     `yaml:"companies"`
	Users        []UserImport        `yaml:"users"`
	Jobs         []JobImport         `yaml:"jobs"`
	Applications []ApplicationImport `yaml:"applications,omitempty"`
}

type CompanyImport struct {
	Ref       string `yaml:"ref"`
	OrgNumber string `yaml:"org_number"`
	Name      string `yaml:"name"`
}

type UserImport struct {
	Ref      string `yaml:"ref"`
	Role     string `yaml:"role"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Password string `yaml:"password"`

	University     string `yaml:"university,omitempty"`
	StudyProgram   string `yaml:"study_program,omitempty"`
	GraduationYear int    `yaml:"graduation_year,omitempty"`

	CompanyRef   string `yaml:"company_ref,omitempty"`
	ContactTitle string `yaml:"contact_title,omitempty"`
}

// JobImport defines a job. Deadlines are relative to the import date so
// a seed file never goes stale.
type JobImport struct {
	Ref            string   `yaml:"ref"`
	EmployerRef    string   `yaml:"employer_ref"`
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description"`
	Category       string   `yaml:"category"`
	Location       string   `yaml:"location"`
	Remote         bool     `yaml:"remote,omitempty"`
	Skills         []string `yaml:"skills"`
	HourlyRate     int      `yaml:"hourly_rate"`
	EstimatedHours int      `yaml:"estimated_hours"`
	DeadlineInDays int      `yaml:"deadline_in_days"`
	Status         string   `yaml:"status,omitempty"`
	StudentRef     string   `yaml:"student_ref,omitempty"`
	HoursLogged    float64  `yaml:"hours_logged,omitempty"`
}

type ApplicationImport struct {
	JobRef       string `yaml:"job_ref"`
	StudentRef   string `yaml:"student_ref"`
	CoverLetter  string `yaml:"cover_letter"`
	HoursPerWeek int    `yaml:"hours_per_week"`
	Status       string `yaml:"status,omitempty"`
}

// LoadImportSchema reads and parses a seed file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses seed data. Unknown keys are rejected.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &schema, nil
}

// DemoSchema returns the built-in demo marketplace.
func DemoSchema() (*ImportSchema, error) {
	return ParseImportSchema(demoSeed)
}
