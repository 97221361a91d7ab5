package contract

import (
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
)

const (
	FieldSubject = "subject"
	FieldJobID   = "job_id"
)

var ReportCategories = []string{
	string(domain.ReportFraud),
	string(domain.ReportHarassment),
	string(domain.ReportPayment),
	string(domain.ReportQuality),
	string(domain.ReportOther),
}

var ReportSchema = form.NewSchema("report",
	form.Text(FieldCategory, "Category", "required,oneof=fraud harassment payment quality other"),
	form.Text(FieldSubject, "Subject", "required,min=5,max=100"),
	form.Text(FieldDescription, "Description", "required,min=20,max=1000"),
	form.Text(FieldJobID, "Related job", "omitempty,max=64"),
)

type ReportRequest struct {
	Category    domain.ReportCategory
	Subject     string
	Description string
	JobID       string
}

func DecodeReport(v form.Values) ReportRequest {
	return ReportRequest{
		Category:    domain.ReportCategory(v.String(FieldCategory)),
		Subject:     v.String(FieldSubject),
		Description: v.String(FieldDescription),
		JobID:       v.String(FieldJobID),
	}
}
