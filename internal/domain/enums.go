package domain

type Role string

const (
	RoleStudent  Role = "student"
	RoleEmployer Role = "employer"
)

type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

type ChangeKind string

const (
	ChangeDeadline ChangeKind = "deadline"
	ChangeHours    ChangeKind = "hours"
	ChangeRate     ChangeKind = "rate"
	ChangeScope    ChangeKind = "scope"
)

type ChangeStatus string

const (
	ChangePending  ChangeStatus = "pending"
	ChangeApproved ChangeStatus = "approved"
	ChangeDeclined ChangeStatus = "declined"
)

type ReportCategory string

const (
	ReportFraud      ReportCategory = "fraud"
	ReportHarassment ReportCategory = "harassment"
	ReportPayment    ReportCategory = "payment"
	ReportQuality    ReportCategory = "quality"
	ReportOther      ReportCategory = "other"
)

type TeamRole string

const (
	TeamAdmin     TeamRole = "admin"
	TeamRecruiter TeamRole = "recruiter"
	TeamViewer    TeamRole = "viewer"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// JobCategories is the canonical, ordered set of job category strings.
var JobCategories = []string{
	"development", "design", "data", "support", "testing", "devops", "other",
}

// ValidJobCategory reports whether c is one of JobCategories.
func ValidJobCategory(c string) bool {
	for _, v := range JobCategories {
		if v == c {
			return true
		}
	}
	return false
}
