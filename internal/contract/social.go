package contract

import (
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
)

const (
	FieldRating       = "rating"
	FieldComment      = "comment"
	FieldCoverLetter  = "cover_letter"
	FieldHoursPerWeek = "hours_per_week"
	FieldTeamRole     = "team_role"
)

var ReviewSchema = form.NewSchema("review",
	form.Int(FieldRating, "Rating", "required,min=1,max=5"),
	form.Text(FieldComment, "Comment", "required,min=10,max=500"),
)

type ReviewRequest struct {
	Rating  int
	Comment string
}

func DecodeReview(v form.Values) ReviewRequest {
	return ReviewRequest{Rating: v.Int(FieldRating), Comment: v.String(FieldComment)}
}

var ApplicationSchema = form.NewSchema("application",
	form.Text(FieldCoverLetter, "Cover letter", "required,min=20,max=1500"),
	form.Int(FieldHoursPerWeek, "Hours per week", "required,min=1,max=40"),
)

type ApplicationRequest struct {
	CoverLetter  string
	HoursPerWeek int
}

func DecodeApplication(v form.Values) ApplicationRequest {
	return ApplicationRequest{
		CoverLetter:  v.String(FieldCoverLetter),
		HoursPerWeek: v.Int(FieldHoursPerWeek),
	}
}

var TeamInviteSchema = form.NewSchema("team-invite",
	form.Text(FieldName, "Name", "required,min=2,max=60"),
	form.Text(FieldEmail, "Email", "required,email,max=120"),
	form.Text(FieldTeamRole, "Role", "required,oneof=admin recruiter viewer"),
)

type TeamInviteRequest struct {
	Name  string
	Email string
	Role  domain.TeamRole
}

func DecodeTeamInvite(v form.Values) TeamInviteRequest {
	return TeamInviteRequest{
		Name:  v.String(FieldName),
		Email: v.String(FieldEmail),
		Role:  domain.TeamRole(v.String(FieldTeamRole)),
	}
}
