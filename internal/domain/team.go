package domain

import "time"

type TeamMember struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Role      TeamRole
	InvitedAt time.Time
}
