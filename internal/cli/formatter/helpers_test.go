package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "0 kr", Money(0))
	assert.Equal(t, "950 kr", Money(950))
	assert.Equal(t, "12 500 kr", Money(12500))
	assert.Equal(t, "1 250 000 kr", Money(1250000))
	assert.Equal(t, "420 kr/h", Rate(420))
}

func TestHours(t *testing.T) {
	assert.Equal(t, "8h", Hours(8))
	assert.Equal(t, "12.5h", Hours(12.5))
	assert.Equal(t, "0h", Hours(0))
}

func TestHumanTimestamp(t *testing.T) {
	assert.Equal(t, "Just now", HumanTimestamp(time.Now()))
	assert.Contains(t, HumanTimestamp(time.Now().Add(-3*time.Hour)), "ago")
}

func TestStars(t *testing.T) {
	assert.Contains(t, Stars(4.4), "★★★★")
	assert.Contains(t, Stars(4.4), "☆")
	assert.NotContains(t, Stars(5), "☆")
	assert.NotContains(t, Stars(0), "★")
}

func TestStatusPills(t *testing.T) {
	assert.Contains(t, JobStatusPill(domain.JobInProgress), "In progress")
	assert.Contains(t, JobStatusPill(domain.JobStatus("weird")), "weird")
	assert.Contains(t, ApplicationStatusPill(domain.ApplicationWithdrawn), "Withdrawn")
	assert.Contains(t, ChangeStatusPill(domain.ChangeDeclined), "Declined")
	assert.Contains(t, PaymentStatusPill(domain.PaymentPaid), "Paid")
	assert.Contains(t, PaymentStatusPill(domain.PaymentPending), "Pending")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcdefgh", ShortID("abcdefgh-1234"))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestCategoryBadge(t *testing.T) {
	assert.Contains(t, CategoryBadge("design"), "Design")
	assert.Contains(t, CategoryBadge(""), "--")
}
