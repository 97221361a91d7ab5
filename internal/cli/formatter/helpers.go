package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DeadlineStyled renders a deadline relative to now, red when it is
// within two days or already passed, yellow within a week.
func DeadlineStyled(t time.Time) string {
	text := RelativeDate(t)
	days := int(math.Round(time.Until(t).Hours() / 24))

	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// Date formats a calendar date the way forms accept it.
func Date(t time.Time) string {
	return t.Format("2006-01-02")
}

// HumanTimestamp returns a relative timestamp such as "3 hours ago".
func HumanTimestamp(t time.Time) string {
	if time.Since(t) < time.Minute {
		return "Just now"
	}
	return humanize.Time(t)
}

// Money formats whole kroner with space thousands separators: "12 500 kr".
func Money(nok int) string {
	return strings.ReplaceAll(humanize.Comma(int64(nok)), ",", " ") + " kr"
}

// Rate formats an hourly rate.
func Rate(nok int) string {
	return Money(nok) + "/h"
}

// Hours formats logged hours with at most one decimal: "12.5h", "8h".
func Hours(h float64) string {
	return humanize.FtoaWithDigits(h, 1) + "h"
}

// Stars renders a 1..5 rating as filled and empty stars.
func Stars(rating float64) string {
	n := int(math.Round(rating))
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return StyleYellow.Render(strings.Repeat("★", n)) + StyleDim.Render(strings.Repeat("☆", 5-n))
}

// JobStatusPill returns a colored status indicator for a job.
func JobStatusPill(status domain.JobStatus) string {
	switch status {
	case domain.JobOpen:
		return StyleBlue.Render("○ Open")
	case domain.JobInProgress:
		return StyleGreen.Render("● In progress")
	case domain.JobCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.JobCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// ApplicationStatusPill returns a colored status indicator for an application.
func ApplicationStatusPill(status domain.ApplicationStatus) string {
	switch status {
	case domain.ApplicationPending:
		return StyleYellow.Render("○ Pending")
	case domain.ApplicationAccepted:
		return StyleGreen.Render("● Accepted")
	case domain.ApplicationRejected:
		return StyleRed.Render("✖ Rejected")
	case domain.ApplicationWithdrawn:
		return StyleDim.Render("⊘ Withdrawn")
	default:
		return StyleDim.Render(string(status))
	}
}

// ChangeStatusPill returns a colored status indicator for a change request.
func ChangeStatusPill(status domain.ChangeStatus) string {
	switch status {
	case domain.ChangePending:
		return StyleYellow.Render("○ Pending")
	case domain.ChangeApproved:
		return StyleGreen.Render("✔ Approved")
	case domain.ChangeDeclined:
		return StyleRed.Render("✖ Declined")
	default:
		return StyleDim.Render(string(status))
	}
}

// PaymentStatusPill returns a colored status indicator for a payment.
func PaymentStatusPill(status domain.PaymentStatus) string {
	if status == domain.PaymentPaid {
		return StyleGreen.Render("✔ Paid")
	}
	return StyleYellow.Render("○ Pending")
}

// CategoryBadge returns a capitalized, purple-styled category label.
func CategoryBadge(c string) string {
	if c == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(strings.ToUpper(c[:1]) + c[1:])
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}

// ShortID returns the first 8 characters of an ID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
