package contract

import (
	"strconv"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
)

const (
	FieldKind          = "kind"
	FieldProposedValue = "proposed_value"
	FieldReason        = "reason"
	FieldHours         = "hours"
	FieldNote          = "note"
)

// ChangeRequestSchema is the change request form on the active job screen.
// The proposed value is checked against the kind: a date for deadline
// changes, a whole number for hours and rate, free text for scope.
var ChangeRequestSchema = form.NewSchema("change-request",
	form.Text(FieldKind, "Change", "required,oneof=deadline hours rate scope"),
	form.Text(FieldProposedValue, "Proposed value", "required,max=200"),
	form.Text(FieldReason, "Reason", "required,min=10,max=500"),
).Check(checkProposedValue)

func checkProposedValue(v form.Values) form.Errors {
	val := v.String(FieldProposedValue)
	switch domain.ChangeKind(v.String(FieldKind)) {
	case domain.ChangeDeadline:
		if _, err := time.Parse(form.DateLayout, val); err != nil {
			return form.Errors{FieldProposedValue: "New deadline must use YYYY-MM-DD"}
		}
	case domain.ChangeHours:
		if n, err := strconv.Atoi(val); err != nil || n < 1 || n > 500 {
			return form.Errors{FieldProposedValue: "New estimate must be between 1 and 500 hours"}
		}
	case domain.ChangeRate:
		if n, err := strconv.Atoi(val); err != nil || n < 150 || n > 2000 {
			return form.Errors{FieldProposedValue: "New rate must be between 150 and 2000 NOK"}
		}
	}
	return nil
}

type ChangeRequestInput struct {
	Kind          domain.ChangeKind
	ProposedValue string
	Reason        string
}

func DecodeChangeRequest(v form.Values) ChangeRequestInput {
	return ChangeRequestInput{
		Kind:          domain.ChangeKind(v.String(FieldKind)),
		ProposedValue: v.String(FieldProposedValue),
		Reason:        v.String(FieldReason),
	}
}

var LogHoursSchema = form.NewSchema("log-hours",
	form.Decimal(FieldHours, "Hours", "required,min=0.5,max=24"),
	form.Text(FieldNote, "Note", "omitempty,max=200"),
)

type LogHoursRequest struct {
	Hours float64
	Note  string
}

func DecodeLogHours(v form.Values) LogHoursRequest {
	return LogHoursRequest{Hours: v.Float(FieldHours), Note: v.String(FieldNote)}
}
