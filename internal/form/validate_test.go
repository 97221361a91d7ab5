package form

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testValidator() *Validator {
	return NewValidator(WithClock(func() time.Time { return testNow }))
}

func TestValidate_RequiredFieldsEmpty(t *testing.T) {
	schema := NewSchema("post-job",
		Text("title", "Title", "required,min=5,max=80"),
		Int("hours", "Estimated hours", "required,min=1,max=500"),
		Date("deadline", "Deadline", "required,notpast"),
		List("skills", "Skills", "required,max=10"),
	)
	data, errs := testValidator().Validate(context.Background(), schema.Defaults(), schema)

	assert.Nil(t, data)
	assert.Equal(t, []string{"deadline", "hours", "skills", "title"}, errs.Names())
	assert.Equal(t, "Title is required", errs["title"])
	assert.Equal(t, "Estimated hours is required", errs["hours"])
	assert.Equal(t, "Skills needs at least one entry", errs["skills"])
}

func TestValidate_LengthBoundaries(t *testing.T) {
	schema := NewSchema("report", Text("subject", "Subject", "required,min=5,max=100"))
	v := testValidator()
	ctx := context.Background()

	cases := []struct {
		name  string
		value string
		ok    bool
	}{
		{"at min", strings.Repeat("a", 5), true},
		{"below min", strings.Repeat("a", 4), false},
		{"at max", strings.Repeat("a", 100), true},
		{"above max", strings.Repeat("a", 101), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := v.Validate(ctx, Values{"subject": tc.value}, schema)
			assert.Equal(t, tc.ok, !errs.Has("subject"), errs["subject"])
		})
	}
}

func TestValidate_LengthCountsRunes(t *testing.T) {
	schema := NewSchema("x", Text("name", "Name", "required,min=2,max=3"))
	_, errs := testValidator().Validate(context.Background(), Values{"name": "Øæå"}, schema)
	assert.Empty(t, errs)
}

func TestValidate_TrimsText(t *testing.T) {
	schema := NewSchema("x", Text("name", "Name", "required,min=2"))
	data, errs := testValidator().Validate(context.Background(), Values{"name": "  Kari  "}, schema)
	require.Empty(t, errs)
	assert.Equal(t, "Kari", data.String("name"))

	_, errs = testValidator().Validate(context.Background(), Values{"name": "   "}, schema)
	assert.Equal(t, "Name is required", errs["name"])
}

func TestValidate_Phone(t *testing.T) {
	schema := NewSchema("register", Text("phone", "Phone", "required,phone"))
	v := testValidator()
	ctx := context.Background()

	_, errs := v.Validate(ctx, Values{"phone": "+47 12345678"}, schema)
	assert.Empty(t, errs)

	_, errs = v.Validate(ctx, Values{"phone": "12345678"}, schema)
	assert.Equal(t, "Phone must include a country code, e.g. +47 12345678", errs["phone"])
}

func TestValidate_OrgNumber(t *testing.T) {
	schema := NewSchema("register", Text("org_number", "Organisation number", "required,orgnr"))
	v := testValidator()
	ctx := context.Background()

	for _, ok := range []string{"123456789", "000000000"} {
		_, errs := v.Validate(ctx, Values{"org_number": ok}, schema)
		assert.Empty(t, errs, ok)
	}
	for _, bad := range []string{"12345678", "1234567890", "12345678a", "123 456 789"} {
		_, errs := v.Validate(ctx, Values{"org_number": bad}, schema)
		assert.True(t, errs.Has("org_number"), bad)
	}
}

func TestValidate_OneOf(t *testing.T) {
	schema := NewSchema("report", Text("category", "Category", "required,oneof=fraud harassment payment"))
	_, errs := testValidator().Validate(context.Background(), Values{"category": "spam"}, schema)
	assert.Equal(t, "Category must be one of: fraud, harassment, payment", errs["category"])
}

func TestValidate_NumericConversion(t *testing.T) {
	schema := NewSchema("log-hours",
		Decimal("hours", "Hours", "required,min=0.5,max=24"),
		Int("rate", "Hourly rate", "required,min=150,max=2000"),
	)
	v := testValidator()
	ctx := context.Background()

	data, errs := v.Validate(ctx, Values{"hours": "2,5", "rate": " 450 "}, schema)
	require.Empty(t, errs)
	assert.InDelta(t, 2.5, data.Float("hours"), 0.0001)
	assert.Equal(t, 450, data.Int("rate"))

	_, errs = v.Validate(ctx, Values{"hours": "0.25", "rate": "abc"}, schema)
	assert.Equal(t, "Hours must be at least 0.5", errs["hours"])
	assert.Equal(t, "Hourly rate must be a whole number", errs["rate"])

	_, errs = v.Validate(ctx, Values{"hours": "24", "rate": "2001"}, schema)
	assert.False(t, errs.Has("hours"))
	assert.Equal(t, "Hourly rate must be at most 2000", errs["rate"])
}

func TestValidate_Dates(t *testing.T) {
	schema := NewSchema("post-job", Date("deadline", "Deadline", "required,notpast"))
	v := testValidator()
	ctx := context.Background()

	data, errs := v.Validate(ctx, Values{"deadline": "2026-03-02"}, schema)
	require.Empty(t, errs, "today is not in the past")
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), data.Time("deadline"))

	_, errs = v.Validate(ctx, Values{"deadline": "2026-03-01"}, schema)
	assert.Equal(t, "Deadline cannot be in the past", errs["deadline"])

	_, errs = v.Validate(ctx, Values{"deadline": "02.03.2026"}, schema)
	assert.Equal(t, "Deadline must use YYYY-MM-DD", errs["deadline"])
}

func TestValidate_NotPastUsesLocalCalendarDay(t *testing.T) {
	oslo := time.FixedZone("Europe/Oslo", 2*60*60)
	// 00:30 in Oslo is still the previous day in UTC.
	now := time.Date(2026, 10, 15, 0, 30, 0, 0, oslo)
	v := NewValidator(WithClock(func() time.Time { return now }))
	schema := NewSchema("post-job", Date("deadline", "Deadline", "required,notpast"))
	ctx := context.Background()

	_, errs := v.Validate(ctx, Values{"deadline": "2026-10-14"}, schema)
	assert.Equal(t, "Deadline cannot be in the past", errs["deadline"])

	_, errs = v.Validate(ctx, Values{"deadline": "2026-10-15"}, schema)
	assert.Empty(t, errs)
}

func TestValidate_MaxBytes(t *testing.T) {
	schema := NewSchema("register", Text("password", "Password", "required,max=72,maxbytes=72"))
	v := testValidator()
	ctx := context.Background()

	_, errs := v.Validate(ctx, Values{"password": strings.Repeat("å", 37)}, schema)
	assert.Equal(t, "Password is too long (at most 72 bytes)", errs["password"])

	_, errs = v.Validate(ctx, Values{"password": strings.Repeat("a", 72)}, schema)
	assert.Empty(t, errs)
}

func TestValidate_Lists(t *testing.T) {
	schema := NewSchema("post-job", List("skills", "Skills", "required,max=3"))
	v := testValidator()
	ctx := context.Background()

	data, errs := v.Validate(ctx, Values{"skills": "go, sql , ,react"}, schema)
	require.Empty(t, errs)
	assert.Equal(t, []string{"go", "sql", "react"}, data.Strings("skills"))

	_, errs = v.Validate(ctx, Values{"skills": []string{"a", "b", "c", "d"}}, schema)
	assert.Equal(t, "Skills allows at most 3 entries", errs["skills"])
}

func TestValidate_OptionalFields(t *testing.T) {
	schema := NewSchema("report",
		Text("job_id", "Job", ""),
		Text("note", "Note", "omitempty,max=5"),
		Int("hours", "Hours", "omitempty,min=1"),
	)
	data, errs := testValidator().Validate(context.Background(), Values{}, schema)
	require.Empty(t, errs)
	assert.Equal(t, "", data.String("job_id"))
	_, present := data["hours"]
	assert.False(t, present)
}

func TestValidate_ConditionalFields(t *testing.T) {
	isStudent := func(v Values) bool { return v.String("role") == "student" }
	schema := NewSchema("register",
		Text("role", "Role", "required,oneof=student employer"),
		Text("university", "University", "required").OnlyWhen(isStudent),
	)
	v := testValidator()
	ctx := context.Background()

	_, errs := v.Validate(ctx, Values{"role": "student"}, schema)
	assert.True(t, errs.Has("university"))

	data, errs := v.Validate(ctx, Values{"role": "employer", "university": "NTNU"}, schema)
	require.Empty(t, errs)
	_, copied := data["university"]
	assert.False(t, copied, "inactive fields are not copied")
}

func TestValidate_CustomMessageAndPattern(t *testing.T) {
	schema := NewSchema("x",
		Text("title", "Title", "required").Message("required", "Give the job a title"),
		Text("code", "Code", "").Match(OrgNumberPattern, "must be nine digits"),
	)
	_, errs := testValidator().Validate(context.Background(), Values{"code": "12"}, schema)
	assert.Equal(t, "Give the job a title", errs["title"])
	assert.Equal(t, "Code must be nine digits", errs["code"])
}

func TestValidate_NeverPanics(t *testing.T) {
	schema := NewSchema("broken",
		Text("a", "A", "required,nosuchtag"),
		Bool("b", "B", ""),
		Int("c", "C", "required"),
	)
	assert.NotPanics(t, func() {
		_, errs := testValidator().Validate(context.Background(), Values{"a": "x", "b": 42, "c": []string{"x"}}, schema)
		assert.Equal(t, "A has an invalid rule", errs["a"])
		assert.Equal(t, "B must be yes or no", errs["b"])
		assert.True(t, errs.Has("c"))
	})
	assert.NotPanics(t, func() {
		_, errs := Validate(context.Background(), nil, schema)
		assert.NotEmpty(t, errs)
	})
}

func TestValidateField(t *testing.T) {
	f := Text("email", "Email", "required,email")
	v := testValidator()
	ctx := context.Background()

	assert.NoError(t, v.ValidateField(ctx, f, "kari@example.no"))
	err := v.ValidateField(ctx, f, "kari@")
	require.Error(t, err)
	assert.Equal(t, "Email must be a valid email address", err.Error())
}

func TestErrorsOrderedAndSummary(t *testing.T) {
	schema := NewSchema("x", Text("b", "B", ""), Text("a", "A", ""))
	errs := Errors{"a": "A bad", "b": "B bad", "z": "Z bad"}
	assert.Equal(t, []string{"B bad", "A bad", "Z bad"}, errs.Ordered(schema))
	assert.Equal(t, "3 fields need attention", errs.Summary())
	assert.Equal(t, "A bad", Errors{"a": "A bad"}.Summary())
	assert.Equal(t, "", Errors{}.Summary())
}

func TestValidate_CrossFieldChecks(t *testing.T) {
	schema := NewSchema("register",
		Text("password", "Password", "required,min=8"),
		Text("confirm", "Confirm password", "required"),
	).Check(func(v Values) Errors {
		if v.String("password") != v.String("confirm") {
			return Errors{"confirm": "Passwords do not match"}
		}
		return nil
	})
	v := testValidator()
	ctx := context.Background()

	_, errs := v.Validate(ctx, Values{"password": "hunter22", "confirm": "hunter23"}, schema)
	assert.Equal(t, Errors{"confirm": "Passwords do not match"}, errs)

	_, errs = v.Validate(ctx, Values{"password": "short", "confirm": "other"}, schema)
	assert.Equal(t, []string{"password"}, errs.Names(), "checks run only after fields pass")

	_, errs = v.Validate(ctx, Values{"password": "hunter22", "confirm": "hunter22"}, schema)
	assert.Empty(t, errs)
}
