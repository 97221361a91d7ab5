package form

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// PhonePattern requires an international prefix: "+47 12345678".
	PhonePattern = regexp.MustCompile(`^\+[0-9]{1,3} ?[0-9]{4,14}$`)

	// OrgNumberPattern is a nine digit Norwegian organisation number.
	OrgNumberPattern = regexp.MustCompile(`^[0-9]{9}$`)
)

// Validator runs schemas. It wraps a go-playground validator with the
// named formats the marketplace forms use: "phone", "orgnr", "notpast"
// and "maxbytes".
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithClock fixes the reference time for "notpast".
func WithClock(now func() time.Time) ValidatorOption {
	return func(x *Validator) { x.now = now }
}

func NewValidator(opts ...ValidatorOption) *Validator {
	x := &Validator{
		v:   validator.New(validator.WithRequiredStructEnabled()),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(x)
	}
	x.register("phone", func(fl validator.FieldLevel) bool {
		return PhonePattern.MatchString(fl.Field().String())
	})
	x.register("orgnr", func(fl validator.FieldLevel) bool {
		return OrgNumberPattern.MatchString(fl.Field().String())
	})
	x.register("notpast", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		// Parsed dates are UTC midnight; today is the calendar day on the
		// user's clock.
		y, m, d := x.now().Date()
		return !t.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	})
	x.register("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= n
	})
	return x
}

func (x *Validator) register(tag string, fn validator.Func) {
	if err := x.v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %q validation: %v", tag, err))
	}
}

var defaultValidator = NewValidator()

// Validate runs schema against values with the package default Validator.
func Validate(ctx context.Context, values Values, schema Schema) (Values, Errors) {
	return defaultValidator.Validate(ctx, values, schema)
}

// Validate checks every active field of schema. On success it returns the
// converted data: trimmed strings, int, float64, time.Time, cleaned lists
// and bools. On failure it returns nil data and one message per failing
// field. It never panics on malformed input or rules.
func (x *Validator) Validate(ctx context.Context, values Values, schema Schema) (Values, Errors) {
	if values == nil {
		values = Values{}
	}
	data := make(Values)
	errs := make(Errors)
	for _, f := range schema.Active(values) {
		val, present, msg := x.field(ctx, f, values[f.Name])
		if msg != "" {
			errs[f.Name] = msg
			continue
		}
		if present {
			data[f.Name] = val
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	for _, check := range schema.Checks {
		for name, msg := range check(data) {
			errs[name] = msg
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return data, nil
}

// ValidateField checks a single field in isolation, for inline feedback
// while the user types. Conditional predicates are ignored.
func (x *Validator) ValidateField(ctx context.Context, f Field, raw any) error {
	if _, _, msg := x.field(ctx, f, raw); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func (x *Validator) field(ctx context.Context, f Field, raw any) (value any, present bool, msg string) {
	switch f.Kind {
	case KindList:
		list := toList(raw)
		return list, true, x.rules(ctx, f, list)

	case KindBool:
		b, ok := toBool(raw)
		if !ok {
			return nil, false, fmt.Sprintf("%s must be yes or no", f.label())
		}
		return b, true, x.rules(ctx, f, b)

	case KindText:
		s := strings.TrimSpace(toString(raw))
		if m := x.rules(ctx, f, s); m != "" {
			return nil, false, m
		}
		if s != "" && f.Pattern != nil && !f.Pattern.MatchString(s) {
			return nil, false, f.patternMessage()
		}
		return s, true, ""
	}

	s := strings.TrimSpace(toString(raw))
	if s == "" {
		if f.Required() {
			return nil, false, f.message("required", "")
		}
		return nil, false, ""
	}
	converted, err := convert(f.Kind, s)
	if err != nil {
		return nil, false, f.parseMessage()
	}
	return converted, true, x.rules(ctx, f, converted)
}

// rules applies the validator tags and maps the first failure to a message.
func (x *Validator) rules(ctx context.Context, f Field, value any) (msg string) {
	if f.Rules == "" {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("%s has an invalid rule", f.label())
		}
	}()
	err := x.v.VarCtx(ctx, value, f.Rules)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return f.message(verrs[0].Tag(), verrs[0].Param())
	}
	return fmt.Sprintf("%s is invalid", f.label())
}

func convert(kind Kind, s string) (any, error) {
	switch kind {
	case KindInt:
		return strconv.Atoi(s)
	case KindDecimal:
		return parseDecimal(s)
	case KindDate:
		return time.Parse(DateLayout, s)
	}
	return s, nil
}

func toList(raw any) []string {
	var in []string
	switch x := raw.(type) {
	case []string:
		in = x
	case string:
		in = strings.Split(x, ",")
	}
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func toBool(raw any) (bool, bool) {
	switch x := raw.(type) {
	case nil:
		return false, true
	case bool:
		return x, true
	case string:
		return parseBool(x)
	}
	return false, false
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func (f Field) patternMessage() string {
	if f.Hint != "" {
		return fmt.Sprintf("%s %s", f.label(), f.Hint)
	}
	return fmt.Sprintf("%s has the wrong format", f.label())
}

func (f Field) parseMessage() string {
	switch f.Kind {
	case KindInt:
		return fmt.Sprintf("%s must be a whole number", f.label())
	case KindDecimal:
		return fmt.Sprintf("%s must be a number", f.label())
	case KindDate:
		return fmt.Sprintf("%s must use YYYY-MM-DD", f.label())
	}
	return fmt.Sprintf("%s is invalid", f.label())
}

// message renders a human-readable error for a failed validator tag.
func (f Field) message(tag, param string) string {
	if m, ok := f.messages[tag]; ok {
		return m
	}
	l := f.label()
	numeric := f.Kind == KindInt || f.Kind == KindDecimal
	switch tag {
	case "required":
		if f.Kind == KindList {
			return fmt.Sprintf("%s needs at least one entry", l)
		}
		if f.Kind == KindBool {
			return fmt.Sprintf("%s must be accepted", l)
		}
		return fmt.Sprintf("%s is required", l)
	case "min", "gte":
		switch {
		case numeric:
			return fmt.Sprintf("%s must be at least %s", l, param)
		case f.Kind == KindList:
			return fmt.Sprintf("%s needs at least %s entries", l, param)
		}
		return fmt.Sprintf("%s must be at least %s characters", l, param)
	case "max", "lte":
		switch {
		case numeric:
			return fmt.Sprintf("%s must be at most %s", l, param)
		case f.Kind == KindList:
			return fmt.Sprintf("%s allows at most %s entries", l, param)
		}
		return fmt.Sprintf("%s must be at most %s characters", l, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", l, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", l, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", l, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", l, strings.Join(strings.Fields(param), ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", l)
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", l)
	case "phone":
		return fmt.Sprintf("%s must include a country code, e.g. +47 12345678", l)
	case "orgnr":
		return fmt.Sprintf("%s must be exactly 9 digits", l)
	case "notpast":
		return fmt.Sprintf("%s cannot be in the past", l)
	case "maxbytes":
		return fmt.Sprintf("%s is too long (at most %s bytes)", l, param)
	}
	return fmt.Sprintf("%s is invalid", l)
}
