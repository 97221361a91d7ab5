package form

import (
	"regexp"
	"strings"
)

// DateLayout is the only date format accepted by date fields.
const DateLayout = "2006-01-02"

// Kind decides how a raw input value is converted before rules run.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindDecimal
	KindDate
	KindList
	KindBool
)

// Field declares one input. Rules are go-playground/validator tags applied
// to the converted value, e.g. "required,min=5,max=80" or
// "required,oneof=fraud payment other". Text fields may also carry a
// regular expression.
type Field struct {
	Name    string
	Label   string
	Kind    Kind
	Rules   string
	Pattern *regexp.Regexp
	Hint    string // message shown when Pattern does not match

	// When, if set, limits the field to forms where it returns true.
	// Inactive fields are neither validated nor copied to the output.
	When func(Values) bool

	messages map[string]string
}

func newField(kind Kind, name, label, rules string) Field {
	return Field{Name: name, Label: label, Kind: kind, Rules: rules}
}

func Text(name, label, rules string) Field    { return newField(KindText, name, label, rules) }
func Int(name, label, rules string) Field     { return newField(KindInt, name, label, rules) }
func Decimal(name, label, rules string) Field { return newField(KindDecimal, name, label, rules) }
func Date(name, label, rules string) Field    { return newField(KindDate, name, label, rules) }
func List(name, label, rules string) Field    { return newField(KindList, name, label, rules) }
func Bool(name, label, rules string) Field    { return newField(KindBool, name, label, rules) }

// Match attaches a format pattern to a text field.
func (f Field) Match(re *regexp.Regexp, hint string) Field {
	f.Pattern = re
	f.Hint = hint
	return f
}

// OnlyWhen makes the field conditional.
func (f Field) OnlyWhen(pred func(Values) bool) Field {
	f.When = pred
	return f
}

// Message overrides the message for a single validator tag.
func (f Field) Message(tag, msg string) Field {
	m := make(map[string]string, len(f.messages)+1)
	for k, v := range f.messages {
		m[k] = v
	}
	m[tag] = msg
	f.messages = m
	return f
}

// Required reports whether the rules demand a value.
func (f Field) Required() bool {
	for _, tag := range strings.Split(f.Rules, ",") {
		if strings.TrimSpace(tag) == "required" {
			return true
		}
	}
	return false
}

func (f Field) active(v Values) bool {
	return f.When == nil || f.When(v)
}

// Schema is an ordered set of fields. Field order is the order errors
// are reported in.
type Schema struct {
	Name   string
	Fields []Field

	// Checks run on the converted data once every field has passed.
	// They cover rules that span fields, such as a password confirmation.
	Checks []func(Values) Errors
}

func NewSchema(name string, fields ...Field) Schema {
	return Schema{Name: name, Fields: fields}
}

// Check returns a copy of s with an extra cross-field check.
func (s Schema) Check(fn func(Values) Errors) Schema {
	s.Checks = append(append([]func(Values) Errors(nil), s.Checks...), fn)
	return s
}

// Field looks up a field by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Defaults returns a FormState with every field set to its kind's empty
// input value.
func (s Schema) Defaults() Values {
	v := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		switch f.Kind {
		case KindBool:
			v[f.Name] = false
		case KindList:
			v[f.Name] = []string{}
		default:
			v[f.Name] = ""
		}
	}
	return v
}

// Active returns the fields that apply to the given input.
func (s Schema) Active(v Values) []Field {
	out := make([]Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.active(v) {
			out = append(out, f)
		}
	}
	return out
}
