package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Fields holds raw input values keyed by field name.
type Fields map[string]string

// TakenFunc reports whether value is already in use for field. It backs the
// server-only rules; a non-nil error is a store fault.
type TakenFunc func(ctx context.Context, field, value string) (bool, error)

// FieldError is a single violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

var compositionPatterns = map[string]*regexp.Regexp{
	"has_upper":  regexp.MustCompile(`[A-Z]`),
	"has_lower":  regexp.MustCompile(`[a-z]`),
	"has_digit":  regexp.MustCompile(`[0-9]`),
	"has_symbol": regexp.MustCompile(`[@$!%*#?&]`),
}

// Validator evaluates a Schema in one locale.
type Validator struct {
	validate *validator.Validate
	schema   *Schema
	locale   string
}

// New prepares a validator for schema. Every tag in the schema is checked up
// front so an unknown tag fails here instead of panicking on first use.
func New(schema *Schema, locale string) (*Validator, error) {
	v := validator.New()
	for tag, re := range compositionPatterns {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			return nil, fmt.Errorf("register %s: %w", tag, err)
		}
	}

	if locale == "" {
		locale = schema.DefaultLocale
	}

	val := &Validator{validate: v, schema: schema, locale: locale}
	for _, f := range schema.Fields {
		for _, r := range f.Rules {
			if r.Tag == "" {
				continue
			}
			if err := val.checkTag(r.Tag); err != nil {
				return nil, fmt.Errorf("rule %s.%s: %w", f.Name, r.Name, err)
			}
		}
	}
	return val, nil
}

// NewDefault builds a validator over the embedded schema.
func NewDefault(locale string) (*Validator, error) {
	schema, err := DefaultSchema()
	if err != nil {
		return nil, err
	}
	return New(schema, locale)
}

func (v *Validator) checkTag(tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid tag %q: %v", tag, r)
		}
	}()
	_ = v.validate.Var("", tag)
	return nil
}

// Schema returns the rule document the validator was built from.
func (v *Validator) Schema() *Schema {
	return v.schema
}

// Locale returns the active message locale.
func (v *Validator) Locale() string {
	return v.locale
}

// Normalize trims the fields marked trim in the schema. Unknown keys are
// dropped, missing ones become "".
func (v *Validator) Normalize(fields Fields) Fields {
	out := make(Fields, len(v.schema.Fields))
	for _, f := range v.schema.Fields {
		value := fields[f.Name]
		if f.Trim {
			value = strings.TrimSpace(value)
		}
		out[f.Name] = value
	}
	return out
}

// Validate returns the first violated rule, walking fields and rules in
// schema order. Server-only rules are skipped when taken is nil.
func (v *Validator) Validate(ctx context.Context, fields Fields, taken TakenFunc) (*FieldError, error) {
	fields = v.Normalize(fields)
	for _, f := range v.schema.Fields {
		fe, err := v.checkField(ctx, f, fields[f.Name], taken)
		if err != nil || fe != nil {
			return fe, err
		}
	}
	return nil, nil
}

// ValidateAll returns the first violated rule of every field.
func (v *Validator) ValidateAll(ctx context.Context, fields Fields, taken TakenFunc) ([]FieldError, error) {
	fields = v.Normalize(fields)
	var errs []FieldError
	for _, f := range v.schema.Fields {
		fe, err := v.checkField(ctx, f, fields[f.Name], taken)
		if err != nil {
			return nil, err
		}
		if fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs, nil
}

// FieldMessage returns the client-side message for a single field, or ""
// when the value passes every rule that can be checked without the store.
func (v *Validator) FieldMessage(field, value string) string {
	f, ok := v.schema.Field(field)
	if !ok {
		return ""
	}
	if f.Trim {
		value = strings.TrimSpace(value)
	}
	fe, _ := v.checkField(context.Background(), f, value, nil)
	if fe == nil {
		return ""
	}
	return fe.Message
}

// Message returns the localized message for field.rule.
func (v *Validator) Message(field, rule string) string {
	f, ok := v.schema.Field(field)
	if !ok {
		return ""
	}
	for _, r := range f.Rules {
		if r.Name == rule {
			return r.Message.pick(v.locale, v.schema.DefaultLocale)
		}
	}
	return ""
}

// Text returns a localized UI text from the schema, or key if it is unknown.
func (v *Validator) Text(key string) string {
	m, ok := v.schema.Texts[key]
	if !ok {
		return key
	}
	return m.pick(v.locale, v.schema.DefaultLocale)
}

// Label returns the localized field label.
func (v *Validator) Label(field string) string {
	f, ok := v.schema.Field(field)
	if !ok {
		return field
	}
	if l := f.Label.pick(v.locale, v.schema.DefaultLocale); l != "" {
		return l
	}
	return field
}

func (v *Validator) checkField(ctx context.Context, f Field, value string, taken TakenFunc) (*FieldError, error) {
	for _, r := range f.Rules {
		if r.ServerOnly {
			if taken == nil {
				continue
			}
			inUse, err := taken(ctx, f.Name, value)
			if err != nil {
				return nil, err
			}
			if inUse {
				return v.fieldError(f, r), nil
			}
			continue
		}

		if err := v.validate.Var(value, r.Tag); err != nil {
			return v.fieldError(f, r), nil
		}
	}
	return nil, nil
}

func (v *Validator) fieldError(f Field, r Rule) *FieldError {
	return &FieldError{
		Field:   f.Name,
		Rule:    r.Name,
		Message: r.Message.pick(v.locale, v.schema.DefaultLocale),
	}
}
