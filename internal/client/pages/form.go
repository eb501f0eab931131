package pages

import (
	"context"
	"sync"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

// Form holds the three user fields and evaluates the shared rules against
// them. Server-only rules (email uniqueness) are left to the API.
type Form struct {
	mu        sync.Mutex
	validator *validation.Validator
	values    validation.Fields
	touched   map[string]bool
}

// NewForm returns an empty form.
func NewForm(v *validation.Validator) *Form {
	f := &Form{validator: v}
	f.Reset()
	return f
}

// Reset clears every value.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = validation.Fields{}
	for _, name := range f.validator.Schema().FieldNames() {
		f.values[name] = ""
	}
	f.touched = map[string]bool{}
}

// Set updates a field and marks it touched.
func (f *Form) Set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value
	f.touched[field] = true
}

// Patch sets several fields without marking them touched.
func (f *Form) Patch(values map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, v := range values {
		f.values[k] = v
	}
}

// Get returns the current value of field.
func (f *Form) Get(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Touched reports whether the user edited field.
func (f *Form) Touched(field string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[field]
}

// ErrorFor returns the message of the first failing rule of field, or "".
func (f *Form) ErrorFor(field string) string {
	return f.validator.FieldMessage(field, f.Get(field))
}

// VisibleError is ErrorFor, but only once the field has been touched.
func (f *Form) VisibleError(field string) string {
	if !f.Touched(field) {
		return ""
	}
	return f.ErrorFor(field)
}

// Valid reports whether every client-checkable rule passes.
func (f *Form) Valid() bool {
	fe, _ := f.validator.Validate(context.Background(), f.snapshot(), nil)
	return fe == nil
}

// Request builds the API body from the current values.
func (f *Form) Request() dto.UserRequest {
	values := f.snapshot()
	return dto.UserRequest{
		Email:    values["email"],
		Password: values["password"],
		Name:     values["name"],
	}
}

func (f *Form) snapshot() validation.Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(validation.Fields, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}
