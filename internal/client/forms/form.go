// Package forms implements the login, signup and publication-editor form
// controllers: a flat field-value mapping with a parallel field-error
// mapping, a pure Validate step, and a Submit step that talks to the API.
//
// Inline errors persist until the field is edited or the form is revalidated;
// submission is blocked while any field carries an error.
package forms

import (
	"strings"
)

// Form holds field values and per-field validation messages.
type Form struct {
	fields []string
	values map[string]string
	errors map[string]string
}

func newForm(fields ...string) Form {
	return Form{
		fields: fields,
		values: make(map[string]string, len(fields)),
		errors: make(map[string]string, len(fields)),
	}
}

// Set stores a field value and clears that field's error, mirroring the
// edit-clears-inline-error behavior of the UI.
func (f *Form) Set(field, value string) {
	f.values[field] = value
	delete(f.errors, field)
}

// Value returns the current value of a field.
func (f *Form) Value(field string) string {
	return f.values[field]
}

// Errors returns the field-name → message mapping produced by Validate.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the message for one field, or "".
func (f *Form) Error(field string) string {
	return f.errors[field]
}

// Valid reports whether the last Validate pass produced no errors.
func (f *Form) Valid() bool {
	return len(f.errors) == 0
}

// Reset clears all values and errors.
func (f *Form) Reset() {
	f.values = make(map[string]string, len(f.fields))
	f.errors = make(map[string]string, len(f.fields))
}

func (f *Form) requireField(field, label string) {
	if strings.TrimSpace(f.values[field]) == "" {
		f.errors[field] = label + " is required"
	}
}

// looksLikeEmail is deliberately loose: the backend is the authority on
// addresses, this only catches obvious typos before a round trip.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}
