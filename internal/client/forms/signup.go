package forms

import (
	"context"
	"fmt"

	"pubkeeper/internal/client/api"
	"pubkeeper/internal/client/session"
)

// minPasswordLen matches the backend's signup rule; checking locally saves a
// round trip but the server remains authoritative.
const minPasswordLen = 6

// SignupForm registers a new account. When the backend returns a token the
// session is established immediately; otherwise the caller should direct the
// user to login.
type SignupForm struct {
	Form
	client  api.Client
	session *session.Store
}

func NewSignupForm(client api.Client, sess *session.Store) *SignupForm {
	return &SignupForm{
		Form:    newForm(FieldName, FieldEmail, FieldPassword),
		client:  client,
		session: sess,
	}
}

func (f *SignupForm) Validate() {
	f.errors = make(map[string]string, len(f.fields))
	f.requireField(FieldName, "Name")
	f.requireField(FieldEmail, "Email")
	f.requireField(FieldPassword, "Password")
	if f.errors[FieldEmail] == "" && !looksLikeEmail(f.Value(FieldEmail)) {
		f.errors[FieldEmail] = "Enter a valid email address"
	}
	if f.errors[FieldPassword] == "" && len(f.Value(FieldPassword)) < minPasswordLen {
		f.errors[FieldPassword] = fmt.Sprintf("Password must be at least %d characters", minPasswordLen)
	}
}

// Submit validates and registers. Returns (sessionEstablished, error).
func (f *SignupForm) Submit(ctx context.Context) (bool, error) {
	f.Validate()
	if !f.Valid() {
		return false, fmt.Errorf("fix the highlighted fields")
	}

	token, err := f.client.Signup(ctx, f.Value(FieldName), f.Value(FieldEmail), f.Value(FieldPassword))
	if err != nil {
		return false, err
	}

	if token == "" {
		f.Reset()
		return false, nil
	}
	if err := f.session.Set(ctx, token); err != nil {
		return false, fmt.Errorf("saving session: %w", err)
	}
	f.Reset()
	return true, nil
}
