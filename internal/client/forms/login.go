package forms

import (
	"context"
	"fmt"

	"pubkeeper/internal/client/api"
	"pubkeeper/internal/client/session"
)

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// LoginForm authenticates an existing account. On success the obtained
// credential is installed into the session store.
type LoginForm struct {
	Form
	client  api.Client
	session *session.Store
}

func NewLoginForm(client api.Client, sess *session.Store) *LoginForm {
	return &LoginForm{
		Form:    newForm(FieldEmail, FieldPassword),
		client:  client,
		session: sess,
	}
}

// Validate recomputes the error mapping from the current values.
func (f *LoginForm) Validate() {
	f.errors = make(map[string]string, len(f.fields))
	f.requireField(FieldEmail, "Email")
	f.requireField(FieldPassword, "Password")
	if f.errors[FieldEmail] == "" && !looksLikeEmail(f.Value(FieldEmail)) {
		f.errors[FieldEmail] = "Enter a valid email address"
	}
}

// Submit validates and, when clean, exchanges the credentials for a token.
// Server failures are returned with the backend message preserved.
func (f *LoginForm) Submit(ctx context.Context) error {
	f.Validate()
	if !f.Valid() {
		return fmt.Errorf("fix the highlighted fields")
	}

	token, err := f.client.Login(ctx, f.Value(FieldEmail), f.Value(FieldPassword))
	if err != nil {
		return err
	}
	if err := f.session.Set(ctx, token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	f.Reset()
	return nil
}
