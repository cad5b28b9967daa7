package cli

import (
	"context"
	"os"

	"pubkeeper/internal/client/forms"
	"pubkeeper/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Login prompts for credentials, runs them through the login form and, on
// success, loads the publication list. The server's error message is shown
// verbatim on failure.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := forms.NewLoginForm(a.client, a.session)
	form.Set(forms.FieldEmail, email)
	form.Set(forms.FieldPassword, string(password))

	if err := form.Submit(ctx); err != nil {
		printFieldErrors(form.Errors())
		return err
	}

	printlnFn("Login successful")
	a.setEmail(email)
	return a.controller.Load(ctx)
}

// Signup prompts for account details and registers. When the backend returns
// a token the session starts immediately; otherwise the user is asked to log
// in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := forms.NewSignupForm(a.client, a.session)
	form.Set(forms.FieldName, name)
	form.Set(forms.FieldEmail, email)
	form.Set(forms.FieldPassword, string(password))

	established, err := form.Submit(ctx)
	if err != nil {
		printFieldErrors(form.Errors())
		return err
	}

	if !established {
		printlnFn("Signup successful, please log in")
		return nil
	}

	printlnFn("Signup successful")
	a.setEmail(email)
	return a.controller.Load(ctx)
}

// Logout destroys the session credential.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	a.setEmail("")
	printlnFn("Logged out")
	return nil
}

// Whoami shows the account behind the active session.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.setEmail(user.Email)
	printlnFn(user.Email)
	return nil
}

func printFieldErrors(errs map[string]string) {
	for field, msg := range errs {
		printlnFn(field + ": " + msg)
	}
}
