// Package api implements the remote API client for the publications backend.
//
// The backend speaks plain REST/JSON; the contract is fixed by an existing
// server and reproduced here verbatim:
//
//	POST   /auth/login        {email, password}        -> {token}
//	POST   /auth/signup       {name, email, password}  -> {token}?
//	GET    /auth/user                                  -> user
//	GET    /publications                               -> [publication...]
//	POST   /publications      {title, content, status} -> publication
//	PUT    /publications/:id  {title, content, status} -> publication
//	DELETE /publications/:id                           -> ack
//
// Every authenticated request carries "Authorization: Bearer <token>".
package api

import (
	"context"

	"pubkeeper/internal/client/models"
)

// Client defines the remote operations the rest of the application depends
// on. All methods honor context cancellation and deadlines; none retries.
type Client interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	// Signup creates an account. The returned token may be empty: some
	// backend deployments require a subsequent login instead.
	Signup(ctx context.Context, name, email, password string) (string, error)

	// CurrentUser returns the account behind the active token.
	CurrentUser(ctx context.Context) (*models.User, error)

	// ListPublications fetches the full publication set, preserving the
	// server-defined order.
	ListPublications(ctx context.Context) ([]models.Publication, error)

	// CreatePublication sends a draft and returns the created record with
	// its server-assigned identifier and timestamps.
	CreatePublication(ctx context.Context, draft models.Draft) (*models.Publication, error)

	// UpdatePublication replaces the editable fields of an existing record.
	UpdatePublication(ctx context.Context, id string, draft models.Draft) (*models.Publication, error)

	// DeletePublication removes a record by identifier.
	DeletePublication(ctx context.Context, id string) error
}
