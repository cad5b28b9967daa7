package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"pubkeeper/internal/client/models"
)

// TokenSource yields the current bearer token, or "" when logged out.
// The session store satisfies this with its Token method.
type TokenSource func() string

// HTTPClient is the production Client backed by net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// NewHTTPClient builds a client for the given base URL. The token source may
// be nil for unauthenticated use (e.g. tests).
func NewHTTPClient(baseURL string, timeout time.Duration, token TokenSource) (*HTTPClient, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
	}, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", signupRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ListPublications(ctx context.Context) ([]models.Publication, error) {
	var pubs []models.Publication
	if err := c.do(ctx, http.MethodGet, "/publications", nil, &pubs); err != nil {
		return nil, err
	}
	return pubs, nil
}

func (c *HTTPClient) CreatePublication(ctx context.Context, draft models.Draft) (*models.Publication, error) {
	var pub models.Publication
	if err := c.do(ctx, http.MethodPost, "/publications", draft, &pub); err != nil {
		return nil, err
	}
	return &pub, nil
}

func (c *HTTPClient) UpdatePublication(ctx context.Context, id string, draft models.Draft) (*models.Publication, error) {
	var pub models.Publication
	if err := c.do(ctx, http.MethodPut, "/publications/"+url.PathEscape(id), draft, &pub); err != nil {
		return nil, err
	}
	return &pub, nil
}

func (c *HTTPClient) DeletePublication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/publications/"+url.PathEscape(id), nil, nil)
}

// do issues one JSON request and decodes the response into out (when out is
// non-nil). Non-2xx responses are mapped to sentinel errors or *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) mapError(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if body.Message != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, body.Message)
		}
		return ErrUnauthorized
	case http.StatusNotFound:
		if body.Message != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, body.Message)
		}
		return ErrNotFound
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Message}
}
