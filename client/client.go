package client

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

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "lpx-client"
	profileCacheTTL  = time.Minute
)

// Client talks to the LaunchpadX API on behalf of one signed in user.
type Client struct {
	client    *http.Client
	cache     *cache.Cache
	baseURL   *url.URL
	token     string
	userAgent string
}

type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.client.Timeout = timeout }
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) { c.userAgent = userAgent }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}

	httpClient := http.Client{
		Timeout: defaultTimeout,
	}
	c := &Client{
		client:    &httpClient,
		cache:     cache.New(profileCacheTTL, 2*profileCacheTTL),
		baseURL:   u,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	httpClient.Transport = c
	return c, nil
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// APIError is a non 2xx answer from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap exposes the domain error matching the response so callers can use
// errors.Is with domain sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case e.Status == http.StatusForbidden:
		return domain.ErrForbidden
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Code == domain.CodeAlreadyApplied:
		return domain.ErrAlreadyApplied
	case e.Code == domain.CodeRoleNotOpen:
		return domain.ErrRoleNotOpen
	case e.Code == domain.CodeValidationFailed:
		return domain.ValidationError{Fields: e.Fields}
	}
	return nil
}

func (c *Client) HttpRequest(ctx context.Context, method, path string, body, response any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL.String() + path
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error  string            `json:"error"`
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Error
			apiErr.Fields = payload.Fields
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if response == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// CurrentUser returns the signed in user's profile. A valid session without
// a saved profile yields a zero Profile and no error.
func (c *Client) CurrentUser(ctx context.Context) (domain.Profile, error) {
	if c.token == "" {
		return domain.Profile{}, domain.ErrUnauthenticated
	}

	cacheKey := "profile:" + c.token
	if x, found := c.cache.Get(cacheKey); found {
		return x.(domain.Profile), nil
	}

	var profile domain.Profile
	err := c.HttpRequest(ctx, http.MethodGet, "/api/profile", nil, &profile)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code == domain.CodeProfileNotFound {
		return domain.Profile{}, nil
	}
	if err != nil {
		return domain.Profile{}, err
	}

	c.cache.Set(cacheKey, profile, cache.DefaultExpiration)
	return profile, nil
}

func (c *Client) GetRole(ctx context.Context, roleID string) (domain.Role, error) {
	var role domain.Role
	err := c.HttpRequest(ctx, http.MethodGet, "/api/roles/"+url.PathEscape(roleID), nil, &role)
	return role, err
}

// GetApplication returns the current user's application to roleID, or nil.
func (c *Client) GetApplication(ctx context.Context, roleID string) (*domain.RoleApplication, error) {
	var resp struct {
		Application *domain.RoleApplication `json:"application"`
	}
	err := c.HttpRequest(ctx, http.MethodGet, "/api/roles/"+url.PathEscape(roleID)+"/application", nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Application, nil
}

func (c *Client) ApplyToRole(ctx context.Context, roleID, message string) (domain.RoleApplication, error) {
	var app domain.RoleApplication
	err := c.HttpRequest(ctx, http.MethodPost, "/api/roles/"+url.PathEscape(roleID)+"/apply",
		map[string]string{"message": message}, &app)
	return app, err
}

// ValidationResult mirrors the agreement validation endpoint.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// ValidateAgreement sends a raw agreement draft for validation of step.
func (c *Client) ValidateAgreement(ctx context.Context, step string, draft json.RawMessage) (ValidationResult, error) {
	path := "/api/agreements/validate"
	if step != "" {
		path += "?step=" + url.QueryEscape(step)
	}
	var result ValidationResult
	err := c.HttpRequest(ctx, http.MethodPost, path, draft, &result)
	return result, err
}
