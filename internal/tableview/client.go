// Package tableview is the programmatic consumer of the user directory:
// an HTTP client for the /users endpoint plus a View that owns the current
// query parameters, re-fetches on every change, and exposes a tagged state
// for rendering.
package tableview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/simp-lee/userdir/internal/domain"
	"github.com/simp-lee/userdir/internal/pkg"
)

// User is the wire representation of one directory record.
type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserList is one page of the directory as returned by GET /users.
type UserList struct {
	TotalUsers  int64  `json:"totalUsers"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	Users       []User `json:"users"`
}

// Client fetches pages from a user directory server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the server at baseURL (e.g.
// "http://localhost:8080"). When httpClient is nil a default client with a
// 10-second timeout is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListUsers performs GET /users for the given query and decodes the page.
// Validation rejections from the server come back as CodeValidation errors,
// everything else non-200 as CodeInternal.
func (c *Client) ListUsers(ctx context.Context, q domain.ListQuery) (*UserList, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.OrderBy != "" {
		params.Set("orderBy", q.OrderBy)
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}

	reqURL := c.baseURL + "/users?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var list UserList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode users response: %w", err)
	}
	return &list, nil
}

// decodeError converts a non-200 response into a domain error, preserving
// the server's message when the body carries the {"error": ...} shape.
func decodeError(resp *http.Response) error {
	var body pkg.ErrorResponse
	msg := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}

	code := domain.CodeInternal
	switch resp.StatusCode {
	case http.StatusBadRequest:
		code = domain.CodeValidation
	case http.StatusNotFound:
		code = domain.CodeNotFound
	}

	return domain.NewAppError(code, msg, nil)
}
