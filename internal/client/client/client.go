package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/moodjournal/internal/common"
)

// ReflectRequest is the body of POST /reflect.
type ReflectRequest struct {
	Entry         string `json:"entry"`
	Mood          string `json:"mood"`
	MemoryContext string `json:"memoryContext"`
}

// SaveEntryRequest is the body of POST /save-entry.
type SaveEntryRequest struct {
	Content  string  `json:"content"`
	Mood     string  `json:"mood"`
	Trigger  *string `json:"trigger"`
	Response string  `json:"response"`
	Date     string  `json:"date"`
}

// RemoteEntry is one item of GET /entries.
type RemoteEntry struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Mood      string `json:"mood"`
	Trigger   string `json:"trigger"`
	Response  string `json:"response"`
	Date      string `json:"date"`
	CreatedAt string `json:"createdAt"`
}

type Client interface {
	Signup(ctx context.Context, email, password string) error
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Reflect(ctx context.Context, token string, req ReflectRequest) (json.RawMessage, error)
	SaveEntry(ctx context.Context, token string, req SaveEntryRequest) (string, error)
	ListEntries(ctx context.Context, token string, limit int) ([]RemoteEntry, error)
	Ping(ctx context.Context) error
}

// HTTPClient implements Client over the JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, data)
	}

	return data, nil
}

func decodeError(status int, data []byte) error {
	var er errorResponse
	_ = json.Unmarshal(data, &er)

	apiErr := &APIError{StatusCode: status, Code: er.Error, Message: er.Message}
	switch status {
	case http.StatusBadRequest:
		apiErr.kind = ErrBadRequest
	case http.StatusUnauthorized:
		if er.Error == "unauthorized" {
			apiErr.kind = ErrInvalidCredentials
		} else {
			apiErr.kind = ErrUnauthenticated
		}
	case http.StatusForbidden:
		apiErr.kind = ErrForbidden
	case http.StatusConflict:
		apiErr.kind = ErrConflict
	default:
		apiErr.kind = ErrServer
	}
	return apiErr
}

func (c *HTTPClient) Signup(ctx context.Context, email, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/signup", "", map[string]string{"email": email, "password": password})
	return err
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/register", "", map[string]string{"username": username, "password": password})
	return err
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/login", "", map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if out.Token == "" {
		return "", errors.New("login response carries no token")
	}
	return out.Token, nil
}

// Reflect returns the provider payload exactly as the server relayed it.
func (c *HTTPClient) Reflect(ctx context.Context, token string, req ReflectRequest) (json.RawMessage, error) {
	data, err := c.do(ctx, http.MethodPost, "/reflect", token, req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// SaveEntry returns the id of the stored entry.
func (c *HTTPClient) SaveEntry(ctx context.Context, token string, req SaveEntryRequest) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/save-entry", token, req)
	if err != nil {
		return "", err
	}

	var out messageResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode save response: %w", err)
	}
	return out.ID, nil
}

func (c *HTTPClient) ListEntries(ctx context.Context, token string, limit int) ([]RemoteEntry, error) {
	path := "/entries"
	if limit > 0 {
		path = fmt.Sprintf("/entries?limit=%d", limit)
	}

	data, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Entries []RemoteEntry `json:"entries"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode entries response: %w", err)
	}
	return out.Entries, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/healthz", "", nil)
	return err
}
