// Package api implements the HTTP client the CLI talks to the vault backend
// with. Responses are decoded into the shared model types and non-2xx
// statuses are mapped back onto the common error kinds.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/drivenpass/drivenpass/internal/server/models"
)

// UserInfo mirrors the account payload returned by the backend.
type UserInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// SignInResult mirrors the sign-in payload returned by the backend.
type SignInResult struct {
	User  UserInfo `json:"user"`
	Token string   `json:"token"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client is an HTTP client for the vault API. SetToken must be called before
// any of the credential or network operations.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs the bearer token used on authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}
	return nil
}

// errorFromResponse maps a non-2xx response back onto the error kinds the
// server mapped outward, keeping the server-supplied message.
func (c *Client) errorFromResponse(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", msg, common.ErrValidation)
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", msg, common.ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, common.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", msg, common.ErrInternal)
	}
}

type signRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*UserInfo, error) {
	var out UserInfo
	if err := c.do(ctx, http.MethodPost, "/sign-up", signRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	var out SignInResult
	if err := c.do(ctx, http.MethodPost, "/sign-in", signRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) ListCredentials(ctx context.Context) ([]*models.Credential, error) {
	var out []*models.Credential
	if err := c.do(ctx, http.MethodGet, "/credentials", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCredential(ctx context.Context, id int64) (*models.Credential, error) {
	var out models.Credential
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/credentials/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCredential(ctx context.Context, credential *models.Credential) (int64, error) {
	var out createdResponse
	if err := c.do(ctx, http.MethodPost, "/credentials", credential, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) DeleteCredential(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/credentials/%d", id), nil, nil)
}

func (c *Client) ListNetworks(ctx context.Context) ([]*models.Network, error) {
	var out []*models.Network
	if err := c.do(ctx, http.MethodGet, "/networks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetNetwork(ctx context.Context, id int64) (*models.Network, error) {
	var out models.Network
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/networks/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateNetwork(ctx context.Context, network *models.Network) (int64, error) {
	var out createdResponse
	if err := c.do(ctx, http.MethodPost, "/networks", network, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) DeleteNetwork(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/networks/%d", id), nil, nil)
}
