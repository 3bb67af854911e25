// Package api is a minimal JSON client for the credgate HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/credgate/credgate/internal/common"
)

var (
	// ErrUnavailable reports that the server could not be reached.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized reports rejected credentials or a rejected token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRequestFailed reports any other non-success response.
	ErrRequestFailed = errors.New("request failed")
)

const requestTimeout = 10 * time.Second

type Client struct {
	baseURL     string
	tokenHeader string
	http        *http.Client
}

// NewClient builds a client for the server at baseURL. tokenHeader names
// the request header carrying the access token; empty selects the default.
func NewClient(baseURL, tokenHeader string) *Client {
	if tokenHeader == "" {
		tokenHeader = common.DefaultAccessTokenHeader
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		tokenHeader: tokenHeader,
		http:        &http.Client{Timeout: requestTimeout},
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username string, password []byte) error {
	resp, err := c.post(ctx, "/register-user", &credentialsRequest{
		Username: username,
		Password: string(password),
	}, "")
	if err != nil {
		return err
	}
	if !resp.Success {
		return ErrRequestFailed
	}
	return nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username string, password []byte) (string, error) {
	resp, err := c.post(ctx, "/login-user", &credentialsRequest{
		Username: username,
		Password: string(password),
	}, "")
	if err != nil {
		return "", err
	}
	if !resp.Success || resp.Token == "" {
		return "", ErrRequestFailed
	}
	return resp.Token, nil
}

// Validate asks the server to verify a previously issued token.
func (c *Client) Validate(ctx context.Context, token string) error {
	resp, err := c.post(ctx, "/validate-user", nil, token)
	if err != nil {
		return err
	}
	if !resp.Success {
		return ErrRequestFailed
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, token string) (*statusResponse, error) {

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(c.tokenHeader, token)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	resp := &statusResponse{}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrRequestFailed, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, ErrRequestFailed
	}

	return resp, nil
}
