package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"chms-be/pkg/apperrors"
	"chms-be/pkg/logger"
)

// Client handles all interactions with the Supabase project that do not go
// through the direct Postgres connection: RPC functions and Storage.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new Supabase client
func NewClient(baseURL, serviceKey string, log *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: log,
	}
}

// RPC calls a Postgres function exposed through the Supabase REST API.
// params may be nil; result may be nil when the caller ignores the response.
func (c *Client) RPC(ctx context.Context, fn string, params map[string]interface{}, result interface{}) error {
	if params == nil {
		params = map[string]interface{}{}
	}

	jsonBody, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal rpc params: %w", err)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/rpc/%s", c.baseURL, fn)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create rpc request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalError(fmt.Sprintf("rpc %s failed", fn), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read rpc response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(map[string]interface{}{
			"function":    fn,
			"status_code": resp.StatusCode,
		}).Error("Supabase RPC returned non-2xx status")
		return apperrors.NewExternalError(
			fmt.Sprintf("rpc %s returned status %d", fn, resp.StatusCode),
			fmt.Errorf("%s", string(body)))
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse rpc response: %w", err)
		}
	}

	return nil
}

// UploadObject uploads file contents to a Storage bucket. The object is
// created with upsert semantics so a retried upload does not fail.
func (c *Client) UploadObject(ctx context.Context, bucket, path, contentType string, data []byte) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, url.PathEscape(path))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	c.setHeaders(req)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalError("storage upload failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return apperrors.NewExternalError(
			fmt.Sprintf("storage upload returned status %d", resp.StatusCode),
			fmt.Errorf("%s", string(body)))
	}

	return nil
}

// DeleteObject removes an object from a Storage bucket
func (c *Client) DeleteObject(ctx context.Context, bucket, path string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, url.PathEscape(path))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalError("storage delete failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return apperrors.NewExternalError(
			fmt.Sprintf("storage delete returned status %d", resp.StatusCode),
			fmt.Errorf("%s", string(body)))
	}

	return nil
}

// signedURLResponse is the Storage sign response payload
type signedURLResponse struct {
	SignedURL string `json:"signedURL"`
}

// CreateSignedURL creates a short-lived download URL for a stored object
func (c *Client) CreateSignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"expiresIn": int(expiresIn.Seconds()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sign request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", c.baseURL, bucket, url.PathEscape(path))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create sign request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewExternalError("storage sign failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read sign response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.NewExternalError(
			fmt.Sprintf("storage sign returned status %d", resp.StatusCode),
			fmt.Errorf("%s", string(body)))
	}

	var signed signedURLResponse
	if err := json.Unmarshal(body, &signed); err != nil {
		return "", fmt.Errorf("failed to parse sign response: %w", err)
	}

	return c.baseURL + "/storage/v1" + signed.SignedURL, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.serviceKey))
	req.Header.Set("apikey", c.serviceKey)
}
