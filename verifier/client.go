// Package verifier is the HTTP client for the external KYC system of record.
// Both calls are single-attempt with a bounded timeout; callers decide what
// a failure means for their own state.
package verifier

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "time"
)

// Enterprise status vocabulary of the external API.
const (
    EnterpriseStatusAnalysing = "ANALYSING"
    EnterpriseStatusActive    = "ACTIVE"
    EnterpriseStatusRejected  = "REJECTED"
)

type Client struct {
    baseURL    string
    apiKey     string
    httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
    if timeout <= 0 {
        timeout = 10 * time.Second
    }
    return &Client{
        baseURL: baseURL,
        apiKey:  apiKey,
        httpClient: &http.Client{
            Timeout: timeout,
        },
    }
}

// CreateEnterpriseRequest is the body of POST /kyc/create-enterprise.
type CreateEnterpriseRequest struct {
    Address         string `json:"address"`
    Cep             string `json:"cep"`
    CityAndState    string `json:"cityAndState"`
    Document        string `json:"document"`
    PartnerDocument string `json:"partnerDocument"`
    Email           string `json:"email"`
    Name            string `json:"name"`
    Phone           string `json:"phone"`
    Status          string `json:"status"`
}

type createEnterpriseResponse struct {
    UserID string `json:"userId"`
}

// CreateEnterprise registers the enterprise with the verifier and returns
// the external user id it assigned.
func (c *Client) CreateEnterprise(ctx context.Context, req CreateEnterpriseRequest) (string, error) {
    var resp createEnterpriseResponse
    if err := c.do(ctx, http.MethodPost, "/kyc/create-enterprise", req, &resp); err != nil {
        return "", err
    }
    if resp.UserID == "" {
        return "", fmt.Errorf("verifier: create-enterprise returned empty userId")
    }
    return resp.UserID, nil
}

type updateStatusRequest struct {
    ID     string `json:"id"`
    Status string `json:"status"`
}

// UpdateEnterpriseStatus pushes a status change keyed by the external user id.
func (c *Client) UpdateEnterpriseStatus(ctx context.Context, externalID, status string) error {
    return c.do(ctx, http.MethodPut, "/kyc/updated-status-enterprise", updateStatusRequest{
        ID:     externalID,
        Status: status,
    }, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
    payload, err := json.Marshal(body)
    if err != nil {
        return fmt.Errorf("verifier: marshal request: %w", err)
    }

    req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
    if err != nil {
        return fmt.Errorf("verifier: new request: %w", err)
    }
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("Authorization", "KYC "+c.apiKey)

    resp, err := c.httpClient.Do(req)
    if err != nil {
        return fmt.Errorf("verifier: %s %s: %w", method, path, err)
    }
    defer resp.Body.Close()

    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        // transport detail stays in the log, callers surface a generic failure
        snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
        return fmt.Errorf("verifier: %s %s: status %d: %s", method, path, resp.StatusCode, snippet)
    }

    if out != nil {
        if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
            return fmt.Errorf("verifier: decode response: %w", err)
        }
    }
    return nil
}
