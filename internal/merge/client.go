package merge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"paysum/internal/core"
)

const runsPath = "/api/hris/v1/employee-payroll-runs"

// Fixed query parameters of the payroll-run listing.
const (
	expandFields = "earnings,deductions,taxes"
	pageSize     = "100"
)

var hosts = map[string]string{
	"US":   "https://api.merge.dev",
	"EU":   "https://api.eu.merge.dev",
	"APAC": "https://api.apac.merge.dev",
}

// HostForRegion maps a region code to its Merge API base URL.
func HostForRegion(region string) (string, error) {
	host, ok := hosts[region]
	if !ok {
		return "", fmt.Errorf("unknown region %q (want US, EU or APAC)", region)
	}
	return host, nil
}

// Regions lists the supported region codes.
func Regions() []string {
	return []string{"US", "EU", "APAC"}
}

// Client talks to the Merge HRIS API with static bearer-token credentials.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	accountToken string
}

// Ensure interface conformance
var _ PayrollRunLister = (*Client)(nil)

// NewClient creates a client for the given base URL. The timeout bounds
// each request end to end; there is no retry on top of it.
func NewClient(baseURL, apiKey, accountToken string, timeout time.Duration) *Client {
	return &Client{
		httpClient:   newPooledHTTPClient(timeout),
		baseURL:      baseURL,
		apiKey:       apiKey,
		accountToken: accountToken,
	}
}

// newPooledHTTPClient builds an HTTP client with connection pooling and
// keep-alive tuned for repeated calls against a single API host.
func newPooledHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// ListEmployeePayrollRuns fetches one page of payroll runs. The cursor is
// appended only when non-empty.
func (c *Client) ListEmployeePayrollRuns(ctx context.Context, q RunQuery, cursor string) (RunPage, error) {
	params := url.Values{}
	params.Set("employee_id", q.EmployeeID)
	params.Set("expand", expandFields)
	params.Set("page_size", pageSize)
	if !q.EndedAfter.IsZero() {
		params.Set("ended_after", q.EndedAfter.Format(core.DateLayout))
	}
	if !q.EndedBefore.IsZero() {
		params.Set("ended_before", q.EndedBefore.Format(core.DateLayout))
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+runsPath+"?"+params.Encode(), nil)
	if err != nil {
		return RunPage{}, fmt.Errorf("build payroll-runs request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Account-Token", c.accountToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RunPage{}, fmt.Errorf("list payroll runs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return RunPage{}, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var page RunPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return RunPage{}, fmt.Errorf("decode payroll-runs page: %w", err)
	}
	return page, nil
}
