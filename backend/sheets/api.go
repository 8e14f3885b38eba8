package sheets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"teampulse/backend"
)

// APIClient handles HTTP communication with the spreadsheet REST endpoint.
// The endpoint exposes each tab of the sheet at {base}/{tab}: GET returns
// the tab's rows as a JSON array of objects, POST appends a row.
type APIClient struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewAPIClient creates a new spreadsheet endpoint client
func NewAPIClient(baseURL, apiToken string) *APIClient {
	return &APIClient{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest performs an HTTP request with authentication
func (c *APIClient) doRequest(method, endpoint string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// checkResponse maps unexpected statuses to a StoreError carrying the
// status code and response body
func checkResponse(operation, tab string, resp *http.Response, okStatuses ...int) error {
	for _, status := range okStatuses {
		if resp.StatusCode == status {
			return nil
		}
	}

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return backend.NewStoreError(operation, resp.StatusCode, "authentication failed, check the API token").
			WithTab(tab).WithBody(string(body))
	case resp.StatusCode == http.StatusNotFound:
		return backend.NewStoreError(operation, resp.StatusCode, fmt.Sprintf("tab %q not found on the endpoint", tab)).
			WithTab(tab).WithBody(string(body))
	default:
		return backend.NewStoreError(operation, resp.StatusCode, resp.Status).
			WithTab(tab).WithBody(string(body))
	}
}

// GetRows retrieves all rows of a tab. Rows come back as loosely-typed
// objects; normalization happens in the ingestion layer, not here.
func (c *APIClient) GetRows(operation, tab string) ([]map[string]any, error) {
	resp, err := c.doRequest("GET", "/"+tab, nil)
	if err != nil {
		return nil, backend.NewStoreError(operation, 0, err.Error()).WithTab(tab).WithError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(operation, tab, resp, http.StatusOK); err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, backend.NewStoreError(operation, 0, "failed to decode response").WithTab(tab).WithError(err)
	}

	return rows, nil
}

// AppendRow appends a single row to a tab
func (c *APIClient) AppendRow(operation, tab string, row any) error {
	resp, err := c.doRequest("POST", "/"+tab, row)
	if err != nil {
		return backend.NewStoreError(operation, 0, err.Error()).WithTab(tab).WithError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	// The endpoint returns 200 (echoing the row) or 201 on append
	return checkResponse(operation, tab, resp, http.StatusOK, http.StatusCreated)
}
